package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/smscountry-call-gateway/internal/domain"
)

const callRecordColumns = `call_uuid, number, caller_id, status, ring_time, answer_time, end_time,
	end_reason, cost, direction, pulse, pulses, price_per_pulse, created_at, updated_at`

// CallRepository handles database operations for call records.
type CallRepository struct {
	db *sqlx.DB
}

func NewCallRepository(db *sqlx.DB) *CallRepository {
	return &CallRepository{db: db}
}

const upsertCallRecordQuery = `
	INSERT INTO call_records (
		call_uuid, number, caller_id, status, ring_time, answer_time, end_time,
		end_reason, cost, direction, pulse, pulses, price_per_pulse
	) VALUES (
		:call_uuid, :number, :caller_id, :status, :ring_time, :answer_time, :end_time,
		:end_reason, :cost, :direction, :pulse, :pulses, :price_per_pulse
	)
	ON DUPLICATE KEY UPDATE
		number = VALUES(number),
		caller_id = VALUES(caller_id),
		status = VALUES(status),
		ring_time = VALUES(ring_time),
		answer_time = VALUES(answer_time),
		end_time = VALUES(end_time),
		end_reason = VALUES(end_reason),
		cost = VALUES(cost),
		direction = VALUES(direction),
		pulse = VALUES(pulse),
		pulses = VALUES(pulses),
		price_per_pulse = VALUES(price_per_pulse),
		updated_at = CURRENT_TIMESTAMP
`

// namedExecer is satisfied by both *sqlx.DB and *sqlx.Tx.
type namedExecer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// Upsert inserts the record or refreshes every provider field of an
// existing one.
func (r *CallRepository) Upsert(ctx context.Context, record domain.CallRecord) error {
	return upsert(ctx, r.db, record)
}

// UpsertMany writes all records in one transaction.
func (r *CallRepository) UpsertMany(ctx context.Context, records []domain.CallRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, record := range records {
		if err := upsert(ctx, tx, record); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit call records: %w", err)
	}

	return nil
}

func upsert(ctx context.Context, exec namedExecer, record domain.CallRecord) error {
	if _, err := exec.NamedExecContext(ctx, upsertCallRecordQuery, record); err != nil {
		return fmt.Errorf("failed to upsert call record %s: %w", record.CallUUID, err)
	}

	return nil
}

func (r *CallRepository) GetByUUID(ctx context.Context, callUUID string) (*domain.CallRecord, error) {
	query := `SELECT ` + callRecordColumns + ` FROM call_records WHERE call_uuid = ?`

	var record domain.CallRecord
	if err := r.db.GetContext(ctx, &record, query, callUUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get call record: %w", err)
	}

	return &record, nil
}

// List returns one page of records, newest first, optionally filtered by
// provider status.
func (r *CallRepository) List(
	ctx context.Context,
	status *string,
	page, pageSize int,
) ([]domain.CallRecord, int64, error) {
	offset := (page - 1) * pageSize

	where := ""
	args := []any{}
	if status != nil {
		where = "WHERE status = ?"
		args = append(args, *status)
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM call_records " + where
	if err := r.db.GetContext(ctx, &totalCount, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count call records: %w", err)
	}

	query := `SELECT ` + callRecordColumns + ` FROM call_records ` + where + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	records := []domain.CallRecord{}
	if err := r.db.SelectContext(ctx, &records, query, append(args, pageSize, offset)...); err != nil {
		return nil, 0, fmt.Errorf("failed to list call records: %w", err)
	}

	return records, totalCount, nil
}

// GetStats counts stored records per provider status.
func (r *CallRepository) GetStats(ctx context.Context) (domain.CallStats, error) {
	query := `
		SELECT status, COUNT(*) AS total
		FROM call_records
		GROUP BY status
	`

	var rows []struct {
		Status string `db:"status"`
		Total  int64  `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return domain.CallStats{}, fmt.Errorf("failed to get call stats: %w", err)
	}

	stats := domain.CallStats{ByStatus: make(map[string]int64, len(rows))}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Total
		stats.Total += row.Total
	}

	return stats, nil
}
