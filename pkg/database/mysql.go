package database

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/smscountry-call-gateway/environments"
	"github.com/onurcolak/smscountry-call-gateway/pkg/logger"
)

func NewMySQLDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("Connected to MySQL database")
	return db, nil
}

func RunMigrations(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS call_records (
		call_uuid VARCHAR(64) NOT NULL PRIMARY KEY,
		number VARCHAR(32) NOT NULL DEFAULT '',
		caller_id VARCHAR(64) NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT '',
		ring_time DATETIME NULL,
		answer_time DATETIME NULL,
		end_time DATETIME NULL,
		end_reason VARCHAR(64) NOT NULL DEFAULT '',
		cost VARCHAR(32) NOT NULL DEFAULT '',
		direction VARCHAR(16) NOT NULL DEFAULT '',
		pulse VARCHAR(16) NOT NULL DEFAULT '',
		pulses VARCHAR(16) NOT NULL DEFAULT '',
		price_per_pulse VARCHAR(16) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_call_records_status (status),
		INDEX idx_call_records_created_at (created_at),
		INDEX idx_call_records_end_time (end_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Infof("Database migrations completed")

	return nil
}

func SeedTestData(db *sqlx.DB) error {
	var count int

	if err := db.Get(&count, "SELECT COUNT(*) FROM call_records"); err != nil {
		return err
	}

	if count > 0 {
		logger.Infof("Database already has %d call records, skipping seed", count)
		return nil
	}

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)

	sampleCalls := []struct {
		number    string
		status    string
		endReason string
		answered  bool
		duration  time.Duration
	}{
		{"+919876543210", "completed", "NORMAL", true, 95 * time.Second},
		{"+919812345678", "completed", "HANGUP", true, 30 * time.Second},
		{"+919898989898", "no-answer", "NO_ANSWER", false, 0},
		{"+919800000001", "busy", "USER_BUSY", false, 0},
		{"+919811122233", "completed", "NORMAL", true, 4 * time.Minute},
	}

	for i, call := range sampleCalls {
		ringTime := base.Add(time.Duration(i) * 5 * time.Minute)
		endTime := ringTime.Add(20 * time.Second)

		var answerTime *time.Time
		if call.answered {
			answered := ringTime.Add(5 * time.Second)
			answerTime = &answered
			endTime = answered.Add(call.duration)
		}

		_, err := db.Exec(
			`INSERT INTO call_records
				(call_uuid, number, caller_id, status, ring_time, answer_time, end_time, end_reason,
				 cost, direction, pulse, pulses, price_per_pulse)
			VALUES (?, ?, 'SMSCountry', ?, ?, ?, ?, ?, '0.00 INR', 'Outbound', '30', '0', '0.7')`,
			uuid.NewString(), call.number, call.status, ringTime, answerTime, endTime, call.endReason,
		)
		if err != nil {
			return fmt.Errorf("failed to seed test data: %w", err)
		}
	}

	logger.Infof("Seeded %d test call records", len(sampleCalls))
	return nil
}
