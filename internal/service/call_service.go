package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onurcolak/smscountry-call-gateway/internal/domain"
	"github.com/onurcolak/smscountry-call-gateway/pkg/logger"
	"github.com/onurcolak/smscountry-call-gateway/pkg/smscountry"
)

// ErrTrackerNotConfigured is returned by tracker-backed operations when the
// gateway runs without Redis.
var ErrTrackerNotConfigured = errors.New("call tracker not configured")

// Small internal interfaces so we can test without touching the provider, DB or Redis.
type callProvider interface {
	InitiateCall(ctx context.Context, number string) (smscountry.Status, string, error)
	InitiateBulkCall(ctx context.Context, numbers []string) (smscountry.Status, []string, error)
	TerminateCall(ctx context.Context, callUUID string) (smscountry.Status, error)
	GetDetails(ctx context.Context, callUUID string) (smscountry.Status, *smscountry.CallDetails, error)
	GetCollection(ctx context.Context, filter smscountry.CollectionFilter) (smscountry.Status, []smscountry.CallDetails, error)
}

type callRepository interface {
	Upsert(ctx context.Context, record domain.CallRecord) error
	UpsertMany(ctx context.Context, records []domain.CallRecord) error
	GetByUUID(ctx context.Context, callUUID string) (*domain.CallRecord, error)
	List(ctx context.Context, status *string, page, pageSize int) ([]domain.CallRecord, int64, error)
	GetStats(ctx context.Context) (domain.CallStats, error)
}

type callTracker interface {
	TrackCall(ctx context.Context, call domain.TrackedCall) error
	GetTrackedCalls(ctx context.Context) ([]domain.TrackedCall, error)
	UntrackCall(ctx context.Context, callUUID string) error
}

type CallService struct {
	provider callProvider
	repo     callRepository
	tracker  callTracker
	now      func() time.Time
}

// NewCallService wires the provider client to local storage. repo and
// tracker may be nil; the matching features are then skipped.
func NewCallService(provider callProvider, repo callRepository, tracker callTracker) *CallService {
	return &CallService{
		provider: provider,
		repo:     repo,
		tracker:  tracker,
		now:      time.Now,
	}
}

func (s *CallService) InitiateCall(ctx context.Context, number string) (smscountry.Status, string, error) {
	status, callUUID, err := s.provider.InitiateCall(ctx, number)
	if err != nil {
		return status, "", err
	}

	if !status.Success {
		logger.Warnf("Provider rejected call to %s: %s", number, status.Message)
		return status, "", nil
	}

	logger.Infof("Initiated call %s to %s (apiId: %s)", callUUID, number, status.APIID)
	s.track(ctx, domain.TrackedCall{CallUUID: callUUID, Number: number, APIID: status.APIID})

	return status, callUUID, nil
}

func (s *CallService) InitiateBulkCall(ctx context.Context, numbers []string) (smscountry.Status, []string, error) {
	status, callUUIDs, err := s.provider.InitiateBulkCall(ctx, numbers)
	if err != nil {
		return status, nil, err
	}

	if !status.Success {
		logger.Warnf("Provider rejected bulk call to %d numbers: %s", len(numbers), status.Message)
		return status, nil, nil
	}

	logger.Infof("Initiated %d calls (apiId: %s)", len(callUUIDs), status.APIID)

	for i, callUUID := range callUUIDs {
		call := domain.TrackedCall{CallUUID: callUUID, APIID: status.APIID}
		// The provider answers in request order, so numbers line up when
		// the lengths match.
		if len(callUUIDs) == len(numbers) {
			call.Number = numbers[i]
		}
		s.track(ctx, call)
	}

	return status, callUUIDs, nil
}

func (s *CallService) TerminateCall(ctx context.Context, callUUID string) (smscountry.Status, error) {
	status, err := s.provider.TerminateCall(ctx, callUUID)
	if err != nil {
		return status, err
	}

	if status.Success {
		logger.Infof("Terminated call %s", callUUID)
	} else {
		logger.Warnf("Failed to terminate call %s: %s", callUUID, status.Message)
	}

	return status, nil
}

// GetDetails fetches a call from the provider and stores the record.
func (s *CallService) GetDetails(ctx context.Context, callUUID string) (smscountry.Status, *smscountry.CallDetails, error) {
	status, details, err := s.provider.GetDetails(ctx, callUUID)
	if err != nil || !status.Success {
		return status, nil, err
	}

	if s.repo != nil {
		if err := s.repo.Upsert(ctx, domain.NewCallRecord(*details)); err != nil {
			logger.Warnf("Failed to store call record %s: %v", callUUID, err)
		}
	}

	return status, details, nil
}

// GetCollection lists calls from the provider and stores every record.
func (s *CallService) GetCollection(
	ctx context.Context,
	filter smscountry.CollectionFilter,
) (smscountry.Status, []smscountry.CallDetails, error) {
	status, list, err := s.provider.GetCollection(ctx, filter)
	if err != nil || !status.Success {
		return status, nil, err
	}

	if s.repo != nil && len(list) > 0 {
		records := make([]domain.CallRecord, 0, len(list))
		for _, d := range list {
			records = append(records, domain.NewCallRecord(d))
		}
		if err := s.repo.UpsertMany(ctx, records); err != nil {
			logger.Warnf("Failed to store %d call records: %v", len(records), err)
		}
	}

	return status, list, nil
}

// SyncTrackedCalls refreshes every tracked call from the provider. Ended
// calls are stored and untracked; running ones are stored and kept.
func (s *CallService) SyncTrackedCalls(ctx context.Context) ([]domain.SyncResult, error) {
	if s.tracker == nil {
		return nil, ErrTrackerNotConfigured
	}

	calls, err := s.tracker.GetTrackedCalls(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked calls: %w", err)
	}

	if len(calls) == 0 {
		logger.Debugf("No tracked calls to sync")
		return nil, nil
	}

	logger.Infof("Syncing %d tracked calls", len(calls))

	results := make([]domain.SyncResult, 0, len(calls))
	for _, call := range calls {
		results = append(results, s.syncCall(ctx, call))
	}

	return results, nil
}

func (s *CallService) syncCall(ctx context.Context, call domain.TrackedCall) domain.SyncResult {
	result := domain.SyncResult{CallUUID: call.CallUUID}

	status, details, err := s.provider.GetDetails(ctx, call.CallUUID)
	if err != nil {
		result.Error = err
		return result
	}
	if !status.Success {
		result.Error = fmt.Errorf("provider: %s", status.Message)
		logger.Warnf("Failed to refresh call %s: %s", call.CallUUID, status.Message)
		return result
	}

	if s.repo != nil {
		if err := s.repo.Upsert(ctx, domain.NewCallRecord(*details)); err != nil {
			result.Error = err
			logger.Errorf("Failed to store call record %s: %v", call.CallUUID, err)
			return result
		}
	}

	result.Success = true
	result.Ended = details.Ended()

	if result.Ended {
		if err := s.tracker.UntrackCall(ctx, call.CallUUID); err != nil {
			logger.Warnf("Failed to untrack ended call %s: %v", call.CallUUID, err)
		} else {
			logger.Infof("Call %s ended (%s), no longer tracked", call.CallUUID, details.EndReason)
		}
	}

	return result
}

// TrackingEnabled reports whether a call tracker is configured.
func (s *CallService) TrackingEnabled() bool {
	return s.tracker != nil
}

func (s *CallService) GetTrackedCalls(ctx context.Context) ([]domain.TrackedCall, error) {
	if s.tracker == nil {
		return nil, ErrTrackerNotConfigured
	}
	return s.tracker.GetTrackedCalls(ctx)
}

func (s *CallService) GetCallHistory(
	ctx context.Context,
	status *string,
	page, pageSize int,
) ([]domain.CallRecord, int64, error) {
	if s.repo == nil {
		return nil, 0, fmt.Errorf("call repository not configured")
	}
	return s.repo.List(ctx, status, page, pageSize)
}

// GetStoredCall returns the last stored record for a call, or nil when the
// gateway has never seen it.
func (s *CallService) GetStoredCall(ctx context.Context, callUUID string) (*domain.CallRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("call repository not configured")
	}
	return s.repo.GetByUUID(ctx, callUUID)
}

func (s *CallService) GetStats(ctx context.Context) (domain.CallStats, error) {
	if s.repo == nil {
		return domain.CallStats{}, fmt.Errorf("call repository not configured")
	}
	return s.repo.GetStats(ctx)
}

func (s *CallService) track(ctx context.Context, call domain.TrackedCall) {
	if s.tracker == nil {
		return
	}

	call.InitiatedAt = s.now().UTC()
	if err := s.tracker.TrackCall(ctx, call); err != nil {
		logger.Warnf("Failed to track call %s: %v", call.CallUUID, err)
	}
}
