package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/onurcolak/smscountry-call-gateway/internal/domain"
	"github.com/onurcolak/smscountry-call-gateway/pkg/logger"
	"github.com/onurcolak/smscountry-call-gateway/pkg/webhook"
)

// ErrSyncUnavailable is returned by Start when there are no tracked calls to
// sync because the call tracker (Redis) is not configured.
var ErrSyncUnavailable = errors.New("call sync unavailable: call tracker is not configured")

// syncProcessor matches CallService.
type syncProcessor interface {
	SyncTrackedCalls(ctx context.Context) ([]domain.SyncResult, error)
	TrackingEnabled() bool
}

type alertSender interface {
	SendAlert(ctx context.Context, alert webhook.Alert) error
}

type Scheduler struct {
	callService     syncProcessor
	alerts          alertSender
	interval        time.Duration
	alertThreshold  int // consecutive all-fail runs before an alert
	lastAlertSentAt time.Time

	running  bool
	stopChan chan struct{}
	doneChan chan struct{}
	mu       sync.RWMutex

	lastRunAt   time.Time
	callsSynced int64
	callsEnded  int64
	runsCount   int64

	consecutiveAllFailCount int
}

// NewScheduler builds a scheduler that refreshes tracked calls every
// interval. alerts may be nil.
func NewScheduler(callService syncProcessor, alerts alertSender, interval time.Duration, alertThreshold int) *Scheduler {
	return &Scheduler{
		callService:    callService,
		alerts:         alerts,
		interval:       interval,
		alertThreshold: alertThreshold,
	}
}

func (s *Scheduler) StartWithParams(ctx context.Context, intervalSeconds int, alertThreshold int) error {
	if intervalSeconds <= 0 {
		intervalSeconds = 60
	}

	s.mu.Lock()
	s.interval = time.Duration(intervalSeconds) * time.Second
	s.alertThreshold = alertThreshold
	s.consecutiveAllFailCount = 0
	s.mu.Unlock()

	return s.Start(ctx)
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()

	if s.running {
		s.mu.Unlock()
		logger.Warnf("Scheduler is already running")
		return nil
	}

	if !s.callService.TrackingEnabled() {
		s.mu.Unlock()
		return ErrSyncUnavailable
	}

	if s.interval <= 0 {
		s.mu.Unlock()
		return fmt.Errorf("invalid sync interval: %v", s.interval)
	}

	s.running = true
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	interval := s.interval
	s.mu.Unlock()

	logger.Infof("Starting call sync scheduler with interval: %v", interval)

	go s.run(ctx, interval)

	return nil
}

func (s *Scheduler) run(ctx context.Context, interval time.Duration) {
	defer close(s.doneChan)

	s.syncCalls(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.syncCalls(ctx)
			logger.Debugf("Next sync in %v", interval)

		case <-s.stopChan:
			logger.Warnf("Scheduler received stop signal")
			return

		case <-ctx.Done():
			logger.Warnf("Scheduler context cancelled")
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		}
	}
}

func (s *Scheduler) syncCalls(ctx context.Context) {
	s.mu.Lock()
	s.lastRunAt = time.Now()
	s.runsCount++
	runNumber := s.runsCount
	alertThreshold := s.alertThreshold
	s.mu.Unlock()

	logger.Debugf("[Run #%d] Starting call sync", runNumber)

	results, err := s.callService.SyncTrackedCalls(ctx)
	if err != nil {
		logger.Errorf("[Run #%d] Error syncing calls: %v", runNumber, err)
		return
	}

	if len(results) == 0 {
		logger.Debugf("[Run #%d] No tracked calls", runNumber)
		return
	}

	synced, ended := 0, 0
	for _, r := range results {
		if r.Success {
			synced++
		}
		if r.Ended {
			ended++
		}
	}

	s.mu.Lock()
	s.callsSynced += int64(synced)
	s.callsEnded += int64(ended)

	if synced == 0 {
		s.consecutiveAllFailCount++
		logger.Warnf("[Run #%d] All %d call refreshes failed (consecutive count: %d/%d)",
			runNumber, len(results), s.consecutiveAllFailCount, alertThreshold)

		if alertThreshold > 0 && s.consecutiveAllFailCount >= alertThreshold && s.alerts != nil {
			go s.sendAlert(runNumber, s.consecutiveAllFailCount, len(results))
		}
	} else {
		if s.consecutiveAllFailCount > 0 {
			logger.Debugf("[Run #%d] Resetting consecutive failure count (was: %d)",
				runNumber, s.consecutiveAllFailCount)
		}
		s.consecutiveAllFailCount = 0
	}
	s.mu.Unlock()

	logger.Infof("[Run #%d] Refreshed %d calls, %d ok, %d ended, %d failed",
		runNumber, len(results), synced, ended, len(results)-synced)
}

func (s *Scheduler) sendAlert(runNumber int64, consecutiveFailures int, callsInRun int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	alert := webhook.Alert{
		Alert:               "consecutive_sync_fail",
		RunNumber:           runNumber,
		ConsecutiveFailures: consecutiveFailures,
		CallsInRun:          callsInRun,
		Timestamp:           time.Now().Format(time.RFC3339),
		Message: fmt.Sprintf(
			"All %d call refreshes failed for %d consecutive runs",
			callsInRun,
			consecutiveFailures,
		),
	}

	if err := s.alerts.SendAlert(ctx, alert); err != nil {
		logger.Errorf("Failed to send alert: %v", err)
		return
	}

	s.mu.Lock()
	s.lastAlertSentAt = time.Now()
	s.mu.Unlock()
	logger.Infof("Alert sent (consecutive failures: %d)", consecutiveFailures)
}

func (s *Scheduler) Stop() error {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()
		logger.Warnf("Scheduler is not running")
		return nil
	}

	s.running = false
	stopChan := s.stopChan
	doneChan := s.doneChan
	s.mu.Unlock()

	close(stopChan)
	<-doneChan

	logger.Infof("Scheduler stopped")
	return nil
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) GetStatus() SchedulerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := SchedulerStatus{
		Running:                 s.running,
		LastRunAt:               s.lastRunAt,
		CallsSynced:             s.callsSynced,
		CallsEnded:              s.callsEnded,
		RunsCount:               s.runsCount,
		Interval:                s.interval.String(),
		ConsecutiveAllFailCount: s.consecutiveAllFailCount,
		LastAlertSentAt:         s.lastAlertSentAt,
	}

	if s.running && !s.lastRunAt.IsZero() {
		status.NextRunAt = s.lastRunAt.Add(s.interval)
	}

	return status
}

type SchedulerStatus struct {
	Running                 bool      `json:"running"`
	LastRunAt               time.Time `json:"lastRunAt,omitempty"`
	NextRunAt               time.Time `json:"nextRunAt,omitempty"`
	CallsSynced             int64     `json:"callsSynced"`
	CallsEnded              int64     `json:"callsEnded"`
	RunsCount               int64     `json:"runsCount"`
	Interval                string    `json:"interval"`
	ConsecutiveAllFailCount int       `json:"consecutiveAllFailCount"`
	LastAlertSentAt         time.Time `json:"lastAlertSentAt,omitempty"`
}
