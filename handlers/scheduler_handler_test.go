package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/onurcolak/smscountry-call-gateway/environments"
	"github.com/onurcolak/smscountry-call-gateway/internal/domain"
	"github.com/onurcolak/smscountry-call-gateway/internal/scheduler"
)

type idleSync struct{ noTracker bool }

func (idleSync) SyncTrackedCalls(ctx context.Context) ([]domain.SyncResult, error) {
	return nil, nil
}

func (s idleSync) TrackingEnabled() bool { return !s.noTracker }

func TestSchedulerHandler_StartStatusStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := &environments.Config{
		Sync:  environments.SyncConfig{Interval: time.Minute},
		Alert: environments.AlertConfig{IterationCount: 3},
	}
	sched := scheduler.NewScheduler(idleSync{}, nil, cfg.Sync.Interval, cfg.Alert.IterationCount)
	handler := NewSchedulerHandler(sched, ctx, cfg)

	c, rec := newTestContext(http.MethodPost, "/api/v1/scheduler/start", `{"interval":30}`)
	if err := handler.StartScheduler(c); err != nil {
		t.Fatalf("StartScheduler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !sched.IsRunning() {
		t.Fatalf("expected scheduler to be running")
	}

	c, rec = newTestContext(http.MethodGet, "/api/v1/scheduler/status", "")
	if err := handler.GetSchedulerStatus(c); err != nil {
		t.Fatalf("GetSchedulerStatus returned error: %v", err)
	}

	var resp struct {
		Data scheduler.SchedulerStatus `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if resp.Data.Interval != "30s" {
		t.Errorf("expected interval 30s, got %s", resp.Data.Interval)
	}

	c, rec = newTestContext(http.MethodPost, "/api/v1/scheduler/stop", "")
	if err := handler.StopScheduler(c); err != nil {
		t.Fatalf("StopScheduler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if sched.IsRunning() {
		t.Fatalf("expected scheduler to be stopped")
	}
}

func TestSchedulerHandler_StartRejectsBadInterval(t *testing.T) {
	cfg := &environments.Config{Sync: environments.SyncConfig{Interval: time.Minute}}
	sched := scheduler.NewScheduler(idleSync{}, nil, time.Minute, 0)
	handler := NewSchedulerHandler(sched, context.Background(), cfg)

	c, rec := newTestContext(http.MethodPost, "/api/v1/scheduler/start", `{"interval":0}`)
	if err := handler.StartScheduler(c); err != nil {
		t.Fatalf("StartScheduler returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	if sched.IsRunning() {
		t.Fatalf("expected scheduler to stay stopped")
	}
}

func TestSchedulerHandler_StartWithoutTrackerReturns503(t *testing.T) {
	cfg := &environments.Config{Sync: environments.SyncConfig{Interval: time.Minute}}
	sched := scheduler.NewScheduler(idleSync{noTracker: true}, nil, time.Minute, 0)
	handler := NewSchedulerHandler(sched, context.Background(), cfg)

	c, rec := newTestContext(http.MethodPost, "/api/v1/scheduler/start", "")
	if err := handler.StartScheduler(c); err != nil {
		t.Fatalf("StartScheduler returned error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	if sched.IsRunning() {
		t.Fatalf("expected scheduler to stay stopped")
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if body.Success || body.Error != scheduler.ErrSyncUnavailable.Error() {
		t.Errorf("unexpected body: %+v", body)
	}
}
