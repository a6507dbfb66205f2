package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/onurcolak/smscountry-call-gateway/environments"
	"github.com/onurcolak/smscountry-call-gateway/handlers"
	"github.com/onurcolak/smscountry-call-gateway/internal/domain"
	"github.com/onurcolak/smscountry-call-gateway/internal/middlewares"
	"github.com/onurcolak/smscountry-call-gateway/internal/scheduler"
	"github.com/onurcolak/smscountry-call-gateway/internal/service"
	validatorpkg "github.com/onurcolak/smscountry-call-gateway/pkg/validator"
)

type noopSync struct{}

func (noopSync) SyncTrackedCalls(ctx context.Context) ([]domain.SyncResult, error) {
	return nil, nil
}

func (noopSync) TrackingEnabled() bool { return true }

func newTestServer() *echo.Echo {
	cfg := &environments.Config{
		Auth: environments.AuthConfig{CallsAPIKey: "calls-key", SchedulerAPIKey: "scheduler-key"},
		Sync: environments.SyncConfig{Interval: time.Minute},
	}

	sched := scheduler.NewScheduler(noopSync{}, nil, time.Minute, 0)
	// No provider, repository or tracker: only routing and auth are exercised.
	callService := service.NewCallService(nil, nil, nil)

	e := echo.New()
	e.Validator = validatorpkg.New()
	RegisterRoutes(
		e,
		handlers.NewHealthHandler(nil, nil, sched),
		handlers.NewCallHandler(callService),
		handlers.NewSchedulerHandler(sched, context.Background(), cfg),
		cfg,
	)
	return e
}

func TestRoutes_CallsRequireAPIKey(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calls/tracked", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutes_StaticSegmentsWinOverUUID(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calls/tracked", nil)
	req.Header.Set(middlewares.APIKeyHeader, "calls-key")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// The tracked handler answers 503 without a tracker; GetDetails would need a provider.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRoutes_SchedulerKeyIsSeparate(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scheduler/status", nil)
	req.Header.Set(middlewares.APIKeyHeader, "calls-key")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/scheduler/status", nil)
	req.Header.Set(middlewares.APIKeyHeader, "scheduler-key")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_HealthIsOpen(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
