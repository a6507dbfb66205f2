package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/smscountry-call-gateway/internal/domain"
	"github.com/onurcolak/smscountry-call-gateway/internal/service"
	"github.com/onurcolak/smscountry-call-gateway/pkg/response"
	"github.com/onurcolak/smscountry-call-gateway/pkg/smscountry"
	validatorpkg "github.com/onurcolak/smscountry-call-gateway/pkg/validator"
)

type fakeCallService struct {
	status     smscountry.Status
	err        error
	trackedErr error

	lastNumber string
	lastUUID   string
	lastFilter smscountry.CollectionFilter
	lastStatus *string
}

func (f *fakeCallService) InitiateCall(ctx context.Context, number string) (smscountry.Status, string, error) {
	f.lastNumber = number
	if f.err != nil {
		return smscountry.Status{}, "", f.err
	}
	return f.status, "uuid-1", nil
}

func (f *fakeCallService) InitiateBulkCall(ctx context.Context, numbers []string) (smscountry.Status, []string, error) {
	uuids := make([]string, len(numbers))
	for i := range numbers {
		uuids[i] = fmt.Sprintf("uuid-%d", i+1)
	}
	return f.status, uuids, f.err
}

func (f *fakeCallService) TerminateCall(ctx context.Context, callUUID string) (smscountry.Status, error) {
	f.lastUUID = callUUID
	return f.status, f.err
}

func (f *fakeCallService) GetDetails(ctx context.Context, callUUID string) (smscountry.Status, *smscountry.CallDetails, error) {
	f.lastUUID = callUUID
	return f.status, &smscountry.CallDetails{CallUUID: callUUID, Status: "completed"}, f.err
}

func (f *fakeCallService) GetCollection(
	ctx context.Context,
	filter smscountry.CollectionFilter,
) (smscountry.Status, []smscountry.CallDetails, error) {
	f.lastFilter = filter
	return f.status, []smscountry.CallDetails{{CallUUID: "uuid-1"}}, f.err
}

func (f *fakeCallService) GetCallHistory(
	ctx context.Context,
	status *string,
	page, pageSize int,
) ([]domain.CallRecord, int64, error) {
	f.lastStatus = status
	return []domain.CallRecord{{CallUUID: "uuid-1"}}, 1, nil
}

func (f *fakeCallService) GetStoredCall(ctx context.Context, callUUID string) (*domain.CallRecord, error) {
	if callUUID != "uuid-1" {
		return nil, nil
	}
	return &domain.CallRecord{CallUUID: callUUID, Status: "completed"}, nil
}

func (f *fakeCallService) GetStats(ctx context.Context) (domain.CallStats, error) {
	return domain.CallStats{ByStatus: map[string]int64{"completed": 1}, Total: 1}, nil
}

func (f *fakeCallService) GetTrackedCalls(ctx context.Context) ([]domain.TrackedCall, error) {
	return nil, f.trackedErr
}

func okStatus() smscountry.Status {
	return smscountry.Status{Success: true, Message: "Operation succeeded.", APIID: "api-1"}
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validatorpkg.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestInitiateCall_BadJSON(t *testing.T) {
	handler := NewCallHandler(nil)

	c, rec := newTestContext(http.MethodPost, "/api/v1/calls", `{"number":`)

	if err := handler.InitiateCall(c); err != nil {
		t.Fatalf("InitiateCall returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var resp response.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("expected failed response with error, got %+v", resp)
	}
}

func TestInitiateCall_InvalidNumberReturns422(t *testing.T) {
	// service is nil on purpose; validation must fail before it is called.
	handler := NewCallHandler(nil)

	c, rec := newTestContext(http.MethodPost, "/api/v1/calls", `{"number":"not-a-number"}`)

	if err := handler.InitiateCall(c); err != nil {
		t.Fatalf("InitiateCall returned error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}

	var resp validatorpkg.ValidationErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if _, ok := resp.Details["number"]; !ok {
		t.Fatalf("expected validation details for 'number', got %v", resp.Details)
	}
}

func TestInitiateCall_Success(t *testing.T) {
	svc := &fakeCallService{status: okStatus()}
	handler := NewCallHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/v1/calls", `{"number":"+15551234567"}`)

	if err := handler.InitiateCall(c); err != nil {
		t.Fatalf("InitiateCall returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastNumber != "+15551234567" {
		t.Errorf("expected number to be passed through, got %q", svc.lastNumber)
	}

	var resp struct {
		Success bool                 `json:"success"`
		APIID   string               `json:"apiId"`
		Data    InitiateCallResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if !resp.Success || resp.Data.CallUUID != "uuid-1" || resp.APIID != "api-1" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestInitiateCall_ProviderFailureReturns502(t *testing.T) {
	svc := &fakeCallService{status: smscountry.Status{Success: false, Message: "Exception from resty"}}
	handler := NewCallHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/v1/calls", `{"number":"+15551234567"}`)

	if err := handler.InitiateCall(c); err != nil {
		t.Fatalf("InitiateCall returned error: %v", err)
	}

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}

	var resp response.ProviderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if resp.Message != "Exception from resty" {
		t.Fatalf("expected provider message, got %q", resp.Message)
	}
}

func TestInitiateCall_InvalidArgumentReturns400(t *testing.T) {
	svc := &fakeCallService{err: fmt.Errorf("number: %w", smscountry.ErrInvalidArgument)}
	handler := NewCallHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/v1/calls", `{"number":"+15551234567"}`)

	if err := handler.InitiateCall(c); err != nil {
		t.Fatalf("InitiateCall returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestInitiateBulkCall_EmptyListReturns422(t *testing.T) {
	handler := NewCallHandler(nil)

	c, rec := newTestContext(http.MethodPost, "/api/v1/calls/bulk", `{"numbers":[]}`)

	if err := handler.InitiateBulkCall(c); err != nil {
		t.Fatalf("InitiateBulkCall returned error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestInitiateBulkCall_Success(t *testing.T) {
	handler := NewCallHandler(&fakeCallService{status: okStatus()})

	c, rec := newTestContext(http.MethodPost, "/api/v1/calls/bulk", `{"numbers":["+15551234567","+15557654321"]}`)

	if err := handler.InitiateBulkCall(c); err != nil {
		t.Fatalf("InitiateBulkCall returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Data InitiateBulkCallResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if len(resp.Data.CallUUIDs) != 2 {
		t.Fatalf("expected 2 call uuids, got %v", resp.Data.CallUUIDs)
	}
}

func TestTerminateCall_PassesUUID(t *testing.T) {
	svc := &fakeCallService{status: okStatus()}
	handler := NewCallHandler(svc)

	c, rec := newTestContext(http.MethodPatch, "/api/v1/calls/uuid-9", "")
	c.SetParamNames("uuid")
	c.SetParamValues("uuid-9")

	if err := handler.TerminateCall(c); err != nil {
		t.Fatalf("TerminateCall returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastUUID != "uuid-9" {
		t.Fatalf("expected uuid-9, got %q", svc.lastUUID)
	}
}

func TestGetCollection_ParsesFilter(t *testing.T) {
	svc := &fakeCallService{status: okStatus()}
	handler := NewCallHandler(svc)

	target := "/api/v1/calls?from=2024-05-01+10:00:00&to=2024-05-02T00:00:00Z&callerId=%2B1555&offset=10&limit=5"
	c, rec := newTestContext(http.MethodGet, target, "")

	if err := handler.GetCollection(c); err != nil {
		t.Fatalf("GetCollection returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	f := svc.lastFilter
	if f.From == nil || f.From.Format(smscountry.ProviderTimeLayout) != "2024-05-01 10:00:00" {
		t.Errorf("unexpected From: %v", f.From)
	}
	if f.To == nil || f.To.Format(smscountry.ProviderTimeLayout) != "2024-05-02 00:00:00" {
		t.Errorf("unexpected To: %v", f.To)
	}
	if f.CallerID == nil || *f.CallerID != "+1555" {
		t.Errorf("unexpected CallerID: %v", f.CallerID)
	}
	if f.Offset == nil || *f.Offset != 10 {
		t.Errorf("unexpected Offset: %v", f.Offset)
	}
	if f.Limit == nil || *f.Limit != 5 {
		t.Errorf("unexpected Limit: %v", f.Limit)
	}
}

func TestGetCollection_NoFilter(t *testing.T) {
	svc := &fakeCallService{status: okStatus()}
	handler := NewCallHandler(svc)

	c, _ := newTestContext(http.MethodGet, "/api/v1/calls", "")

	if err := handler.GetCollection(c); err != nil {
		t.Fatalf("GetCollection returned error: %v", err)
	}

	f := svc.lastFilter
	if f.From != nil || f.To != nil || f.CallerID != nil || f.Offset != nil || f.Limit != nil {
		t.Fatalf("expected empty filter, got %+v", f)
	}
}

func TestGetCollection_BadTimeReturns400(t *testing.T) {
	handler := NewCallHandler(&fakeCallService{status: okStatus()})

	c, rec := newTestContext(http.MethodGet, "/api/v1/calls?from=yesterday", "")

	if err := handler.GetCollection(c); err != nil {
		t.Fatalf("GetCollection returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetCallHistory_StatusFilterAndPagination(t *testing.T) {
	svc := &fakeCallService{}
	handler := NewCallHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/v1/calls/history?page=1&pageSize=10&status=completed", "")

	if err := handler.GetCallHistory(c); err != nil {
		t.Fatalf("GetCallHistory returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastStatus == nil || *svc.lastStatus != "completed" {
		t.Fatalf("expected status filter 'completed', got %v", svc.lastStatus)
	}

	var resp response.PaginatedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if resp.TotalCount != 1 || resp.TotalPages != 1 {
		t.Fatalf("unexpected pagination %+v", resp)
	}
}

func TestGetCallHistory_BadPageSize(t *testing.T) {
	handler := NewCallHandler(&fakeCallService{})

	c, rec := newTestContext(http.MethodGet, "/api/v1/calls/history?pageSize=500", "")

	if err := handler.GetCallHistory(c); err != nil {
		t.Fatalf("GetCallHistory returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetTrackedCalls_NoTrackerReturns503(t *testing.T) {
	handler := NewCallHandler(&fakeCallService{trackedErr: service.ErrTrackerNotConfigured})

	c, rec := newTestContext(http.MethodGet, "/api/v1/calls/tracked", "")

	if err := handler.GetTrackedCalls(c); err != nil {
		t.Fatalf("GetTrackedCalls returned error: %v", err)
	}

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestGetStoredCall_UnknownReturns404(t *testing.T) {
	handler := NewCallHandler(&fakeCallService{})

	c, rec := newTestContext(http.MethodGet, "/api/v1/calls/history/uuid-404", "")
	c.SetParamNames("uuid")
	c.SetParamValues("uuid-404")

	if err := handler.GetStoredCall(c); err != nil {
		t.Fatalf("GetStoredCall returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetStoredCall_Found(t *testing.T) {
	handler := NewCallHandler(&fakeCallService{})

	c, rec := newTestContext(http.MethodGet, "/api/v1/calls/history/uuid-1", "")
	c.SetParamNames("uuid")
	c.SetParamValues("uuid-1")

	if err := handler.GetStoredCall(c); err != nil {
		t.Fatalf("GetStoredCall returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
