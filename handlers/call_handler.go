package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/smscountry-call-gateway/internal/domain"
	"github.com/onurcolak/smscountry-call-gateway/internal/service"
	"github.com/onurcolak/smscountry-call-gateway/pkg/response"
	"github.com/onurcolak/smscountry-call-gateway/pkg/smscountry"
	"github.com/onurcolak/smscountry-call-gateway/pkg/validator"
)

type callService interface {
	InitiateCall(ctx context.Context, number string) (smscountry.Status, string, error)
	InitiateBulkCall(ctx context.Context, numbers []string) (smscountry.Status, []string, error)
	TerminateCall(ctx context.Context, callUUID string) (smscountry.Status, error)
	GetDetails(ctx context.Context, callUUID string) (smscountry.Status, *smscountry.CallDetails, error)
	GetCollection(ctx context.Context, filter smscountry.CollectionFilter) (smscountry.Status, []smscountry.CallDetails, error)
	GetCallHistory(ctx context.Context, status *string, page, pageSize int) ([]domain.CallRecord, int64, error)
	GetStoredCall(ctx context.Context, callUUID string) (*domain.CallRecord, error)
	GetStats(ctx context.Context) (domain.CallStats, error)
	GetTrackedCalls(ctx context.Context) ([]domain.TrackedCall, error)
}

type CallHandler struct {
	service callService
}

func NewCallHandler(service callService) *CallHandler {
	return &CallHandler{service: service}
}

type InitiateCallRequest struct {
	Number string `json:"number" validate:"required,phone"`
}

type InitiateBulkCallRequest struct {
	Numbers []string `json:"numbers" validate:"required,min=1,max=100,dive,required,phone"`
}

type InitiateCallResponse struct {
	CallUUID string `json:"callUuid"`
}

type InitiateBulkCallResponse struct {
	CallUUIDs []string `json:"callUuids"`
}

// InitiateCall godoc
// @Summary Place a call
// @Description Places an outbound call through SMSCountry and tracks it until it ends
// @Tags calls
// @Accept json
// @Produce json
// @Param X-Api-Key header string true "API key for calls"
// @Param request body InitiateCallRequest true "Number to call"
// @Success 200 {object} response.ProviderResponse{data=InitiateCallResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ProviderResponse
// @Router /api/v1/calls [post]
func (h *CallHandler) InitiateCall(c echo.Context) error {
	var req InitiateCallRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	status, callUUID, err := h.service.InitiateCall(c.Request().Context(), req.Number)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Provider(c, status, InitiateCallResponse{CallUUID: callUUID})
}

// InitiateBulkCall godoc
// @Summary Place several calls
// @Description Places one call per number in a single provider request
// @Tags calls
// @Accept json
// @Produce json
// @Param X-Api-Key header string true "API key for calls"
// @Param request body InitiateBulkCallRequest true "Numbers to call"
// @Success 200 {object} response.ProviderResponse{data=InitiateBulkCallResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ProviderResponse
// @Router /api/v1/calls/bulk [post]
func (h *CallHandler) InitiateBulkCall(c echo.Context) error {
	var req InitiateBulkCallRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	status, callUUIDs, err := h.service.InitiateBulkCall(c.Request().Context(), req.Numbers)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Provider(c, status, InitiateBulkCallResponse{CallUUIDs: callUUIDs})
}

// TerminateCall godoc
// @Summary Hang up a call
// @Tags calls
// @Produce json
// @Param X-Api-Key header string true "API key for calls"
// @Param uuid path string true "Call UUID"
// @Success 200 {object} response.ProviderResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ProviderResponse
// @Router /api/v1/calls/{uuid} [patch]
func (h *CallHandler) TerminateCall(c echo.Context) error {
	status, err := h.service.TerminateCall(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return serviceError(c, err)
	}

	return response.Provider(c, status, nil)
}

// GetDetails godoc
// @Summary Get call details
// @Description Fetches a call from SMSCountry and stores it in the local history
// @Tags calls
// @Produce json
// @Param X-Api-Key header string true "API key for calls"
// @Param uuid path string true "Call UUID"
// @Success 200 {object} response.ProviderResponse{data=smscountry.CallDetails}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ProviderResponse
// @Router /api/v1/calls/{uuid} [get]
func (h *CallHandler) GetDetails(c echo.Context) error {
	status, details, err := h.service.GetDetails(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return serviceError(c, err)
	}

	return response.Provider(c, status, details)
}

// GetCollection godoc
// @Summary List calls
// @Description Lists calls from SMSCountry and stores them in the local history
// @Tags calls
// @Produce json
// @Param X-Api-Key header string true "API key for calls"
// @Param from query string false "Start time (YYYY-MM-DD HH:MM:SS or RFC3339)"
// @Param to query string false "End time (YYYY-MM-DD HH:MM:SS or RFC3339)"
// @Param callerId query string false "Caller ID"
// @Param offset query int false "Offset"
// @Param limit query int false "Limit"
// @Success 200 {object} response.ProviderResponse{data=[]smscountry.CallDetails}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ProviderResponse
// @Router /api/v1/calls [get]
func (h *CallHandler) GetCollection(c echo.Context) error {
	filter, err := parseCollectionFilter(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	status, list, err := h.service.GetCollection(c.Request().Context(), filter)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Provider(c, status, list)
}

// GetCallHistory godoc
// @Summary Get stored call history
// @Tags calls
// @Produce json
// @Param X-Api-Key header string true "API key for calls"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param status query string false "Filter by provider call status"
// @Success 200 {object} response.PaginatedResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/calls/history [get]
func (h *CallHandler) GetCallHistory(c echo.Context) error {
	page, pageSize, err := parsePaginationParams(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	var status *string
	if s := c.QueryParam("status"); s != "" {
		status = &s
	}

	records, totalCount, err := h.service.GetCallHistory(c.Request().Context(), status, page, pageSize)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Paginated(c, records, page, pageSize, totalCount)
}

// GetStoredCall godoc
// @Summary Get a stored call record
// @Description Returns the last record stored for a call without contacting the provider
// @Tags calls
// @Produce json
// @Param X-Api-Key header string true "API key for calls"
// @Param uuid path string true "Call UUID"
// @Success 200 {object} response.SuccessResponse{data=domain.CallRecord}
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/calls/history/{uuid} [get]
func (h *CallHandler) GetStoredCall(c echo.Context) error {
	callUUID := c.Param("uuid")

	record, err := h.service.GetStoredCall(c.Request().Context(), callUUID)
	if err != nil {
		return response.InternalServerError(c, err)
	}
	if record == nil {
		return response.NotFound(c, fmt.Sprintf("no stored record for call %s", callUUID))
	}

	return response.Ok(c, record)
}

// GetStats godoc
// @Summary Get call statistics
// @Description Returns stored calls counted by provider status
// @Tags calls
// @Produce json
// @Param X-Api-Key header string true "API key for calls"
// @Success 200 {object} response.SuccessResponse{data=domain.CallStats}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/calls/stats [get]
func (h *CallHandler) GetStats(c echo.Context) error {
	stats, err := h.service.GetStats(c.Request().Context())
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Ok(c, stats)
}

// GetTrackedCalls godoc
// @Summary Get tracked calls
// @Description Returns calls placed through the gateway that have not ended yet
// @Tags calls
// @Produce json
// @Param X-Api-Key header string true "API key for calls"
// @Success 200 {object} response.SuccessResponse{data=[]domain.TrackedCall}
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/calls/tracked [get]
func (h *CallHandler) GetTrackedCalls(c echo.Context) error {
	calls, err := h.service.GetTrackedCalls(c.Request().Context())
	if errors.Is(err, service.ErrTrackerNotConfigured) {
		return response.ServiceUnavailable(c, err.Error())
	}
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Ok(c, calls)
}

func serviceError(c echo.Context, err error) error {
	if errors.Is(err, smscountry.ErrInvalidArgument) {
		return response.BadRequest(c, err)
	}
	return response.InternalServerError(c, err)
}

var queryTimeLayouts = []string{smscountry.ProviderTimeLayout, time.RFC3339}

func parseQueryTime(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("%s must be YYYY-MM-DD HH:MM:SS or RFC3339", name)
}

func parseQueryInt(name, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}

	return &n, nil
}

// parseCollectionFilter reads the optional list filters. Range checks are
// left to the call client.
func parseCollectionFilter(c echo.Context) (smscountry.CollectionFilter, error) {
	var (
		filter smscountry.CollectionFilter
		err    error
	)

	if filter.From, err = parseQueryTime("from", c.QueryParam("from")); err != nil {
		return filter, err
	}
	if filter.To, err = parseQueryTime("to", c.QueryParam("to")); err != nil {
		return filter, err
	}
	if filter.Offset, err = parseQueryInt("offset", c.QueryParam("offset")); err != nil {
		return filter, err
	}
	if filter.Limit, err = parseQueryInt("limit", c.QueryParam("limit")); err != nil {
		return filter, err
	}

	if values, ok := c.QueryParams()["callerId"]; ok && len(values) > 0 {
		callerID := values[0]
		filter.CallerID = &callerID
	}

	return filter, nil
}

func parsePaginationParams(c echo.Context) (int, int, error) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)

	pageStr := c.QueryParam("page")
	pageSizeStr := c.QueryParam("pageSize")

	page := defaultPage
	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p <= 0 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
		page = p
	}

	pageSize := defaultPageSize
	if pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps <= 0 || ps > maxPageSize {
			return 0, 0, fmt.Errorf("pageSize must be between 1 and %d", maxPageSize)
		}

		pageSize = ps
	}

	return page, pageSize, nil
}
