package smscountry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/smscountry-call-gateway/pkg/logger"
)

const (
	callsPath     = "/Calls/"
	bulkCallsPath = "/Calls/Bulk/"

	// ProviderTimeLayout is how the provider expects FromDate/ToDate.
	ProviderTimeLayout = "2006-01-02 15:04:05"

	noCallUUIDMessage     = "No call UUID included in response."
	noCallUUIDListMessage = "No list of call UUIDs included in response."
)

// CollectionFilter narrows GetCollection. A nil field is not sent.
type CollectionFilter struct {
	From     *time.Time
	To       *time.Time
	CallerID *string
	Offset   *int
	Limit    *int
}

// CallClient wraps the provider's Calls resource.
type CallClient struct {
	endpoint Endpoint
	validate *validator.Validate
}

func NewCallClient(endpoint Endpoint) (*CallClient, error) {
	if isNilEndpoint(endpoint) {
		return nil, fmt.Errorf("%w: endpoint is required", ErrInvalidArgument)
	}

	return &CallClient{
		endpoint: endpoint,
		validate: validator.New(),
	}, nil
}

// InitiateCall places one outbound call and returns its call UUID.
func (c *CallClient) InitiateCall(ctx context.Context, number string) (Status, string, error) {
	if err := c.check("number", number, "required"); err != nil {
		return Status{}, "", err
	}

	env, err := c.send(ctx, http.MethodPost, callsPath, func(r *resty.Request) {
		r.SetFormData(map[string]string{"Number": number})
	})
	if err != nil {
		return c.transportFailure("initiate call", err), "", nil
	}

	status := env.status()
	if !status.Success {
		return status, "", nil
	}
	callUUID := env.callUUID()
	if callUUID == "" {
		return status.localFailure(noCallUUIDMessage), "", nil
	}

	return status, callUUID, nil
}

// InitiateBulkCall places one call per number. UUIDs come back in the
// provider's order.
func (c *CallClient) InitiateBulkCall(ctx context.Context, numbers []string) (Status, []string, error) {
	if err := c.check("numbers", numbers, "required,min=1,dive,required"); err != nil {
		return Status{}, nil, err
	}

	env, err := c.send(ctx, http.MethodPost, bulkCallsPath, func(r *resty.Request) {
		r.SetFormDataFromValues(url.Values{"Number": numbers})
	})
	if err != nil {
		return c.transportFailure("initiate bulk call", err), nil, nil
	}

	status := env.status()
	if !status.Success {
		return status, nil, nil
	}
	callUUIDs, ok := env.callUUIDs()
	if !ok {
		return status.localFailure(noCallUUIDListMessage), nil, nil
	}

	return status, callUUIDs, nil
}

func (c *CallClient) TerminateCall(ctx context.Context, callUUID string) (Status, error) {
	if err := c.check("call UUID", callUUID, "required"); err != nil {
		return Status{}, err
	}

	env, err := c.send(ctx, http.MethodPatch, callPath(callUUID), nil)
	if err != nil {
		return c.transportFailure("terminate call", err), nil
	}

	return env.status(), nil
}

// GetDetails fetches one call record. A successful response without a
// usable Call object is reported as a failure.
func (c *CallClient) GetDetails(ctx context.Context, callUUID string) (Status, *CallDetails, error) {
	if err := c.check("call UUID", callUUID, "required"); err != nil {
		return Status{}, nil, err
	}

	env, err := c.send(ctx, http.MethodGet, callPath(callUUID), nil)
	if err != nil {
		return c.transportFailure("get call details", err), nil, nil
	}

	status := env.status()
	if !status.Success {
		return status, nil, nil
	}
	if !hasPayload(env.Call) {
		return status.localFailure(noDetailsMessage), nil, nil
	}

	details, err := decodeCallDetails(env.Call)
	if err != nil {
		logger.Warnf("Discarding malformed call details for %s: %v", callUUID, err)
		return status.localFailure(noDetailsMessage), nil, nil
	}

	return status, details, nil
}

// GetCollection lists call records matching filter, in provider order.
func (c *CallClient) GetCollection(ctx context.Context, filter CollectionFilter) (Status, []CallDetails, error) {
	query, err := c.collectionQuery(filter)
	if err != nil {
		return Status{}, nil, err
	}

	env, err := c.send(ctx, http.MethodGet, callsPath, func(r *resty.Request) {
		if len(query) > 0 {
			r.SetQueryParams(query)
		}
	})
	if err != nil {
		return c.transportFailure("get call collection", err), nil, nil
	}

	status := env.status()
	if !status.Success {
		return status, nil, nil
	}
	if !hasPayload(env.Calls) {
		return status.localFailure(noDetailsListMessage), nil, nil
	}

	list, err := decodeCallDetailsList(env.Calls)
	if err != nil {
		logger.Warnf("Discarding malformed call details list: %v", err)
		return status.localFailure(noDetailsListMessage), nil, nil
	}

	return status, list, nil
}

func (c *CallClient) collectionQuery(filter CollectionFilter) (map[string]string, error) {
	query := make(map[string]string)

	if filter.From != nil {
		if filter.From.IsZero() {
			return nil, fmt.Errorf("%w: from must be a valid time", ErrInvalidArgument)
		}
		query["FromDate"] = filter.From.Format(ProviderTimeLayout)
	}

	if filter.To != nil {
		if filter.To.IsZero() {
			return nil, fmt.Errorf("%w: to must be a valid time", ErrInvalidArgument)
		}
		query["ToDate"] = filter.To.Format(ProviderTimeLayout)
	}

	if filter.CallerID != nil {
		if err := c.check("caller ID", *filter.CallerID, "required"); err != nil {
			return nil, err
		}
		query["CallerId"] = *filter.CallerID
	}

	if filter.Offset != nil {
		if err := c.check("offset", *filter.Offset, "min=0"); err != nil {
			return nil, err
		}
		query["Offset"] = strconv.Itoa(*filter.Offset)
	}

	if filter.Limit != nil {
		if err := c.check("limit", *filter.Limit, "min=0"); err != nil {
			return nil, err
		}
		query["Limit"] = strconv.Itoa(*filter.Limit)
	}

	return query, nil
}

// send issues one request and decodes the provider envelope. Any error it
// returns is a transport failure: the request did not complete or the body
// was not a provider response.
func (c *CallClient) send(
	ctx context.Context,
	method, path string,
	prepare func(*resty.Request),
) (envelope, error) {
	req := c.endpoint.NewRequest(ctx)
	if prepare != nil {
		prepare(req)
	}

	startTime := time.Now()

	resp, err := req.Execute(method, c.endpoint.BaseURL()+path)
	if err != nil {
		return envelope{}, fmt.Errorf("failed to send request: %w", err)
	}

	logger.Debugf("Call API %s %s completed in %v (status: %d)", method, path, time.Since(startTime), resp.StatusCode())

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return envelope{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode(), err)
	}

	return env, nil
}

func (c *CallClient) transportFailure(operation string, err error) Status {
	logger.Warnf("Failed to %s: %v", operation, err)
	return newStatus(false, "Exception from "+c.endpoint.TransportName(), "")
}

func (c *CallClient) check(field string, value any, tag string) error {
	err := c.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return fmt.Errorf("%w: %s failed the %q check", ErrInvalidArgument, field, validationErrors[0].Tag())
	}

	return fmt.Errorf("%w: %s: %v", ErrInvalidArgument, field, err)
}

// isNilEndpoint also catches a nil pointer (or other nil reference) stored
// in the interface.
func isNilEndpoint(endpoint Endpoint) bool {
	if endpoint == nil {
		return true
	}

	v := reflect.ValueOf(endpoint)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func callPath(callUUID string) string {
	return callsPath + url.PathEscape(callUUID) + "/"
}
