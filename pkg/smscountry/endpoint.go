package smscountry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://restapi.smscountry.com/v0.1/Accounts"
	DefaultTimeout = 30 * time.Second

	restyTransportName = "resty"
)

// Endpoint holds what is needed to reach the provider: the account base URL
// and a way to build authenticated requests against it.
type Endpoint interface {
	BaseURL() string
	NewRequest(ctx context.Context) *resty.Request
	TransportName() string
}

// RestEndpoint is the resty-backed Endpoint used in production.
type RestEndpoint struct {
	httpClient *resty.Client
	baseURL    string
	authKey    string
}

type EndpointOption func(*RestEndpoint)

// WithBaseURL points the endpoint at a different API root. The auth key is
// still appended as the account segment.
func WithBaseURL(baseURL string) EndpointOption {
	return func(e *RestEndpoint) {
		e.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithTimeout(timeout time.Duration) EndpointOption {
	return func(e *RestEndpoint) {
		if timeout > 0 {
			e.httpClient.SetTimeout(timeout)
		}
	}
}

func NewEndpoint(authKey, authToken string, opts ...EndpointOption) (*RestEndpoint, error) {
	if strings.TrimSpace(authKey) == "" {
		return nil, fmt.Errorf("%w: auth key is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(authToken) == "" {
		return nil, fmt.Errorf("%w: auth token is required", ErrInvalidArgument)
	}

	// No retries: every operation is a single request.
	client := resty.New().
		SetTimeout(DefaultTimeout).
		SetRetryCount(0).
		SetBasicAuth(authKey, authToken).
		SetHeader("Accept", "application/json")

	e := &RestEndpoint{
		httpClient: client,
		baseURL:    DefaultBaseURL,
		authKey:    authKey,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// BaseURL returns the account root, e.g.
// https://restapi.smscountry.com/v0.1/Accounts/<authKey>.
func (e *RestEndpoint) BaseURL() string {
	return e.baseURL + "/" + e.authKey
}

func (e *RestEndpoint) NewRequest(ctx context.Context) *resty.Request {
	return e.httpClient.R().SetContext(ctx)
}

func (e *RestEndpoint) TransportName() string {
	return restyTransportName
}
