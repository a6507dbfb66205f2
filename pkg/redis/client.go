package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/onurcolak/smscountry-call-gateway/environments"
	"github.com/onurcolak/smscountry-call-gateway/internal/domain"
	"github.com/onurcolak/smscountry-call-gateway/pkg/logger"
)

// Client keeps the set of calls placed through the gateway that the sync
// scheduler still has to follow.
type Client struct {
	client valkey.Client
	ttl    time.Duration
}

const (
	trackedCallKeyPrefix = "tracked_call:"
	defaultTrackedTTL    = 24 * time.Hour
)

func NewRedisClient(cfg environments.RedisConfig) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Connected to Redis (via Valkey client)")

	ttl := cfg.TrackedCallTTL
	if ttl <= 0 {
		ttl = defaultTrackedTTL
	}

	return &Client{client: client, ttl: ttl}, nil
}

func trackedCallKey(callUUID string) string {
	return trackedCallKeyPrefix + callUUID
}

// TrackCall remembers a call until it is untracked or its TTL runs out.
func (c *Client) TrackCall(ctx context.Context, call domain.TrackedCall) error {
	data, err := json.Marshal(call)
	if err != nil {
		return fmt.Errorf("failed to marshal tracked call: %w", err)
	}

	cmd := c.client.B().Set().Key(trackedCallKey(call.CallUUID)).Value(string(data)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to track call %s: %w", call.CallUUID, err)
	}

	logger.Debugf("Tracking call %s (number: %s)", call.CallUUID, call.Number)

	return nil
}

func (c *Client) GetTrackedCall(ctx context.Context, callUUID string) (*domain.TrackedCall, error) {
	result := c.client.Do(ctx, c.client.B().Get().Key(trackedCallKey(callUUID)).Build())
	if result.Error() != nil {
		if valkey.IsValkeyNil(result.Error()) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tracked call: %w", result.Error())
	}

	data, err := result.ToString()
	if err != nil {
		return nil, fmt.Errorf("failed to read tracked call: %w", err)
	}

	var call domain.TrackedCall
	if err := json.Unmarshal([]byte(data), &call); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tracked call: %w", err)
	}

	return &call, nil
}

// GetTrackedCalls scans every tracked call. Entries that vanish or fail to
// decode between SCAN and GET are skipped.
func (c *Client) GetTrackedCalls(ctx context.Context) ([]domain.TrackedCall, error) {
	pattern := trackedCallKeyPrefix + "*"

	var keys []string
	var cursor uint64
	for {
		result := c.client.Do(ctx, c.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build())
		if result.Error() != nil {
			return nil, fmt.Errorf("failed to scan tracked calls: %w", result.Error())
		}

		scanResult, err := result.AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("failed to parse scan result: %w", err)
		}

		keys = append(keys, scanResult.Elements...)
		cursor = scanResult.Cursor

		if cursor == 0 {
			break
		}
	}

	calls := make([]domain.TrackedCall, 0, len(keys))
	for _, key := range keys {
		call, err := c.GetTrackedCall(ctx, strings.TrimPrefix(key, trackedCallKeyPrefix))
		if err != nil {
			logger.Warnf("Skipping tracked call key %q: %v", key, err)
			continue
		}
		if call == nil {
			continue
		}

		calls = append(calls, *call)
	}

	return calls, nil
}

func (c *Client) UntrackCall(ctx context.Context, callUUID string) error {
	if err := c.client.Do(ctx, c.client.B().Del().Key(trackedCallKey(callUUID)).Build()).Error(); err != nil {
		return fmt.Errorf("failed to untrack call %s: %w", callUUID, err)
	}

	return nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}
