// Package thumbnails resolves preview frame URLs from the external
// thumbnail rendering service.
package thumbnails

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	pkgerrors "opencut-backend/pkg/errors"
)

// Client implements ports.ThumbnailProvider against an HTTP thumbnail
// service. Calls run through a circuit breaker so a degraded renderer
// cannot stall timeline requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

type thumbnailResponse struct {
	URL string `json:"url"`
}

// NewClient creates a thumbnail client for the given service base URL
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "thumbnail-service",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		breaker:    breaker,
		logger:     logger,
	}
}

// ThumbnailURL resolves the preview frame URL for a media asset at the
// given source time in seconds
func (c *Client) ThumbnailURL(ctx context.Context, mediaID string, sourceTime float64) (string, error) {
	if mediaID == "" {
		return "", pkgerrors.NewValidation("media ID is required")
	}
	if sourceTime < 0 {
		return "", pkgerrors.NewValidation("source time cannot be negative")
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, mediaID, sourceTime)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", pkgerrors.NewInternal("thumbnail service is unavailable", err)
		}
		return "", err
	}
	return result.(string), nil
}

func (c *Client) fetch(ctx context.Context, mediaID string, sourceTime float64) (string, error) {
	endpoint := fmt.Sprintf("%s/thumbnails?%s", c.baseURL, url.Values{
		"media_id": {mediaID},
		"time":     {strconv.FormatFloat(sourceTime, 'f', -1, 64)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to build thumbnail request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(err, "thumbnail request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", pkgerrors.NewNotFound("media " + mediaID)
	case resp.StatusCode != http.StatusOK:
		return "", pkgerrors.NewInternal(
			fmt.Sprintf("thumbnail service returned status %d", resp.StatusCode), nil)
	}

	var body thumbnailResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", pkgerrors.Wrap(err, "failed to decode thumbnail response")
	}
	if body.URL == "" {
		return "", pkgerrors.NewInternal("thumbnail service returned an empty URL", nil)
	}
	return body.URL, nil
}
