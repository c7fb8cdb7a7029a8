// Package client talks to the journal HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/server"
)

// APIError is a non-2xx reply from the journal API.
type APIError struct {
	StatusCode int
	Message    string
	Field      string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api error %d: %s (field %s)", e.StatusCode, e.Message, e.Field)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is a rate-limited journal API client.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
	backoff time.Duration
}

// New creates a Client for the API at cfg.BaseURL.
func New(cfg config.Client, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		logger:  logger.Named("client"),
		limiter: limiter,
		backoff: time.Second,
	}
}

// ListTrades fetches the filtered trade table with its summary.
func (c *Client) ListTrades(ctx context.Context, crit journal.Criteria) (*journal.View, error) {
	var view journal.View
	req := c.client.R().
		SetQueryParams(criteriaParams(crit)).
		SetResult(&view)

	if _, err := c.doRequest(ctx, http.MethodGet, "/api/trades", req); err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return &view, nil
}

// Stats fetches the summary of the filtered trades.
func (c *Client) Stats(ctx context.Context, crit journal.Criteria) (*journal.Summary, error) {
	var summary journal.Summary
	req := c.client.R().
		SetQueryParams(criteriaParams(crit)).
		SetResult(&summary)

	if _, err := c.doRequest(ctx, http.MethodGet, "/api/stats", req); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &summary, nil
}

// AddTrade submits a new trade. The returned warning is non-empty when the
// server recorded the trade but could not persist it.
func (c *Client) AddTrade(ctx context.Context, raw journal.RawTrade) (*models.Trade, string, error) {
	var resp server.SubmitResponse
	req := c.client.R().
		SetBody(raw).
		SetResult(&resp)

	if _, err := c.doRequest(ctx, http.MethodPost, "/api/trades", req); err != nil {
		return nil, "", fmt.Errorf("failed to add trade: %w", err)
	}
	return resp.Trade, resp.Warning, nil
}

// DeleteTrade removes a trade by id.
func (c *Client) DeleteTrade(ctx context.Context, id int64) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "/api/trades/"+strconv.FormatInt(id, 10), nil)
}

// UpdateNotes replaces the notes of a trade.
func (c *Client) UpdateNotes(ctx context.Context, id int64, notes string) (string, error) {
	path := "/api/trades/" + strconv.FormatInt(id, 10) + "/notes"
	return c.mutate(ctx, http.MethodPut, path, server.NotesRequest{Notes: notes})
}

// Clear removes every trade.
func (c *Client) Clear(ctx context.Context) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/api/trades/clear", server.ClearRequest{Confirm: true})
}

// ExportCSV downloads every trade as CSV. It returns
// journal.ErrNothingToExport when the journal is empty.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/export", c.client.R())
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, journal.ErrNothingToExport
		}
		return nil, fmt.Errorf("failed to export trades: %w", err)
	}
	return resp.Body(), nil
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	if _, err := c.doRequest(ctx, http.MethodGet, "/health", c.client.R()); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) (string, error) {
	var warn server.WarningResponse
	req := c.client.R().SetResult(&warn)
	if body != nil {
		req.SetBody(body)
	}

	if _, err := c.doRequest(ctx, method, path, req); err != nil {
		return "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	return warn.Warning, nil
}

func criteriaParams(c journal.Criteria) map[string]string {
	params := map[string]string{}
	if c.Result != "" && c.Result != journal.ResultAll {
		params["result"] = string(c.Result)
	}
	if c.StartDate != "" {
		params["start"] = c.StartDate
	}
	if c.EndDate != "" {
		params["end"] = c.EndDate
	}
	return params
}

// doRequest handles the actual request execution with rate limiting and retry logic.
// Only GET requests are retried; a failed write is reported once.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	req.SetContext(ctx).SetError(&server.ErrorResponse{})

	for i := 0; i < maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil
		}

		shouldRetry := false
		var retryAfter time.Duration

		if err == nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				if seconds, err := strconv.Atoi(resp.Header().Get("Retry-After")); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 {
				shouldRetry = true
			}
			err = apiError(resp)
		} else {
			// Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry || method != http.MethodGet || ctx.Err() != nil {
			return nil, err
		}

		if retryAfter == 0 {
			// Exponential backoff: 1x, 2x, 4x
			retryAfter = c.backoff << i
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}

func apiError(resp *resty.Response) *APIError {
	e := &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	if body, ok := resp.Error().(*server.ErrorResponse); ok && body.Error != "" {
		e.Message = body.Error
		e.Field = body.Field
	}
	return e
}
