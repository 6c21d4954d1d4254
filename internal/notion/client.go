package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/inkwell-sites/inkwell/internal/config"
	"github.com/inkwell-sites/inkwell/internal/errors"
	"github.com/inkwell-sites/inkwell/internal/logfields"
	"github.com/inkwell-sites/inkwell/internal/metrics"
	"github.com/inkwell-sites/inkwell/internal/retry"
)

const defaultPageSize = 100

// Client talks to the source store HTTP API. It owns authentication, paging,
// and retry; callers receive raw records in store-native order.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	version    string
	databaseID string
	policy     retry.Policy
	recorder   metrics.Recorder
}

// NewClient builds a client from the transport configuration block.
func NewClient(cfg config.NotionConfig, recorder metrics.Recorder) *Client {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		version:    cfg.Version,
		databaseID: cfg.DatabaseID,
		policy:     retry.FromConfig(cfg.Retry),
		recorder:   recorder,
	}
}

type queryRequest struct {
	Filter      any    `json:"filter,omitempty"`
	Sorts       []any  `json:"sorts,omitempty"`
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type childrenResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

// QueryPublishedPages returns the published pages of the configured database,
// filtered on the Published checkbox and sorted by Date descending at the
// store boundary. Result order is store-provided and must not be re-sorted.
func (c *Client) QueryPublishedPages(ctx context.Context) ([]Page, error) {
	started := time.Now()

	var pages []Page
	cursor := ""
	for {
		body := queryRequest{
			Filter: map[string]any{
				"property": "Published",
				"checkbox": map[string]any{"equals": true},
			},
			Sorts: []any{
				map[string]any{"property": "Date", "direction": "descending"},
			},
			StartCursor: cursor,
			PageSize:    defaultPageSize,
		}

		var resp queryResponse
		endpoint := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, url.PathEscape(c.databaseID))
		if err := c.do(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
			c.recorder.ObserveSourceRequestDuration("query_database", time.Since(started), false)
			return nil, errors.QueryFailed(c.databaseID, err)
		}

		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	c.recorder.ObserveSourceRequestDuration("query_database", time.Since(started), true)
	slog.Debug("Queried published pages", slog.Int("count", len(pages)))
	return pages, nil
}

// ListBlockChildren returns the direct children of a page or block id in
// store-native order, draining pagination.
func (c *Client) ListBlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	started := time.Now()

	var blocks []Block
	cursor := ""
	for {
		endpoint := fmt.Sprintf("%s/v1/blocks/%s/children?page_size=%d", c.baseURL, url.PathEscape(blockID), defaultPageSize)
		if cursor != "" {
			endpoint += "&start_cursor=" + url.QueryEscape(cursor)
		}

		var resp childrenResponse
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
			c.recorder.ObserveSourceRequestDuration("list_block_children", time.Since(started), false)
			return nil, errors.BlockFetchFailed(blockID, err)
		}

		blocks = append(blocks, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	c.recorder.ObserveSourceRequestDuration("list_block_children", time.Since(started), true)
	return blocks, nil
}

// Ping verifies credentials against the store (used by `inkwell check`).
func (c *Client) Ping(ctx context.Context) error {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/v1/users/me", nil, &out); err != nil {
		return errors.UpstreamError(err, "source store ping failed")
	}
	return nil
}

// do issues one logical request with backoff on transient failures (429 and
// 5xx). The request body is re-marshalled per attempt.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.policy.Delay(attempt)
			if ra := retryAfter(lastErr); ra > delay {
				delay = ra
			}
			slog.Debug("Retrying source store request",
				logfields.Operation(method+" "+endpoint),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.doOnce(ctx, method, endpoint, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !errors.IsRetryable(err) {
			return err
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, errors.SeverityError, "failed to encode request body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, errors.SeverityError, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WrapRetryable(err, errors.CategoryNetwork, errors.SeverityError, "source store request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		e := errors.Retryable(errors.CategoryUpstream, errors.SeverityError, "source store returned transient error").
			WithContext("status", resp.StatusCode)
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			e = e.WithContext("retry_after", ra)
		}
		return e
	}
	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.New(errors.CategoryUpstream, errors.SeverityError, "source store rejected request").
			WithContext("status", resp.StatusCode).
			WithContext("body", string(payload))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, errors.CategoryUpstream, errors.SeverityError, "failed to decode source store response")
	}
	return nil
}

// retryAfter extracts a Retry-After hint recorded on a transient error, if any.
func retryAfter(err error) time.Duration {
	ie, ok := err.(*errors.InkwellError)
	if !ok || ie.Context == nil {
		return 0
	}
	raw, ok := ie.Context["retry_after"].(string)
	if !ok {
		return 0
	}
	secs, err2 := strconv.Atoi(raw)
	if err2 != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
