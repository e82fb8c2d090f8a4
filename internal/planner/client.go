package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Client provides access to the Planner Service.
type Client interface {
	// GeneratePlan sends the request and returns the structured schedule.
	GeneratePlan(ctx context.Context, req PlanRequest) (*PlanResponse, error)

	// Available checks whether the Planner Service is reachable.
	Available(ctx context.Context) bool
}

// httpClient implements Client against the Planner Service HTTP API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a Client that talks to the Planner Service.
func NewHTTPClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// wireRequest is the JSON body sent to POST /v1/plan.
type wireRequest struct {
	Model string      `json:"model"`
	Input PlanRequest `json:"input"`
}

// wireResponse is the JSON body returned by POST /v1/plan. The plan
// payload arrives as model text and may be fenced or prefaced, so it is
// extracted rather than decoded directly.
type wireResponse struct {
	Model  string `json:"model"`
	Output string `json:"output"`
}

func (c *httpClient) GeneratePlan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := wireRequest{Model: c.cfg.Model, Input: req}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			plan, perr := ExtractJSON(resp.Output, ValidatePlanResponse)
			if perr == nil {
				c.observe(req.Date, start, nil)
				return &plan, nil
			}
			err = perr
		}
		lastErr = err

		// Don't retry on context cancellation/timeout.
		if ctx.Err() != nil {
			break
		}
	}

	err := classify(ctx, lastErr)
	c.observe(req.Date, start, err)
	return nil, err
}

func classify(ctx context.Context, lastErr error) error {
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(lastErr):
		return ErrUnavailable
	case errors.Is(lastErr, ErrInvalidOutput):
		return lastErr
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
}

func (c *httpClient) observe(date string, start time.Time, err error) {
	c.observer.OnCallComplete(CallEvent{
		Date:      date,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

func (c *httpClient) doRequest(ctx context.Context, body wireRequest) (*wireResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/v1/plan"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("planner returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp wireResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/v1/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
