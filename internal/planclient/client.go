package planclient

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

	"github.com/alexanderramin/mindweave/internal/config"
	"github.com/alexanderramin/mindweave/internal/contract"
)

const (
	plannerPath = "/api/planner"
	healthPath  = "/api/health"
)

// Client talks to a remote planning service speaking the plan request
// contract.
type Client interface {
	// Generate posts a plan request. An infeasible plan is a successful
	// call whose response has Success false.
	Generate(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)

	// Available checks whether the remote health endpoint answers.
	Available(ctx context.Context) bool
}

type httpClient struct {
	cfg      config.RemoteConfig
	http     *http.Client
	observer Observer
}

// New creates a Client for cfg.Endpoint.
func New(cfg config.RemoteConfig, observer Observer) Client {
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

func (c *httpClient) Generate(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error) {
	start := time.Now()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling plan request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	made := 0

	for i := 0; i < attempts; i++ {
		made++
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				Endpoint:  c.cfg.Endpoint,
				Attempts:  made,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return resp, nil
		}
		lastErr = err

		// Neither cancellation nor a rejected request improves on retry
		if ctx.Err() != nil || errors.Is(err, ErrRejected) {
			break
		}
	}

	var final error
	switch {
	case ctx.Err() != nil:
		final = ErrTimeout
	case isConnectionError(lastErr):
		final = ErrUnavailable
	case errors.Is(lastErr, ErrRejected), errors.Is(lastErr, ErrInvalidOutput):
		final = lastErr
	default:
		final = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	c.observer.OnCallComplete(CallEvent{
		Endpoint:  c.cfg.Endpoint,
		Attempts:  made,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(final),
	})
	return nil, final
}

func (c *httpClient) doRequest(ctx context.Context, body []byte) (*contract.PlanResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+plannerPath, bytes.NewReader(body))
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

	switch {
	case httpResp.StatusCode == http.StatusOK:
	case httpResp.StatusCode >= 400 && httpResp.StatusCode < 500:
		var failure contract.PlanResponse
		if json.Unmarshal(respBody, &failure) == nil && failure.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrRejected, failure.Error)
		}
		return nil, fmt.Errorf("%w: status %d", ErrRejected, httpResp.StatusCode)
	default:
		return nil, fmt.Errorf("remote planner returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp contract.PlanResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if err := checkResponse(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// checkResponse rejects bodies that decode but do not describe a plan.
func checkResponse(resp *contract.PlanResponse) error {
	if resp.Success {
		if _, err := resp.BaseAllocation.Dates(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
		return nil
	}
	if resp.Error == "" {
		return fmt.Errorf("%w: failure without error text", ErrInvalidOutput)
	}
	return nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+healthPath, nil)
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
