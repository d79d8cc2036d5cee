package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/metrics"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// getJSON issues one GET with the API key attached and decodes the body.
// Transport errors, timeouts, and 5xx responses map to
// domain.ErrServiceUnavailable; 4xx responses surface as-is (they are
// request bugs, not provider outages).
func (c *Client) getJSON(ctx context.Context, op, path string, params url.Values, out any) error {
	metrics.ProviderRequestsTotal.WithLabelValues(op).Inc()
	start := time.Now()
	err := c.doGetJSON(ctx, path, params, out)
	metrics.ProviderDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.ProviderFailuresTotal.WithLabelValues(op).Inc()
	}
	return err
}

func (c *Client) doGetJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("request timed out: %w", domain.ErrServiceUnavailable)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("request timed out: %w", domain.ErrServiceUnavailable)
		}
		return fmt.Errorf("execute request: %v: %w", err, domain.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		statusErr := &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%v: %w", statusErr, domain.ErrServiceUnavailable)
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkStatus maps the provider's body-level status field. ZERO_RESULTS is
// not an error; every other non-OK status is a provider-side failure.
func checkStatus(status, errorMessage string) error {
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	default:
		return fmt.Errorf("provider status %s: %s: %w", status, errorMessage, domain.ErrServiceUnavailable)
	}
}
