// Package external provides adapters for external services: the forecast
// provider, chat and email senders, and cache backends.
package external

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const defaultHTTPTimeout = 10 * time.Second

var errServerStatus = stderrors.New("server error")

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// newBreaker trips after five consecutive failures and lets a trial request through after
// the timeout.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// doWithBreaker sends req through the circuit breaker. Transport errors and
// 5xx or 429 responses count as failures; other responses are returned to
// the caller to inspect. There are no retries.
func doWithBreaker(client HTTPClient, cb *gobreaker.CircuitBreaker, req *http.Request, logger ports.Logger) (*http.Response, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			closeBody(resp, logger)
			return nil, fmt.Errorf("%w: status %d", errServerStatus, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewExternalAPIError(fmt.Sprintf("%s circuit open", cb.Name()), err)
		}
		return nil, errors.NewExternalAPIError(fmt.Sprintf("%s request failed", cb.Name()), err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, errors.NewExternalAPIError("unexpected result type from circuit breaker", nil)
	}
	return resp, nil
}

func closeBody(resp *http.Response, logger ports.Logger) {
	if err := resp.Body.Close(); err != nil {
		logger.Warn("Failed to close response body", ports.F("error", err))
	}
}

// readErrorBody returns a short excerpt of a failed response for logs.
func readErrorBody(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil {
		return ""
	}
	return string(body)
}
