package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"harumnesia/internal/client"
	"harumnesia/internal/logger"
	"harumnesia/internal/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var ClientTracer = otel.Tracer("RecommendClient")

const (
	breakerName      = "ml-service"
	recommendPath    = "/recommend"
	defaultTimeout   = 10 * time.Second
	tripAfterFailure = 5
)

// Client calls POST <base>/recommend behind a circuit breaker.
type Client struct {
	http *client.HTTPClient
	cb   *gobreaker.CircuitBreaker[[]Item]
}

// BreakerSettings tunes the breaker; zero values pick the defaults.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

func NewClient(baseURL string, bs BreakerSettings) *Client {
	if bs.ConsecutiveFailures == 0 {
		bs.ConsecutiveFailures = tripAfterFailure
	}
	if bs.OpenTimeout == 0 {
		bs.OpenTimeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]Item](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.ConsecutiveFailures
		},
		// Only connectivity failures count; a 404 for an unknown perfume
		// says the service is healthy.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsUnavailable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "ML circuit breaker state transition",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	// Per-call deadlines are set through the request context.
	return &Client{
		http: client.NewHTTPClient(baseURL, 0),
		cb:   cb,
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// State exposes the breaker state for health reporting.
func (c *Client) State() string {
	return c.cb.State().String()
}

// Recommend posts payload and returns the ranked items. A timeout of zero
// uses the default of ten seconds.
func (c *Client) Recommend(ctx context.Context, payload interface{}, timeout time.Duration) ([]Item, error) {
	ctx, span := ClientTracer.Start(ctx, "RecommendClient.Recommend")
	defer span.End()

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	start := time.Now()
	items, err := c.cb.Execute(func() ([]Item, error) {
		return c.call(ctx, payload, timeout)
	})
	metrics.MLRequestDuration.Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.Int("ml.items", len(items)),
		attribute.String("ml.breaker", c.cb.State().String()),
	)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return items, nil
}

func (c *Client) call(ctx context.Context, payload interface{}, timeout time.Duration) ([]Item, error) {
	resp, err := c.http.Do(client.RequestOptions{
		Method:  http.MethodPost,
		URL:     recommendPath,
		Body:    payload,
		Timeout: timeout,
		Context: ctx,
	}, nil)
	if err != nil {
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			if statusErr.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, upstreamMessage(statusErr.Body))
			}
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return nil, err
	}
	return ParseItems(resp.RawBody)
}
