package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"harumnesia/internal/logger"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var HttpClientTracer = otel.Tracer("HttpClient")

// MaxResponseBody caps how much of an upstream body is read.
const MaxResponseBody = 8 << 20

// HTTPClient is a small JSON client with trace propagation.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	headers map[string]string
}

// RequestOptions for request configuration
type RequestOptions struct {
	Method      string
	URL         string
	Headers     map[string]string
	QueryParams map[string]string
	Body        interface{}
	Timeout     time.Duration
	Context     context.Context
}

// Response wraps a decoded upstream body with its metadata.
type Response[T any] struct {
	Data       T
	StatusCode int
	Headers    http.Header
	RawBody    []byte
}

// StatusError is returned for non-2xx upstream answers.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.URL, e.StatusCode, body)
}

// NewHTTPClient creates a new HTTP client instance
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: make(map[string]string),
	}
}

// SetDefaultHeader adds a header sent with every request.
func (c *HTTPClient) SetDefaultHeader(key, value string) {
	c.headers[key] = value
}

// Do performs the request and decodes a 2xx JSON body into result when
// result is non-nil. Transport errors are wrapped so callers can inspect
// the underlying net error with errors.Is / errors.As.
func (c *HTTPClient) Do(opts RequestOptions, result interface{}) (*Response[struct{}], error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	ctx, span := HttpClientTracer.Start(ctx, "HttpClient "+opts.Method)
	defer span.End()

	fullURL, err := c.BuildURL(opts.URL, opts.QueryParams)
	if err != nil {
		logger.Error(ctx, "Failed to build URL", logger.Err(err))
		return nil, fmt.Errorf("build URL: %w", err)
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		bodyBytes, err := encodeBody(opts.Body)
		if err != nil {
			logger.Error(ctx, "Failed to encode body", logger.Err(err))
			return nil, fmt.Errorf("encode body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.setHeaders(req, opts.Headers)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	if span.SpanContext().IsValid() {
		req.Header.Set("X-Trace-ID", span.SpanContext().TraceID().String())
	}

	start := time.Now()
	logger.Debug(ctx, "HttpClient request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		logger.Warn(ctx, "HttpClient request failed",
			slog.String("url", req.URL.String()),
			logger.Err(err),
		)
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	out := &Response[struct{}]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		RawBody:    rawBody,
	}

	logger.Debug(ctx, "HttpClient response",
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if !out.IsSuccess() {
		span.SetStatus(codes.Error, resp.Status)
		return out, &StatusError{Method: opts.Method, URL: fullURL, StatusCode: resp.StatusCode, Body: rawBody}
	}

	if result != nil && len(bytes.TrimSpace(rawBody)) > 0 {
		if err := json.Unmarshal(rawBody, result); err != nil {
			return out, fmt.Errorf("decode response: %w", err)
		}
	}
	return out, nil
}

// Get performs a GET and decodes the body into T.
func Get[T any](c *HTTPClient, ctx context.Context, endpoint string, query map[string]string) (*Response[T], error) {
	var data T
	resp, err := c.Do(RequestOptions{Method: http.MethodGet, URL: endpoint, QueryParams: query, Context: ctx}, &data)
	return typed(resp, data), err
}

// Post performs a JSON POST and decodes the body into T.
func Post[T any](c *HTTPClient, ctx context.Context, endpoint string, body interface{}, timeout time.Duration) (*Response[T], error) {
	var data T
	resp, err := c.Do(RequestOptions{Method: http.MethodPost, URL: endpoint, Body: body, Context: ctx, Timeout: timeout}, &data)
	return typed(resp, data), err
}

func typed[T any](resp *Response[struct{}], data T) *Response[T] {
	if resp == nil {
		return nil
	}
	return &Response[T]{Data: data, StatusCode: resp.StatusCode, Headers: resp.Headers, RawBody: resp.RawBody}
}

// BuildURL resolves endpoint against the base URL and appends query params.
func (c *HTTPClient) BuildURL(endpoint string, queryParams map[string]string) (string, error) {
	var fullURL string
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		fullURL = endpoint
	} else {
		fullURL = c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	}

	if len(queryParams) == 0 {
		return fullURL, nil
	}

	u, err := url.Parse(fullURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range queryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func encodeBody(body interface{}) ([]byte, error) {
	switch v := body.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case io.Reader:
		return io.ReadAll(v)
	default:
		return json.Marshal(body)
	}
}

func (c *HTTPClient) setHeaders(req *http.Request, headers map[string]string) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	if req.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

func (r *Response[T]) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
