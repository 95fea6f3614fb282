package middleware_http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"harumnesia/internal/logger"
	"harumnesia/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("HttpMiddleware")

// MaxRequestBody bounds what a handler may read from a request body.
const MaxRequestBody = 1 << 20

// bodyWriter keeps a copy of the response body, up to MaxBodyLogged.
type bodyWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	if room := logger.MaxBodyLogged - w.buf.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		w.buf.Write(b[:room])
	}
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// TraceMiddleware starts a span per request, continuing any trace found in
// the incoming headers, returns the trace id as X-Trace-ID, logs the
// request and response and records the request metrics.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := c.Request
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx, span := tracer.Start(ctx, r.Method+" "+route)
		metrics.APIActiveRequests.Inc()
		defer func() {
			metrics.APIActiveRequests.Dec()
			if rec := recover(); rec != nil {
				span.RecordError(fmt.Errorf("panic: %v", rec))
				span.SetStatus(codes.Error, "panic occurred")
				span.End()
				panic(rec)
			}
			span.End()
		}()

		c.Request = r.WithContext(ctx)
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBody)
		}
		body, err := logger.CaptureBody(c.Request)
		if err != nil {
			logger.Warn(ctx, "Failed to read request body", logger.Err(err))
		}
		logger.Info(ctx, "HTTP", logger.RequestAttrs(c.Request, body, "incoming::request")...)

		bw := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Header("X-Trace-ID", span.SpanContext().TraceID().String())

		start := time.Now()

		c.Next()

		duration := time.Since(start)

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		switch {
		case status >= http.StatusInternalServerError:
			span.SetStatus(codes.Error, "internal server error")
		case status >= http.StatusBadRequest:
			span.SetStatus(codes.Error, "client error")
		default:
			span.SetStatus(codes.Ok, "")
		}

		metrics.APIRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.APIRequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

		logger.Info(ctx, "HTTP", logger.ResponseAttrs(c.Request, c.Writer.Header(), status, bw.buf.Bytes(), duration, "incoming::response")...)
	}
}
