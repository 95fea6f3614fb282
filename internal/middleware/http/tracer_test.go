package middleware_http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"harumnesia/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func init() {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.TraceContext{})
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusCreated, "application/json", body)
	})
	r.POST("/size", func(c *gin.Context) {
		n, err := io.Copy(io.Discard, c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.JSON(http.StatusOK, gin.H{"read": n})
	})
	r.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	})
	return r
}

func TestTraceMiddlewareKeepsBodyAndSetsTraceID(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"Kala"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != `{"name":"Kala"}` {
		t.Errorf("handler did not see the request body: %q", w.Body.String())
	}
	traceID := w.Header().Get("X-Trace-ID")
	if len(traceID) != 32 || traceID == strings.Repeat("0", 32) {
		t.Errorf("X-Trace-ID = %q", traceID)
	}
}

func TestTraceMiddlewareContinuesIncomingTrace(t *testing.T) {
	r := newRouter()

	const parent = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set("traceparent", "00-"+parent+"-00f067aa0ba902b7-01")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("X-Trace-ID"); got != parent {
		t.Errorf("X-Trace-ID = %q, want %q", got, parent)
	}
}

func TestTraceMiddlewareUnmatchedRoute(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestBodyWriterCapsCapture(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	bw := &bodyWriter{ResponseWriter: c.Writer}

	chunk := strings.Repeat("x", 40000)
	for i := 0; i < 3; i++ {
		if _, err := bw.WriteString(chunk); err != nil {
			t.Fatal(err)
		}
	}
	if rec.Body.Len() != 120000 {
		t.Errorf("written = %d", rec.Body.Len())
	}
	if bw.buf.Len() != 1<<16 {
		t.Errorf("captured = %d, want %d", bw.buf.Len(), 1<<16)
	}
}

func TestTraceMiddlewareLimitsRequestBody(t *testing.T) {
	r := newRouter()

	tests := []struct {
		size int
		want int
	}{
		{size: MaxRequestBody, want: http.StatusOK},
		{size: MaxRequestBody + 1, want: http.StatusRequestEntityTooLarge},
		{size: 8 * MaxRequestBody, want: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/size", strings.NewReader(strings.Repeat("a", tt.size)))
		req.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("body of %d bytes: status = %d, want %d", tt.size, w.Code, tt.want)
		}
	}
}

func TestActiveRequestsGaugeSurvivesPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery(), TraceMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic("handler bug") })

	before := testutil.ToFloat64(metrics.APIActiveRequests)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", w.Code)
		}
	}
	if after := testutil.ToFloat64(metrics.APIActiveRequests); after != before {
		t.Errorf("in-flight gauge = %v after panics, want %v", after, before)
	}
}
