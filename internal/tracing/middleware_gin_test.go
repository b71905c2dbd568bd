package tracing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	return recorder
}

func attrValue(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestGinMiddlewareRecordsSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := setupRecorder(t)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Next()
	})
	r.Use(GinMiddleware())
	r.GET("/quotes/:quoteId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quotes/42", nil)
	r.ServeHTTP(w, req)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}

	span := spans[0]
	if span.Name() != "HTTP GET /quotes/:quoteId" {
		t.Fatalf("unexpected span name %q", span.Name())
	}
	if v, ok := attrValue(span, "http.status_code"); !ok || v.AsInt64() != http.StatusOK {
		t.Fatalf("unexpected http.status_code attribute: %v", v)
	}
	if v, ok := attrValue(span, "http.route"); !ok || v.AsString() != "/quotes/:quoteId" {
		t.Fatalf("unexpected http.route attribute: %v", v)
	}
	if v, ok := attrValue(span, "request_id"); !ok || v.AsString() != "req-123" {
		t.Fatalf("unexpected request_id attribute: %v", v)
	}
	if span.Status().Code == codes.Error {
		t.Fatalf("span should not carry an error status on success")
	}
}

func TestGinMiddlewareMarksServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := setupRecorder(t)

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("database unavailable"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}

	span := spans[0]
	if span.Status().Code != codes.Error {
		t.Fatalf("expected error status, got %v", span.Status().Code)
	}
	if len(span.Events()) == 0 {
		t.Fatalf("expected the handler error to be recorded on the span")
	}
}
