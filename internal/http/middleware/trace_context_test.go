package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/talent-analytics-backend/internal/platform/ctxutil"
)

func newTraceRouter(seen *ctxutil.TraceData, pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(pre...)
	r.Use(AttachTraceContext())
	r.GET("/ping", func(c *gin.Context) {
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			*seen = *td
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAttachTraceContext(t *testing.T) {
	t.Run("generated", func(t *testing.T) {
		var seen ctxutil.TraceData
		rec := httptest.NewRecorder()
		newTraceRouter(&seen).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if seen.TraceID == "" || seen.RequestID == "" {
			t.Fatalf("ids not generated: %+v", seen)
		}
		if rec.Header().Get(headerTraceID) != seen.TraceID || rec.Header().Get(headerRequestID) != seen.RequestID {
			t.Fatalf("headers %v do not match context %+v", rec.Header(), seen)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		var seen ctxutil.TraceData
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(headerTraceID, " trace-abc ")
		req.Header.Set(headerRequestID, "req-123")
		rec := httptest.NewRecorder()
		newTraceRouter(&seen).ServeHTTP(rec, req)
		if seen.TraceID != "trace-abc" || seen.RequestID != "req-123" {
			t.Fatalf("got %+v", seen)
		}
	})

	t.Run("span wins over header", func(t *testing.T) {
		tid, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		sid, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
		sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: tid, SpanID: sid, TraceFlags: trace.FlagsSampled})
		withSpan := func(c *gin.Context) {
			ctx := trace.ContextWithSpanContext(context.Background(), sc)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		}
		var seen ctxutil.TraceData
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(headerTraceID, "client-supplied")
		newTraceRouter(&seen, withSpan).ServeHTTP(httptest.NewRecorder(), req)
		if seen.TraceID != tid.String() {
			t.Fatalf("TraceID=%q want %q", seen.TraceID, tid.String())
		}
	})
}
