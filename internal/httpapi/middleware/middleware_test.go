package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chat-sessions/internal/observability"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), RequestID(), AccessLog())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, observability.RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestRequestID_EchoesClientHeader(t *testing.T) {
	r := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
	if w.Body.String() != "abc-123" {
		t.Fatalf("expected request id in context, got %q", w.Body.String())
	}
}

func TestRequestID_Generated(t *testing.T) {
	r := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	got := w.Header().Get(RequestIDHeader)
	if len(got) != 36 {
		t.Fatalf("expected generated uuid, got %q", got)
	}
	if w.Body.String() != got {
		t.Fatalf("context id %q does not match header %q", w.Body.String(), got)
	}
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != `{"code":50001,"data":null,"message":"internal error"}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
