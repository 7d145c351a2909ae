package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestRequestMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.NewNop()), Recovery(zap.NewNop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	t.Run("request id is generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
		if w.Code != http.StatusNoContent || w.Header().Get(RequestIDHeader) == "" {
			t.Fatalf("unexpected response: %d %v", w.Code, w.Header())
		}
	})

	t.Run("request id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(RequestIDHeader, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get(RequestIDHeader); got != "abc" {
			t.Fatalf("expected abc, got %q", got)
		}
	})

	t.Run("panic", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
