package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("valid inbound id is echoed", func(t *testing.T) {
		inbound := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", inbound)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != inbound {
			t.Errorf("X-Request-ID = %q, want %q", got, inbound)
		}
	})

	t.Run("non-uuid inbound id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid\ninjected")

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		got := w.Header().Get("X-Request-ID")
		if got == "not-a-uuid\ninjected" {
			t.Fatal("middleware echoed a non-UUID request id")
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("replacement id %q is not a UUID: %v", got, err)
		}
	})

	t.Run("missing inbound id gets generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if _, err := uuid.Parse(w.Header().Get("X-Request-ID")); err != nil {
			t.Errorf("generated id is not a UUID: %v", err)
		}
	})
}
