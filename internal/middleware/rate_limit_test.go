package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-assethub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if email := c.GetHeader("X-Test-Email"); email != "" {
			c.Set("email", email)
		}
	})
	r.Use(middleware.RateLimitByUser(1, 2))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func pingAs(r *gin.Engine, email string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if email != "" {
		req.Header.Set("X-Test-Email", email)
	}
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitByUser(t *testing.T) {
	t.Run("success burst then throttled", func(t *testing.T) {
		r := newLimitedRouter()

		assert.Equal(t, http.StatusOK, pingAs(r, "emp@acme.test"))
		assert.Equal(t, http.StatusOK, pingAs(r, "emp@acme.test"))
		assert.Equal(t, http.StatusTooManyRequests, pingAs(r, "emp@acme.test"))
	})

	t.Run("success limits are keyed per user", func(t *testing.T) {
		r := newLimitedRouter()

		assert.Equal(t, http.StatusOK, pingAs(r, "emp@acme.test"))
		assert.Equal(t, http.StatusOK, pingAs(r, "emp@acme.test"))
		assert.Equal(t, http.StatusTooManyRequests, pingAs(r, "emp@acme.test"))

		// A different caller still has a full bucket
		assert.Equal(t, http.StatusOK, pingAs(r, "other@acme.test"))
	})

	t.Run("success anonymous requests pass through", func(t *testing.T) {
		r := newLimitedRouter()

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, pingAs(r, ""))
		}
	})
}
