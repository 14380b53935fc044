package middlewarectx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimitMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allows requests within burst", func(t *testing.T) {
		handler := RateLimitMiddleware(newNoopLogger(), rate.NewLimiter(10, 10))(ok)
		for range 10 {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
		}
	})

	t.Run("blocks requests exceeding limit", func(t *testing.T) {
		handler := RateLimitMiddleware(newNoopLogger(), rate.NewLimiter(rate.Every(1e12), 1))(ok)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Contains(t, rr.Body.String(), "too many requests")
	})
}
