package middlewarectx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/studio-orders/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("secret", time.Hour)
	adminToken, err := maker.GenerateToken("studio-admin", jwt.RoleAdmin)
	require.NoError(t, err)
	userToken, err := maker.GenerateToken("someone", "user")
	require.NoError(t, err)
	foreignToken, err := jwt.NewJWTMaker("other", time.Hour).GenerateToken("studio-admin", jwt.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCalled bool
	}{
		{"missing header", "", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic " + adminToken, http.StatusUnauthorized, false},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, false},
		{"foreign secret", "Bearer " + foreignToken, http.StatusUnauthorized, false},
		{"not admin", "Bearer " + userToken, http.StatusForbidden, false},
		{"admin", "Bearer " + adminToken, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Equal(t, "studio-admin", r.Context().Value(Subject))
				assert.Equal(t, jwt.RoleAdmin, r.Context().Value(Role))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/1", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			JWTMiddleware(maker, newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				assert.Contains(t, rr.Body.String(), `"status":"Error"`)
			}
		})
	}
}
