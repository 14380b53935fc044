package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/studio-orders/internal/http/response"
	"github.com/magabrotheeeer/studio-orders/internal/lib/calendar"
	"github.com/magabrotheeeer/studio-orders/internal/lib/jwt"
	"github.com/magabrotheeeer/studio-orders/internal/models"
	"github.com/magabrotheeeer/studio-orders/internal/services/order"
)

type memoryRepo struct {
	orders map[int64]*models.Order
}

func (m *memoryRepo) Insert(_ context.Context, ownerID int64, title, _ string, months int) (*models.Order, error) {
	o := &models.Order{ID: int64(len(m.orders) + 1), OwnerID: ownerID, Title: title, Months: months, Status: models.StatusActive}
	m.orders[o.ID] = o
	return o, nil
}

func (m *memoryRepo) ListByOwner(_ context.Context, ownerID int64) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range m.orders {
		if o.OwnerID == ownerID && o.Status == models.StatusActive {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memoryRepo) Read(_ context.Context, id int64) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return o, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, upd models.OrderUpdate) (bool, error) {
	o, ok := m.orders[id]
	if !ok {
		return false, nil
	}
	if upd.Status != nil {
		o.Status = *upd.Status
	}
	return true, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := m.orders[id]
	delete(m.orders, id)
	return ok, nil
}

type noCache struct{}

func (noCache) Get(context.Context, string, any) (bool, error) {
	return false, nil
}

func (noCache) Set(context.Context, string, any, time.Duration) error {
	return nil
}

func (noCache) Invalidate(context.Context, ...string) error {
	return nil
}

func newTestRouter(t *testing.T) (http.Handler, *jwt.MakerImpl, *memoryRepo) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &memoryRepo{orders: map[int64]*models.Order{
		1: {
			ID:           1,
			OwnerID:      42,
			Title:        "Sunset",
			DateTransfer: calendar.Date{Year: 2026, Month: time.January, Day: 8},
			Months:       3,
			DatePickup:   calendar.Date{Year: 2026, Month: time.April, Day: 8},
			Status:       models.StatusActive,
		},
	}}
	maker := jwt.NewJWTMaker("test-secret", time.Hour)

	r := chi.NewRouter()
	RegisterRoutes(r, log, order.NewService(repo, noCache{}, log), maker, rate.NewLimiter(rate.Inf, 1))
	return r, maker, repo
}

func do(t *testing.T, h http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestRoutes_HealthIsPublic(t *testing.T) {
	h, _, _ := newTestRouter(t)
	rec, resp := do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, response.StatusOK, resp.Status)
}

func TestRoutes_OrdersRequireAdminToken(t *testing.T) {
	h, maker, _ := newTestRouter(t)

	rec, _ := do(t, h, http.MethodGet, "/api/v1/orders/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	userToken, err := maker.GenerateToken("someone", "user")
	require.NoError(t, err)
	rec, _ = do(t, h, http.MethodGet, "/api/v1/orders/1", userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoutes_AdminFlow(t *testing.T) {
	h, maker, repo := newTestRouter(t)
	token, err := maker.GenerateToken("operator", jwt.RoleAdmin)
	require.NoError(t, err)

	rec, resp := do(t, h, http.MethodGet, "/api/v1/orders/1", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, response.StatusOK, resp.Status)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/owners/42/orders", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodPatch, "/api/v1/orders/1", token, `{"status":"picked_up"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusPickedUp, repo.orders[1].Status)

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/orders/1", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.orders)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/orders/1", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
