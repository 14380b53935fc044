package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/studio-orders/internal/lib/calendar"
	"github.com/magabrotheeeer/studio-orders/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Order, error) {
	args := m.Called(ctx, ownerID)
	orders, _ := args.Get(0).([]*models.Order)
	return orders, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "orders of owner",
			url:  "/owners/42/orders",
			setupMock: func(m *MockService) {
				m.On("ListByOwner", mock.Anything, int64(42)).Return([]*models.Order{{
					ID: 1, OwnerID: 42, Title: "Закат", Months: 3, Status: models.StatusActive,
					DateTransfer: calendar.Date{Year: 2026, Month: time.January, Day: 8},
					DatePickup:   calendar.Date{Year: 2026, Month: time.April, Day: 8},
				}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"date_pickup":"08.04.2026"`,
		},
		{
			name: "no orders is an empty list",
			url:  "/owners/7/orders",
			setupMock: func(m *MockService) {
				m.On("ListByOwner", mock.Anything, int64(7)).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"orders":[]}}`,
		},
		{
			name:           "bad owner id",
			url:            "/owners/abc/orders",
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode owner_id from url"}`,
		},
		{
			name: "service error",
			url:  "/owners/9/orders",
			setupMock: func(m *MockService) {
				m.On("ListByOwner", mock.Anything, int64(9)).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list orders"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			r := chi.NewRouter()
			r.Get("/owners/{owner_id}/orders", New(logger, svc).ServeHTTP)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
