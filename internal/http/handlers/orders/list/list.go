// Package list реализует HTTP-обработчик списка активных заказов владельца.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/studio-orders/internal/http/response"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
	"github.com/magabrotheeeer/studio-orders/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения заказов владельца.
type Service interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Order, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerID, err := strconv.ParseInt(chi.URLParam(r, "owner_id"), 10, 64)
	if err != nil {
		log.Error("failed to decode owner_id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode owner_id from url"))
		return
	}

	orders, err := h.service.ListByOwner(r.Context(), ownerID)
	if err != nil {
		log.Error("failed to list orders", sl.OwnerID(ownerID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list orders"))
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	log.Info("listed orders", sl.OwnerID(ownerID), slog.Int("count", len(orders)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"orders": orders,
	}))
}
