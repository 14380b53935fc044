// Package read реализует HTTP-обработчик получения заказа по ID.
package read

import (
	"context"
	"errors"
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

// Service описывает интерфейс бизнес-логики чтения заказа.
type Service interface {
	Read(ctx context.Context, id int64) (*models.Order, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	order, err := h.service.Read(r.Context(), id)
	if errors.Is(err, models.ErrOrderNotFound) {
		log.Info("order not found", sl.OrderID(id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("order not found"))
		return
	}
	if err != nil {
		log.Error("failed to read order", sl.OrderID(id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read order"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"order": order,
	}))
}
