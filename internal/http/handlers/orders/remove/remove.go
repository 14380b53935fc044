// Package remove реализует HTTP-обработчик удаления заказа.
package remove

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
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления заказа.
type Service interface {
	Remove(ctx context.Context, id int64) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.remove"

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

	removed, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to remove order", sl.OrderID(id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove order"))
		return
	}
	if !removed {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("order not found"))
		return
	}

	log.Info("order removed", sl.OrderID(id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed": id,
	}))
}
