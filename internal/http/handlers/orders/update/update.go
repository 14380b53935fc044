// Package update реализует HTTP-обработчик частичного исправления заказа:
// смена статуса, названия, даты передачи или срока хранения.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/studio-orders/internal/http/response"
	"github.com/magabrotheeeer/studio-orders/internal/lib/calendar"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
	"github.com/magabrotheeeer/studio-orders/internal/models"
)

// Request тело PATCH-запроса. Отсутствующее поле не меняется.
type Request struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,min=1"`
	DateTransfer *string `json:"date_transfer,omitempty" validate:"omitempty,datetime=02.01.2006"`
	Months       *int    `json:"months,omitempty" validate:"omitempty,gt=0"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=active picked_up cancelled"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления заказа.
type Service interface {
	Update(ctx context.Context, id int64, upd models.OrderUpdate) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.update"

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

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Info("validation failed", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		log.Error("validator failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	upd, err := req.toUpdate()
	if err != nil {
		log.Info("invalid date", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	updated, err := h.service.Update(r.Context(), id, upd)
	if errors.Is(err, models.ErrValidation) {
		log.Info("update rejected", sl.OrderID(id), sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("failed to update order", sl.OrderID(id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update order"))
		return
	}
	if !updated {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("order not found"))
		return
	}

	log.Info("order updated", sl.OrderID(id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"updated": id,
	}))
}

func (req Request) toUpdate() (models.OrderUpdate, error) {
	upd := models.OrderUpdate{
		Title:  req.Title,
		Months: req.Months,
	}
	if req.DateTransfer != nil {
		d, err := calendar.Parse(*req.DateTransfer)
		if err != nil {
			return models.OrderUpdate{}, err
		}
		upd.DateTransfer = &d
	}
	if req.Status != nil {
		s := models.Status(*req.Status)
		upd.Status = &s
	}
	return upd, nil
}
