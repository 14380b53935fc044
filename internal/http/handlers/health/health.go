package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/studio-orders/internal/http/response"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
