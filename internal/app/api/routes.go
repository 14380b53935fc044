package api

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/studio-orders/internal/http/handlers/health"
	"github.com/magabrotheeeer/studio-orders/internal/http/handlers/orders/list"
	"github.com/magabrotheeeer/studio-orders/internal/http/handlers/orders/read"
	"github.com/magabrotheeeer/studio-orders/internal/http/handlers/orders/remove"
	"github.com/magabrotheeeer/studio-orders/internal/http/handlers/orders/update"
	"github.com/magabrotheeeer/studio-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/studio-orders/internal/services/order"
)

// RegisterRoutes регистрирует все маршруты административного API.
func RegisterRoutes(r chi.Router, logger *slog.Logger, orderService *order.Service, parser middlewarectx.TokenParser, limiter *rate.Limiter) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Get("/health", health.New().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(parser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Get("/owners/{owner_id}/orders", list.New(logger, orderService).ServeHTTP)
			r.Get("/orders/{id}", read.New(logger, orderService).ServeHTTP)
			r.Patch("/orders/{id}", update.New(logger, orderService).ServeHTTP)
			r.Delete("/orders/{id}", remove.New(logger, orderService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
}
