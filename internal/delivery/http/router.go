package http //nolint:revive // directory-based package name, imported with alias

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Post("/api/charge", h.HandleCharge)
	r.Post("/api/transfer", h.HandleTransfer)
	r.Post("/api/void", h.HandleVoid)
	r.Post("/api/capture", h.HandleCapture)
	r.Post("/api/refund", h.HandleRefund)
	r.Get("/api/stats", h.HandleStats)

	return r
}
