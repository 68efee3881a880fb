package reports

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-oms/meridian/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Get("/aging", h.Aging)
		r.Get("/overview", h.Overview)
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("dashboard report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) Aging(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Aging(r.Context())
	if err != nil {
		h.logger.Error("aging report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// Overview loads both report blocks concurrently for the landing page.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	var overview Overview
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		summary, err := h.service.Dashboard(ctx)
		overview.Summary = summary
		return err
	})
	g.Go(func() error {
		aging, err := h.service.Aging(ctx)
		overview.Aging = aging
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("overview report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, overview)
}
