package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "mindpulse/internal/errors"
)

// DataHandler serves the dataset endpoints under /api/data
type DataHandler struct {
	service      AnalysisService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a data handler
func NewDataHandler(service AnalysisService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "data")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/filters", h.FilterOptions)
	r.Post("/reload", h.Reload)

	return r
}

// FilterOptions handles GET /api/data/filters
func (h *DataHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options := h.service.FilterOptions(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"filters": options,
		"count":   len(options),
	})
}

// Reload handles POST /api/data/reload
func (h *DataHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "dataset reload requested")

	if err := h.service.Reload(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "dataset reload failed",
			slog.String("error", err.Error()),
		)
		h.errorHandler.HandleError(w, r, apierrors.DatasetError("reload", err))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "reloaded",
	})
}
