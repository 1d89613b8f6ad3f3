package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"mindpulse/internal/dataset"
	apierrors "mindpulse/internal/errors"
)

// AnalysisHandler serves the analysis endpoints under /api/analysis and
// /api/insights.
type AnalysisHandler struct {
	service      AnalysisService
	validate     *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalysisHandler creates an analysis handler
func NewAnalysisHandler(service AnalysisService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		validate:     validator.New(),
		logger:       logger.With(slog.String("handler", "analysis")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/score", h.Score)
	r.Get("/groups", h.CompareGroups)
	r.Post("/correlation", h.Correlation)
	r.Get("/fields", h.FieldOutcomes)
	r.Get("/remote-work", h.RemoteWorkImpact)
	r.Get("/country-index", h.CountryIndex)

	return r
}

// ScoreRequest is the body of POST /api/analysis/score
type ScoreRequest struct {
	Columns  []string            `json:"columns" validate:"required,min=1,dive,required"`
	Positive map[string][]string `json:"positive"`
	Negative map[string][]string `json:"negative"`
	Filters  dataset.Filters     `json:"filters"`
}

// CorrelationRequest is the body of POST /api/analysis/correlation
type CorrelationRequest struct {
	Columns []string        `json:"columns" validate:"required,min=2,dive,required"`
	Filters dataset.Filters `json:"filters"`
}

// Score handles POST /api/analysis/score
func (h *AnalysisHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	scores := h.service.Score(r.Context(), req.Filters, req.Columns, req.Positive, req.Negative)
	render.JSON(w, r, map[string]interface{}{
		"scores": scores,
		"count":  len(scores),
	})
}

// CompareGroups handles GET /api/analysis/groups
func (h *AnalysisHandler) CompareGroups(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	value := r.URL.Query().Get("value")
	if group == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("group", "group column is required"))
		return
	}
	if value == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("value", "value column is required"))
		return
	}

	filters, err := filtersFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.CompareGroups(r.Context(), filters, group, value))
}

// Correlation handles POST /api/analysis/correlation
func (h *AnalysisHandler) Correlation(w http.ResponseWriter, r *http.Request) {
	var req CorrelationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	render.JSON(w, r, h.service.Correlation(r.Context(), req.Filters, req.Columns))
}

// FieldOutcomes handles GET /api/analysis/fields
func (h *AnalysisHandler) FieldOutcomes(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.FieldOutcomes(r.Context(), filters))
}

// RemoteWorkImpact handles GET /api/analysis/remote-work
func (h *AnalysisHandler) RemoteWorkImpact(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.RemoteWorkImpact(r.Context(), filters))
}

// CountryIndex handles GET /api/analysis/country-index
func (h *AnalysisHandler) CountryIndex(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.CountryIndex(r.Context(), filters))
}

// Insights handles GET /api/insights
func (h *AnalysisHandler) Insights(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	insights := h.service.Insights(r.Context(), filters)
	render.JSON(w, r, map[string]interface{}{
		"insights": insights,
		"count":    len(insights),
	})
}

// decodeAndValidate decodes the JSON body into req and runs struct
// validation, rendering a problem response on failure.
func (h *AnalysisHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, validationProblem(err))
		return false
	}
	return true
}

// validationProblem converts validator field errors into the API's
// validation error shape.
func validationProblem(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}
	details := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: "failed validation rule: " + fe.Tag(),
		})
	}
	return apierrors.NewValidationErrors(details)
}

// filtersFromQuery parses the sidebar filter query parameters shared by the
// analysis GET endpoints.
func filtersFromQuery(r *http.Request) (dataset.Filters, error) {
	q := r.URL.Query()
	f := dataset.Filters{
		Country:     q.Get("country"),
		Gender:      q.Get("gender"),
		OrgSize:     q.Get("org_size"),
		RemoteWork:  q.Get("remote_work"),
		TechCompany: q.Get("tech_company"),
		Employment:  q.Get("employment"),
		DevType:     q.Get("dev_type"),
	}
	parseAge := func(key string) (int, error) {
		raw := q.Get(key)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, apierrors.ErrValidation(key, "must be a non-negative integer")
		}
		return n, nil
	}
	var err error
	if f.AgeMin, err = parseAge("age_min"); err != nil {
		return dataset.Filters{}, err
	}
	if f.AgeMax, err = parseAge("age_max"); err != nil {
		return dataset.Filters{}, err
	}
	return f, nil
}
