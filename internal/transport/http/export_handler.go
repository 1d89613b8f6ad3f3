package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mindpulse/internal/analysis"
	"mindpulse/internal/dataset"
	apierrors "mindpulse/internal/errors"
	"mindpulse/internal/exporter"
)

// ExportHandler serves downloads of derived tables under /api/export
type ExportHandler struct {
	service      AnalysisService
	csv          *exporter.CSVWriter
	excel        *exporter.ExcelWriter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates an export handler
func NewExportHandler(service AnalysisService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		csv:          exporter.NewCSVWriter(logger),
		excel:        exporter.NewExcelWriter(logger),
		logger:       logger.With(slog.String("handler", "export")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{report}", h.Export)
	return r
}

// Export handles GET /api/export/{report}?format=csv|xlsx
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	report := chi.URLParam(r, "report")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "must be csv or xlsx"))
		return
	}

	table, err := h.reportTable(r, report)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s.%s", report, format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	h.logger.InfoContext(r.Context(), "exporting report",
		slog.String("report", report),
		slog.String("format", format),
		slog.Int("rows", table.NumRows()),
	)

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = h.csv.Write(w, table)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = h.excel.Write(w, sheetName(report), table)
	}
	if err != nil {
		// Headers are already sent; all we can do is log.
		h.logger.ErrorContext(r.Context(), "export write failed",
			slog.String("report", report),
			slog.String("error", err.Error()),
		)
	}
}

// reportTable produces the derived table named by the export route
func (h *ExportHandler) reportTable(r *http.Request, report string) (*dataset.Table, error) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		return nil, err
	}

	var result analysis.TableResult
	switch report {
	case "groups":
		group := r.URL.Query().Get("group")
		value := r.URL.Query().Get("value")
		if group == "" || value == "" {
			return nil, apierrors.ErrValidation("group", "group and value columns are required")
		}
		result = h.service.CompareGroups(r.Context(), filters, group, value)
	case "correlation":
		columns := splitColumns(r.URL.Query().Get("columns"))
		if len(columns) < 2 {
			return nil, apierrors.ErrValidation("columns", "at least two comma-separated columns are required")
		}
		result = h.service.Correlation(r.Context(), filters, columns)
	case "fields":
		result = h.service.FieldOutcomes(r.Context(), filters)
	case "remote-work":
		result = h.service.RemoteWorkImpact(r.Context(), filters)
	case "country-index":
		result = h.service.CountryIndex(r.Context(), filters)
	default:
		return nil, apierrors.NotFoundError("report " + report)
	}
	return result.Table, nil
}

func splitColumns(raw string) []string {
	var out []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

var sheetNames = map[string]string{
	"groups":        "Group Comparison",
	"correlation":   "Correlation Matrix",
	"fields":        "Field Outcomes",
	"remote-work":   "Remote Work",
	"country-index": "Country Index",
}

// sheetName maps a report key to a worksheet title
func sheetName(report string) string {
	if name, ok := sheetNames[report]; ok {
		return name
	}
	return report
}
