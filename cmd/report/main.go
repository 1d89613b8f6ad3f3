package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mindpulse/internal/analysis"
	"mindpulse/internal/config"
	"mindpulse/internal/dataset"
	"mindpulse/internal/exporter"
)

// report generates one derived table from the survey CSVs and writes it to
// disk, without starting the server.
func main() {
	report := flag.String("report", "country-index", "report to generate: groups, correlation, fields, remote-work, country-index")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	out := flag.String("out", "", "output file (defaults to <export dir>/<report>.<format>)")
	group := flag.String("group", "", "group column for the groups report")
	value := flag.String("value", "", "value column for the groups report")
	columns := flag.String("columns", "", "comma-separated columns for the correlation report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.Default()
	ctx := context.Background()

	loader := dataset.NewLoader(cfg.Data.Dir, cfg.Data.Sources, logger)
	surveys, err := loader.LoadSurveys(ctx, cfg.Data.MentalHealthFile, cfg.Data.DeveloperFile)
	if err != nil {
		slog.Error("failed to load surveys", "error", err)
		os.Exit(1)
	}

	analyzer := analysis.New(logger)
	result, err := runReport(analyzer, surveys, *report, *group, *value, *columns)
	if err != nil {
		slog.Error("failed to build report", "report", *report, "error", err)
		os.Exit(1)
	}
	if result.Source != analysis.SourceComputed {
		slog.Warn("required columns missing, report built from fallback data",
			"report", *report,
			"source", string(result.Source),
		)
	}

	path := *out
	if path == "" {
		path = cfg.ExportPath(fmt.Sprintf("%s.%s", *report, *format))
	}

	switch *format {
	case "csv":
		err = exporter.NewCSVWriter(logger).WriteFile(path, result.Table, exporter.WriteOptions{})
	case "xlsx":
		err = writeExcelFile(logger, path, *report, result.Table)
	default:
		slog.Error("unknown format", "format", *format)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("failed to write report", "path", path, "error", err)
		os.Exit(1)
	}

	slog.Info("report written",
		"report", *report,
		"path", path,
		"rows", result.Table.NumRows(),
	)
}

func runReport(a *analysis.Analyzer, surveys *dataset.Surveys, report, group, value, columns string) (analysis.TableResult, error) {
	switch report {
	case "groups":
		if group == "" || value == "" {
			return analysis.TableResult{}, fmt.Errorf("groups report requires -group and -value")
		}
		return a.CompareGroups(surveys.MentalHealth, group, value), nil
	case "correlation":
		cols := splitColumns(columns)
		if len(cols) < 2 {
			return analysis.TableResult{}, fmt.Errorf("correlation report requires at least two -columns")
		}
		return a.Correlation(surveys.MentalHealth, cols), nil
	case "fields":
		return a.FieldOutcomes(surveys.MentalHealth, surveys.Developer), nil
	case "remote-work":
		return a.RemoteWorkImpact(surveys.MentalHealth), nil
	case "country-index":
		return a.CountryIndex(surveys.MentalHealth), nil
	default:
		return analysis.TableResult{}, fmt.Errorf("unknown report %q", report)
	}
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

func writeExcelFile(logger *slog.Logger, path, report string, table *dataset.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return exporter.NewExcelWriter(logger).Write(f, report, table)
}
