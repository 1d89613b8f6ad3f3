package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// values treated as missing when parsing CSV cells
var nullTokens = map[string]struct{}{
	"":    {},
	"NA":  {},
	"N/A": {},
	"NaN": {},
}

// Loader reads survey tables from the data directory and caches fetched
// external sources on disk. Load failures are soft: the loader logs a warning
// and returns an empty table so the dashboard still renders.
type Loader struct {
	dataDir  string
	cacheDir string
	sources  map[string]string
	client   *http.Client
	logger   *slog.Logger
}

// NewLoader creates a loader rooted at dataDir. sources maps external source
// keys to fetch URLs; it may be nil.
func NewLoader(dataDir string, sources map[string]string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dataDir:  dataDir,
		cacheDir: filepath.Join(dataDir, "cache"),
		sources:  sources,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger.With(slog.String("component", "dataset.loader")),
	}
}

// Surveys holds the two input tables the analysis operations consume.
type Surveys struct {
	MentalHealth *Table
	Developer    *Table
}

// LoadSurveys reads the mental-health and developer survey CSVs concurrently.
// A missing or malformed file yields an empty table, not an error.
func (l *Loader) LoadSurveys(ctx context.Context, mentalHealthFile, developerFile string) (*Surveys, error) {
	surveys := &Surveys{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		surveys.MentalHealth = l.loadFileSoft(ctx, mentalHealthFile)
		return nil
	})
	g.Go(func() error {
		surveys.Developer = l.loadFileSoft(ctx, developerFile)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	l.logger.InfoContext(ctx, "surveys loaded",
		slog.Int("mental_health_rows", surveys.MentalHealth.NumRows()),
		slog.Int("developer_rows", surveys.Developer.NumRows()),
	)
	return surveys, nil
}

// LoadExternal returns the table for a configured external source, fetching
// and caching it on first use.
func (l *Loader) LoadExternal(ctx context.Context, key string) (*Table, error) {
	url, ok := l.sources[key]
	if !ok {
		return nil, fmt.Errorf("external source %q not configured", key)
	}

	cacheFile := filepath.Join(l.cacheDir, key+".csv")
	if _, err := os.Stat(cacheFile); err == nil {
		l.logger.DebugContext(ctx, "external source served from cache",
			slog.String("key", key),
			slog.String("file", cacheFile),
		)
		return l.loadFile(cacheFile)
	}

	body, err := l.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}

	if err := os.MkdirAll(l.cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(cacheFile, body, 0644); err != nil {
		return nil, fmt.Errorf("cache %s: %w", key, err)
	}
	return l.loadFile(cacheFile)
}

// Sources returns the keys of the configured external sources
func (l *Loader) Sources() []string {
	keys := make([]string, 0, len(l.sources))
	for k := range l.sources {
		keys = append(keys, k)
	}
	return keys
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// loadFileSoft loads a CSV relative to the data directory, returning an empty
// table on any failure.
func (l *Loader) loadFileSoft(ctx context.Context, name string) *Table {
	t, err := l.loadFile(filepath.Join(l.dataDir, name))
	if err != nil {
		l.logger.WarnContext(ctx, "failed to load survey file, using empty table",
			slog.String("file", name),
			slog.String("error", err.Error()),
		)
		return New()
	}
	return t
}

func (l *Loader) loadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses delimited data into a table. The first record is the header.
// Columns whose non-null cells all parse as floats become numeric columns;
// everything else stays string. Blank, NA, N/A and NaN cells are nulls.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cells := make([][]string, len(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		for i := range header {
			var v string
			if i < len(record) {
				v = record[i]
			}
			cells[i] = append(cells[i], v)
		}
	}

	t := New()
	for i, name := range header {
		if err := t.addColumn(inferColumn(name, cells[i])); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// inferColumn decides between a numeric and a string column for raw cells
func inferColumn(name string, raw []string) *Column {
	nums := make([]float64, len(raw))
	null := make([]bool, len(raw))
	numeric := false
	for i, v := range raw {
		if _, isNull := nullTokens[v]; isNull {
			null[i] = true
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			numeric = false
			break
		}
		nums[i] = f
		numeric = true
	}
	if numeric {
		return NewNumericColumn(name, nums, null)
	}
	strs := make([]string, len(raw))
	for i, v := range raw {
		if _, isNull := nullTokens[v]; !isNull {
			strs[i] = v
		}
	}
	col := NewStringColumn(name, strs)
	// NewStringColumn marks empty strings as null, which also covers the
	// explicit NA tokens blanked above.
	return col
}
