package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Run("infers column types", func(t *testing.T) {
		input := "Country,Age,treatment\nUSA,30,Yes\nUK,41,No\n"
		table, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, 2, table.NumRows())

		age, ok := table.Column("Age")
		require.True(t, ok)
		assert.Equal(t, KindNumeric, age.Kind())

		treatment, ok := table.Column("treatment")
		require.True(t, ok)
		assert.Equal(t, KindString, treatment.Kind())
	})

	t.Run("NA tokens become nulls", func(t *testing.T) {
		input := "Age,note\n30,ok\nNA,\n,NaN\n"
		table, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)

		age, _ := table.Column("Age")
		assert.Equal(t, KindNumeric, age.Kind())
		assert.True(t, age.IsNull(1))
		assert.True(t, age.IsNull(2))

		note, _ := table.Column("note")
		assert.True(t, note.IsNull(1))
		assert.True(t, note.IsNull(2))
	})

	t.Run("mixed column stays string", func(t *testing.T) {
		input := "v\n1\nx\n"
		table, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		v, _ := table.Column("v")
		assert.Equal(t, KindString, v.Kind())
	})

	t.Run("short records pad with nulls", func(t *testing.T) {
		input := "a,b\nx\n"
		table, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		b, _ := table.Column("b")
		assert.True(t, b.IsNull(0))
	})

	t.Run("empty input", func(t *testing.T) {
		table, err := ReadCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, 0, table.NumRows())
	})
}

func TestLoaderLoadSurveys(t *testing.T) {
	dir := t.TempDir()
	mh := "Country,treatment\nUSA,Yes\nUK,No\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mental_health.csv"), []byte(mh), 0644))

	loader := NewLoader(dir, nil, nil)
	surveys, err := loader.LoadSurveys(context.Background(), "mental_health.csv", "developer.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, surveys.MentalHealth.NumRows())
	// missing developer file fails soft
	assert.Equal(t, 0, surveys.Developer.NumRows())
}

func TestLoaderLoadExternal(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("k,v\na,1\n"))
	}))
	defer server.Close()

	dir := t.TempDir()
	loader := NewLoader(dir, map[string]string{"who": server.URL}, nil)

	table, err := loader.LoadExternal(context.Background(), "who")
	require.NoError(t, err)
	assert.Equal(t, 1, table.NumRows())
	assert.Equal(t, 1, hits)

	// second load is served from the on-disk cache
	table, err = loader.LoadExternal(context.Background(), "who")
	require.NoError(t, err)
	assert.Equal(t, 1, table.NumRows())
	assert.Equal(t, 1, hits)

	_, err = loader.LoadExternal(context.Background(), "unknown")
	assert.Error(t, err)
}
