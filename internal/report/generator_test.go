package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aerovista-us/echovalentine/internal/config"
	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGenerator(t *testing.T, format string, compress bool) (*Generator, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{OutputDir: dir, ReportFormat: format, Compress: compress}

	g, err := NewGenerator(cfg, zap.NewNop())
	require.NoError(t, err)
	g.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local) }
	return g, dir
}

func fixtureResults() *models.ScanResults {
	return &models.ScanResults{
		ScanPath: "/scan",
		Run:      &models.RunContext{RootName: "scan"},
		Records:  fixtureRecords(),
	}
}

func TestNewGenerator_UnknownFormat(t *testing.T) {
	_, err := NewGenerator(&config.Config{ReportFormat: "xml"}, zap.NewNop())
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	g, _ := newTestGenerator(t, "csv", false)
	assert.Equal(t, "scan_inventory_20240102_030405.csv", g.FileName("scan"))
	assert.Equal(t, "root_inventory_20240102_030405.csv", g.FileName(string(filepath.Separator)))
	assert.Equal(t, "root_inventory_20240102_030405.csv", g.FileName(""))

	g.config.Compress = true
	assert.Equal(t, "scan_inventory_20240102_030405.csv.gz", g.FileName("scan"))
}

func TestGenerate_CSV(t *testing.T) {
	g, dir := newTestGenerator(t, "csv", false)

	path, err := g.Generate(fixtureResults())
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join(dir, "scan_inventory_20240102_030405.csv"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("testdata", "inventory_csv.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestGenerate_Gzip(t *testing.T) {
	g, _ := newTestGenerator(t, "csv", true)

	path, err := g.Generate(fixtureResults())
	require.NoError(t, err)
	assert.Equal(t, ".gz", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	got, err := io.ReadAll(zr)
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, WriteCSV(&want, BuildTable(fixtureRecords())))
	assert.Equal(t, want.String(), string(got))
}

func TestGenerate_JSON(t *testing.T) {
	g, _ := newTestGenerator(t, "json", false)

	path, err := g.Generate(fixtureResults())
	require.NoError(t, err)
	assert.Equal(t, ".json", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Demo app, v1", rows[0][ColDescription])
	assert.Equal(t, "true", rows[1][ColIsDuplicate])
	assert.Equal(t, "stat /scan/gone.txt: no such file or directory", rows[2][ColError])
	assert.Len(t, rows[0], len(BuildTable(fixtureRecords()).Header))

	// Keys follow header order
	dec := json.NewDecoder(bytes.NewReader(data))
	_, err = dec.Token() // [
	require.NoError(t, err)
	_, err = dec.Token() // {
	require.NoError(t, err)
	var keys []string
	for i := 0; i < len(PriorityColumns); i++ {
		k, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, k.(string))
		_, err = dec.Token()
		require.NoError(t, err)
	}
	assert.Equal(t, PriorityColumns, keys)
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &Table{Header: PriorityColumns}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestGenerate_NoData(t *testing.T) {
	g, dir := newTestGenerator(t, "csv", false)

	path, err := g.Generate(&models.ScanResults{ScanPath: "/scan"})
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_RootNameFallback(t *testing.T) {
	g, dir := newTestGenerator(t, "csv", false)

	results := fixtureResults()
	results.Run = nil
	results.ScanPath = filepath.Join(dir, "projects")

	path, err := g.Generate(results)
	require.NoError(t, err)
	assert.Equal(t, "projects_inventory_20240102_030405.csv", filepath.Base(path))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500.00ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m30.00s"},
		{time.Hour + time.Minute + time.Second, "1h1m1.00s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}
