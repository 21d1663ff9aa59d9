package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdobler/eda"
)

const salesCSV = `id,city,amount,day
1,Rio,10,2024-01-01
1,Rio,10,2024-01-01
2,,NA,2024-01-02
3,Lima,40,2024-01-03
4,Lima,25,2024-01-04
5,Quito,12,2024-01-05
6,Rio,11,2024-01-06
7,Lima,500,2024-01-07
`

// writeCSV stores content in a temporary file and returns its path.
func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes eda with args and returns standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { eda.SetLogger(nil) })
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSummaryCommands(t *testing.T) {
	path := writeCSV(t, "sales.csv", salesCSV)

	out, err := run(t, "nulls", path, "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "column,total,percent")
	assert.Contains(t, out, "city,1,12.5")

	out, err = run(t, "types", path, "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| day | time |")

	out, err = run(t, "describe", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 rows)")

	out, err = run(t, "categories", path, "city", "--top", "1", "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Rio,3")
	assert.NotContains(t, out, "Lima")
}

func TestJSONOutput(t *testing.T) {
	path := writeCSV(t, "sales.csv", salesCSV)

	out, err := run(t, "unique", path, "-o", "json")
	require.NoError(t, err)
	var got struct {
		Columns []string
		Rows    [][]any
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"column", "unique"}, got.Columns)
	assert.Equal(t, []any{"id", 7.0}, got.Rows[0])
}

func TestOutlierCommands(t *testing.T) {
	path := writeCSV(t, "sales.csv", salesCSV)

	out, err := run(t, "outliers", "list", path, "amount", "--method", "iqr", "-o", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "500")

	out, err = run(t, "outliers", "count", path, "--method", "iqr", "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "amount,1,")

	cleaned := filepath.Join(t.TempDir(), "clean.csv")
	_, err = run(t, "outliers", "exclude", path, "amount", "--method", "iqr", "--out", cleaned)
	require.NoError(t, err)
	data, err := os.ReadFile(cleaned)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "500")

	_, err = run(t, "outliers", "count", path, "--method", "mad")
	assert.True(t, errors.Is(err, eda.ErrInvalidOption))
}

func TestTransformCommands(t *testing.T) {
	path := writeCSV(t, "sales.csv", salesCSV)

	out, err := run(t, "dedupe", path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 8)

	out, err = run(t, "dropna", path, "--cols", "city")
	require.NoError(t, err)
	assert.NotContains(t, out, "2024-01-02")

	out, err = run(t, "fill", path, "--method", "value", "--value", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "2,,-1,")

	out, err = run(t, "replace", path, "city", "--old", "Rio,Quito", "--new", "Coast")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "Coast"))

	out, err = run(t, "normalize", path, "id", "--method", "min_max")
	require.NoError(t, err)
	assert.Contains(t, out, "\n0,Rio")
	assert.Contains(t, out, "\n1,Lima")

	out, err = run(t, "convert", path, "id", "string")
	require.NoError(t, err)
	assert.Contains(t, out, "1,Rio,10")

	_, err = run(t, "dedupe", path, "--keep", "middle")
	assert.True(t, errors.Is(err, eda.ErrInvalidOption))
}

func TestAppendFiles(t *testing.T) {
	first := writeCSV(t, "a.csv", "x,y\n1,a\n2,b\n")
	second := writeCSV(t, "b.csv", "x,y\n3,c\n")

	out, err := run(t, "unique", first, "--append", second, "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "x,3")

	other := writeCSV(t, "c.csv", "x,z\n3,c\n")
	_, err = run(t, "unique", first, "--append", other)
	assert.Error(t, err)
}

func TestPlotCommand(t *testing.T) {
	path := writeCSV(t, "sales.csv", salesCSV)
	dir := t.TempDir()

	for _, args := range [][]string{
		{"histogram", path, "amount", "--bins", "5"},
		{"boxplot", path, "amount", "--by", "city"},
		{"bar", path, "city"},
		{"pie", path, "city", "--top", "2"},
		{"heatmap", path, "--method", "kendall"},
		{"scatter", path, "id", "amount", "--hue", "city"},
		{"line", path, "day", "amount"},
		{"pairplot", path, "--cols", "id,amount", "--width", "6", "--height", "6"},
	} {
		file := filepath.Join(dir, args[0]+".svg")
		out, err := run(t, append([]string{"plot"}, append(args, "--out", file)...)...)
		require.NoError(t, err, args[0])
		assert.Contains(t, out, "wrote "+file)
		info, err := os.Stat(file)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	_, err := run(t, "plot", "histogram", path, "city", "--out", filepath.Join(dir, "x.png"))
	assert.True(t, errors.Is(err, eda.ErrNotNumeric))
}

func TestConfigFile(t *testing.T) {
	path := writeCSV(t, "sales.csv", salesCSV)
	cfg := writeCSV(t, "eda.yaml", "output: csv\noutlier:\n  method: iqr\n")

	out, err := run(t, "outliers", "count", path, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "amount,1,")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "eda v"+Version+"\n", out)
}
