package stat

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdobler/eda"
)

func shopFrame(t *testing.T) *eda.DataFrame {
	t.Helper()
	df, err := eda.FromColumns("shop",
		eda.StringColumn("product", "tea", "coffee", "tea", "", "cake", "tea", "coffee", "cake"),
		eda.FloatColumn("price", 2.5, 3.0, 2.5, nan, 4.0, 2.5, 3.0, 40),
		eda.IntColumn("qty", 1, 2, 1, 3, 1, 2, 1, 1),
		eda.StringColumn("store", "north", "north", "north", "north", "north", "north", "north", "north"))
	require.NoError(t, err)
	return df
}

// row returns the summary row of column name.
func row(t *testing.T, sum *eda.DataFrame, name string) int {
	t.Helper()
	for i := 0; i < sum.N; i++ {
		if sum.Columns["column"].String(i) == name {
			return i
		}
	}
	t.Fatalf("no row for %q in %s", name, sum.Name)
	return -1
}

func TestCountNulls(t *testing.T) {
	df := shopFrame(t)
	got := CountNulls(df)

	assert.Equal(t, []string{"column", "total", "percent"}, got.Names())
	assert.Equal(t, 4, got.N)
	i := row(t, got, "price")
	assert.Equal(t, 1.0, got.Columns["total"].Data[i])
	assert.Equal(t, 12.5, got.Columns["percent"].Data[i])
	assert.Equal(t, 0.0, got.Columns["total"].Data[row(t, got, "qty")])

	empty, err := eda.FromColumns("empty", eda.FloatColumn("x"))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(CountNulls(empty).Columns["percent"].Data[0]))
}

func TestDescribe(t *testing.T) {
	df := shopFrame(t)
	got := Describe(df)

	assert.Equal(t, []string{"column", "count", "mean", "median", "std", "min", "max"}, got.Names())
	require.Equal(t, 2, got.N)
	i := row(t, got, "price")
	assert.Equal(t, 7.0, got.Columns["count"].Data[i])
	assert.InDelta(t, 57.5/7, got.Columns["mean"].Data[i], 1e-12)
	assert.Equal(t, 3.0, got.Columns["median"].Data[i])
	assert.Equal(t, 2.5, got.Columns["min"].Data[i])
	assert.Equal(t, 40.0, got.Columns["max"].Data[i])
}

func TestTypesAndUnique(t *testing.T) {
	df := shopFrame(t)

	types := Types(df)
	want := map[string]string{"product": "string", "price": "float", "qty": "int", "store": "string"}
	for name, typ := range want {
		assert.Equal(t, typ, types.Columns["type"].String(row(t, types, name)), name)
	}

	unique := CountUnique(df)
	assert.Equal(t, 3.0, unique.Columns["unique"].Data[row(t, unique, "product")])
	assert.Equal(t, 4.0, unique.Columns["unique"].Data[row(t, unique, "price")])
	assert.Equal(t, 1.0, unique.Columns["unique"].Data[row(t, unique, "store")])

	assert.Equal(t, []string{"store"}, ConstantColumns(df))
}

func TestSkewnessByColumn(t *testing.T) {
	df, err := eda.FromColumns("skew",
		eda.FloatColumn("left", 1, 9, 10, 10, 10),
		eda.FloatColumn("right", 1, 2, 3, 4, 10),
		eda.FloatColumn("short", 1, 2),
		eda.FloatColumn("flat", 3, 3, 3, 3, 3))
	require.NoError(t, err)

	got := SkewnessByColumn(df)
	var order []string
	for i := 0; i < got.N; i++ {
		order = append(order, got.Columns["column"].String(i))
	}
	assert.Equal(t, []string{"right", "flat", "left", "short"}, order)
	assert.InDelta(t, 1.697056274847714, got.Columns["skewness"].Data[0], 1e-9)
	assert.True(t, math.IsNaN(got.Columns["skewness"].Data[3]))
}

func TestCountCategories(t *testing.T) {
	df := shopFrame(t)

	got, err := CountCategories(df, "product", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"value", "count"}, got.Names())
	require.Equal(t, 2, got.N)
	assert.Equal(t, "tea", got.Columns["value"].String(0))
	assert.Equal(t, 3.0, got.Columns["count"].Data[0])
	// coffee and cake both appear twice; coffee comes first.
	assert.Equal(t, "coffee", got.Columns["value"].String(1))

	all, err := CountCategories(df, "qty", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, all.N)
	assert.Equal(t, eda.Int, all.Columns["value"].Type)

	_, err = CountCategories(df, "color", 10)
	assert.True(t, errors.Is(err, eda.ErrColumnNotFound))
}

func TestAnalyzeCategories(t *testing.T) {
	got := AnalyzeCategories(shopFrame(t))
	require.Equal(t, 2, got.N)
	assert.Equal(t, "product", got.Columns["column"].String(0))
	assert.Equal(t, 3.0, got.Columns["categories"].Data[0])
	assert.Equal(t, 1.0, got.Columns["categories"].Data[1])
}

func TestLookup(t *testing.T) {
	df := shopFrame(t)
	for _, name := range SummaryNames() {
		s, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
		sum, err := s.Apply(df)
		require.NoError(t, err, name)
		assert.Equal(t, "column", sum.Names()[0], name)
	}

	_, err := Lookup("median")
	assert.True(t, errors.Is(err, eda.ErrInvalidOption))
}
