package eda

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Ops struct {
	Age     int
	Origin  string
	Weight  float64
	Height  float64
	Special []byte
}

func (o Ops) BMI() float64 {
	return o.Weight / (o.Height * o.Height)
}

func (o Ops) Group() int {
	return 10*(o.Age/10) + 5
}

func (o Ops) Country() string {
	o2c := map[string]string{
		"ch": "Schweiz",
		"de": "Deutschland",
		"uk": "England",
	}
	return o2c[o.Origin]
}

func (o Ops) Other() bool {
	return true
}

func (o Ops) Other2(a int) int {
	return 0
}

var measurement = []Ops{
	{Age: 20, Origin: "de", Weight: 80, Height: 1.88},
	{Age: 22, Origin: "de", Weight: 85, Height: 1.85},
	{Age: 20, Origin: "de", Weight: 90, Height: 1.95},
	{Age: 25, Origin: "de", Weight: 90, Height: 1.72},

	{Age: 20, Origin: "ch", Weight: 77, Height: 1.78},
	{Age: 20, Origin: "ch", Weight: 82, Height: 1.75},
	{Age: 28, Origin: "ch", Weight: 85, Height: 1.80},
	{Age: 20, Origin: "ch", Weight: 84, Height: 1.62},

	{Age: 31, Origin: "de", Weight: 85, Height: 1.88},
	{Age: 30, Origin: "de", Weight: 90, Height: 1.85},
	{Age: 30, Origin: "de", Weight: 99, Height: 1.95},
	{Age: 42, Origin: "de", Weight: 95, Height: 1.72},

	{Age: 30, Origin: "ch", Weight: 80, Height: 1.78},
	{Age: 30, Origin: "ch", Weight: 85, Height: 1.75},
	{Age: 37, Origin: "ch", Weight: 87, Height: 1.80},
	{Age: 47, Origin: "ch", Weight: 90, Height: 1.62},

	{Age: 42, Origin: "uk", Weight: 60, Height: 1.68},
	{Age: 42, Origin: "uk", Weight: 65, Height: 1.65},
	{Age: 44, Origin: "uk", Weight: 55, Height: 1.52},
	{Age: 44, Origin: "uk", Weight: 70, Height: 1.72},
}

func TestNewDataFrameFrom(t *testing.T) {
	df, err := NewDataFrameFrom(measurement)
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}

	if df.N != 20 {
		t.Errorf("Got %d elements, want 20", df.N)
	}

	want := []string{"Age", "Origin", "Weight", "Height", "BMI", "Country", "Group"}
	assert.Equal(t, want, df.Names())
	assert.Equal(t, Int, df.Columns["Age"].Type)
	assert.Equal(t, String, df.Columns["Country"].Type)
	assert.InDelta(t, 80/(1.88*1.88), df.Columns["BMI"].Data[0], 1e-12)
	assert.Equal(t, "England", df.Columns["Country"].String(16))
}

func TestNewDataFrameFromPointers(t *testing.T) {
	type reading struct {
		Sensor string
		Value  *float64
		At     time.Time
	}
	v := 3.5
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	df, err := NewDataFrameFrom([]reading{
		{Sensor: "a", Value: &v, At: at},
		{Sensor: "b"},
	})
	require.NoError(t, err)

	value := df.Columns["Value"]
	assert.Equal(t, 3.5, value.Data[0])
	assert.True(t, value.IsMissing(1))
	assert.Equal(t, 1, value.Missing())

	when := df.Columns["At"]
	assert.Equal(t, Time, when.Type)
	assert.True(t, at.Equal(when.Value(0).(time.Time)))
	assert.Nil(t, when.Value(1))

	_, err = NewDataFrameFrom(42)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestFilter(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)

	exactly20 := Filter(df, "Age", 20)
	if exactly20.N != 5 {
		t.Errorf("Got %d, want 5", exactly20.N)
	}
	for i, a := range exactly20.Columns["Age"].Data {
		if a != 20 {
			t.Errorf("Element %d has age %v (want 20)", i, a)
		}
	}

	age30to39 := Filter(df, "Group", 35)
	if age30to39.N != 6 {
		t.Errorf("Got %d, want 6", age30to39.N)
	}
	for i, a := range age30to39.Columns["Age"].Data {
		if a < 30 || a > 39 {
			t.Errorf("Element %d has age %v (want 30 to 39)", i, a)
		}
	}

	ukIdx := float64(df.Pool.Find("uk"))
	ukOnly := Filter(df, "Origin", ukIdx)
	if ukOnly.N != 4 {
		t.Errorf("Got %d, want 4", ukOnly.N)
	}
	for i := 0; i < ukOnly.N; i++ {
		if o := ukOnly.Columns["Origin"].String(i); o != "uk" {
			t.Errorf("Element %d has origin %v (want uk)", i, o)
		}
	}

	parts := Partition(df, "Origin", Levels(df, "Origin").Elements())
	total := 0
	for _, p := range parts {
		total += p.N
	}
	assert.Len(t, parts, 3)
	assert.Equal(t, 20, total)
}

func TestLevels(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)
	ageLevels := Levels(df, "Age").Elements()
	if len(ageLevels) != 10 || ageLevels[0] != 20 || ageLevels[9] != 47 {
		t.Errorf("Got %v", ageLevels)
	}

	origLevels := Levels(df, "Origin")
	if len(origLevels) != 3 {
		t.Errorf("Got %v", origLevels)
	}
}

func TestMinMax(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)

	min, max, a, b := MinMax(df, "Weight")
	if min != 55 || a != 18 {
		t.Errorf("Min: Got %f/%d, want 55.00/18", min, a)
	}
	if max != 99.0 || b != 10 {
		t.Errorf("Max: Got %f/%d, want 99.00/10", max, b)
	}

	empty := NewField(3, Float, nil)
	_, _, a, b = empty.MinMax()
	assert.Equal(t, -1, a)
	assert.Equal(t, -1, b)
}

func TestCopyIsIndependent(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)
	c := df.Copy()
	c.Columns["Weight"].Data[0] = math.NaN()
	require.NoError(t, c.Rename("Weight", "Mass"))

	assert.Equal(t, 80.0, df.Columns["Weight"].Data[0])
	assert.True(t, df.Has("Weight"))
	assert.Equal(t, []string{"Age", "Origin", "Mass", "Height", "BMI", "Country", "Group"}, c.Names())
}

func TestColumnErrors(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)

	_, err := df.Column("Shoe")
	assert.True(t, errors.Is(err, ErrColumnNotFound))

	_, err = df.NumericColumn("Origin")
	assert.True(t, errors.Is(err, ErrNotNumeric))

	_, err = df.Select("Age", "Shoe")
	assert.True(t, errors.Is(err, ErrColumnNotFound))

	err = df.Set("Short", NewField(3, Float, nil))
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	err = df.Rename("Age", "Weight")
	assert.True(t, errors.Is(err, ErrDuplicateColumn))
}

func TestSelectAndRows(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)
	sel, err := df.Select("Weight", "Age")
	require.NoError(t, err)
	assert.Equal(t, []string{"Weight", "Age"}, sel.Names())

	rows := sel.Rows([]int{19, 0})
	assert.Equal(t, 2, rows.N)
	assert.Equal(t, []float64{70, 80}, rows.Columns["Weight"].Data)

	df.Delete("Group")
	assert.False(t, df.Has("Group"))
	assert.NotContains(t, df.Names(), "Group")
}

func TestFromColumns(t *testing.T) {
	df, err := FromColumns("t",
		FloatColumn("x", 1, math.NaN(), 3),
		IntColumn("n", 1, 2, 3),
		StringColumn("s", "a", "b", "a"))
	require.NoError(t, err)
	assert.Equal(t, 3, df.N)
	assert.Equal(t, df.Columns["s"].Data[0], df.Columns["s"].Data[2])

	v, err := df.Value(1, "x")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = FromColumns("t", FloatColumn("x", 1, 2), FloatColumn("y", 1))
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	_, err = FromColumns("t", FloatColumn("x", 1), FloatColumn("x", 1))
	assert.True(t, errors.Is(err, ErrDuplicateColumn))
}

func TestAppend(t *testing.T) {
	a, _ := FromColumns("a", StringColumn("s", "x", "y"), IntColumn("n", 1, 2))
	b, _ := FromColumns("b", IntColumn("n", 3), StringColumn("s", "z"))

	c, err := a.Append(b)
	require.NoError(t, err)
	assert.Equal(t, 3, c.N)
	assert.Equal(t, []string{"s", "n"}, c.Names())
	assert.Equal(t, "z", c.Columns["s"].String(2))
	assert.Equal(t, []float64{1, 2, 3}, c.Columns["n"].Data)
	assert.Equal(t, []string{"s", "n"}, c.DiscreteNames())
	assert.Equal(t, 2, a.N)

	d, _ := FromColumns("d", FloatColumn("n", 1), StringColumn("s", "z"))
	_, err = a.Append(d)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
	_, err = a.Append(b.Rows(nil))
	assert.NoError(t, err)
}

func TestEncode(t *testing.T) {
	df, _ := FromColumns("t", IntColumn("n", 1), StringColumn("s", "a"))

	x, err := df.Columns["n"].Encode(2.7)
	require.NoError(t, err)
	assert.Equal(t, 2.0, x)

	x, err = df.Columns["s"].Encode("a")
	require.NoError(t, err)
	assert.Equal(t, df.Columns["s"].Data[0], x)

	_, err = df.Columns["s"].Encode(1)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	x, err = df.Columns["n"].Encode(nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(x))
}

func TestPrint(t *testing.T) {
	df, _ := NewDataFrameFrom(measurement)
	var buf bytes.Buffer
	df.Print(&buf)
	assert.Contains(t, buf.String(), "Origin")
	assert.Contains(t, buf.String(), "Deutschland")
}
