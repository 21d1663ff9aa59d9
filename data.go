package eda

import (
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/hyp3rd/ewrap"
)

// FieldType represents the basic type of a field.
type FieldType uint

const (
	Int FieldType = iota
	Float
	String
	Time
)

var fieldTypeNames = []string{"int", "float", "string", "time"}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return "FieldType(" + strconv.Itoa(int(t)) + ")"
}

// Field is one column of a data frame.
type Field struct {
	Type FieldType

	// Data contains the values. NaN marks a missing value.
	Data []float64

	// Pool is used to turn String values into strings.
	Pool *StringPool
}

// NewField returns a field of length n where every value is missing.
func NewField(n int, t FieldType, pool *StringPool) Field {
	data := make([]float64, n)
	for i := range data {
		data[i] = math.NaN()
	}
	return Field{Type: t, Data: data, Pool: pool}
}

func (f Field) Len() int { return len(f.Data) }

// Discrete fields have a finite set of levels: Int and String fields.
func (f Field) Discrete() bool { return f.Type == Int || f.Type == String }

// Numeric fields take part in numerical statistics: Int and Float fields.
func (f Field) Numeric() bool { return f.Type == Int || f.Type == Float }

func (f Field) IsMissing(i int) bool { return math.IsNaN(f.Data[i]) }

// Missing counts the missing values in f.
func (f Field) Missing() int {
	n := 0
	for _, x := range f.Data {
		if math.IsNaN(x) {
			n++
		}
	}
	return n
}

// Values returns the non-missing values of f in row order.
func (f Field) Values() []float64 {
	vals := make([]float64, 0, len(f.Data))
	for _, x := range f.Data {
		if !math.IsNaN(x) {
			vals = append(vals, x)
		}
	}
	return vals
}

// Copy returns a deep copy of f sharing the string pool.
func (f Field) Copy() Field {
	return Field{Type: f.Type, Data: slices.Clone(f.Data), Pool: f.Pool}
}

// Const returns a field of the same type as f with n copies of x.
func (f Field) Const(x float64, n int) Field {
	c := Field{Type: f.Type, Data: make([]float64, n), Pool: f.Pool}
	for i := range c.Data {
		c.Data[i] = x
	}
	return c
}

// Levels returns the distinct non-missing values of f.
func (f Field) Levels() FloatSet {
	levels := NewFloatSet()
	for _, x := range f.Data {
		levels.Add(x)
	}
	return levels
}

// MinMax returns the minimum and maximum of the non-missing values in f
// and their indices. The indices are -1 if all values are missing.
func (f Field) MinMax() (min, max float64, mini, maxi int) {
	min, max = math.Inf(+1), math.Inf(-1)
	mini, maxi = -1, -1
	for i, x := range f.Data {
		if math.IsNaN(x) {
			continue
		}
		if x < min {
			min, mini = x, i
		}
		if x > max {
			max, maxi = x, i
		}
	}
	return min, max, mini, maxi
}

// String formats the i'th value of f. Missing values are "NaN".
func (f Field) String(i int) string {
	return f.Format(f.Data[i])
}

// Format formats x, a value stored in a field of f's type.
func (f Field) Format(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	switch f.Type {
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case String:
		if f.Pool == nil {
			return "--NA--"
		}
		return f.Pool.Get(int(x))
	case Time:
		return UnixToTime(x).Format(time.RFC3339)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Value returns the i'th value of f as a Go value: int64, float64,
// string or time.Time. Missing values are nil.
func (f Field) Value(i int) any {
	x := f.Data[i]
	if math.IsNaN(x) {
		return nil
	}
	switch f.Type {
	case Int:
		return int64(x)
	case String:
		return f.Format(x)
	case Time:
		return UnixToTime(x)
	}
	return x
}

// Encode turns a Go value into the float64 representation used by f.
// nil encodes the missing value. Strings are added to the pool of f.
func (f Field) Encode(v any) (float64, error) {
	if v == nil {
		return math.NaN(), nil
	}
	switch f.Type {
	case String:
		s, ok := v.(string)
		if !ok {
			return 0, ewrap.Wrapf(ErrUnsupportedType, "%T for string field", v)
		}
		return float64(f.Pool.Add(s)), nil
	case Time:
		t, ok := v.(time.Time)
		if !ok {
			return 0, ewrap.Wrapf(ErrUnsupportedType, "%T for time field", v)
		}
		return TimeToUnix(t), nil
	}

	x, ok := toFloat(v)
	if !ok {
		return 0, ewrap.Wrapf(ErrUnsupportedType, "%T for %s field", v, f.Type)
	}
	if f.Type == Int && !math.IsNaN(x) {
		x = math.Trunc(x)
	}
	return x, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// TimeToUnix converts t to the representation of Time fields.
// The zero time is missing.
func TimeToUnix(t time.Time) float64 {
	if t.IsZero() {
		return math.NaN()
	}
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// UnixToTime is the inverse of TimeToUnix (up to float64 precision).
func UnixToTime(x float64) time.Time {
	sec, frac := math.Modf(x)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}

// -------------------------------------------------------------------------
// Data Frame

// DataFrame is an ordered collection of named fields of equal length.
type DataFrame struct {
	Name string

	// N is the number of rows.
	N int

	// Columns maps field names to fields. Use Set and Delete to keep the
	// column order in sync.
	Columns map[string]Field

	// Pool is shared by all String fields of the frame and its copies.
	Pool *StringPool

	order []string
}

// NewDataFrame returns an empty data frame. A nil pool allocates a new one.
func NewDataFrame(name string, pool *StringPool) *DataFrame {
	if pool == nil {
		pool = NewStringPool()
	}
	return &DataFrame{
		Name:    name,
		Columns: make(map[string]Field),
		Pool:    pool,
	}
}

// Names returns the column names in column order.
func (df *DataFrame) Names() []string {
	names := make([]string, 0, len(df.Columns))
	seen := NewStringSet()
	for _, name := range df.order {
		if _, ok := df.Columns[name]; ok && !seen.Contains(name) {
			names = append(names, name)
			seen.Add(name)
		}
	}
	// Columns added directly to the map go last, sorted.
	var extra []string
	for name := range df.Columns {
		if !seen.Contains(name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}

func (df *DataFrame) Has(name string) bool {
	_, ok := df.Columns[name]
	return ok
}

// Column returns the named field.
func (df *DataFrame) Column(name string) (Field, error) {
	f, ok := df.Columns[name]
	if !ok {
		return Field{}, ewrap.Wrapf(ErrColumnNotFound, "%q in %q", name, df.Name)
	}
	return f, nil
}

// NumericColumn returns the named field which must be Int or Float.
func (df *DataFrame) NumericColumn(name string) (Field, error) {
	f, err := df.Column(name)
	if err != nil {
		return f, err
	}
	if !f.Numeric() {
		return f, ewrap.Wrapf(ErrNotNumeric, "%q has type %s", name, f.Type)
	}
	return f, nil
}

// Set stores f under name, replacing an existing field of that name.
// The first field of an empty frame determines the row count.
func (df *DataFrame) Set(name string, f Field) error {
	if len(df.Columns) == 0 {
		df.N = f.Len()
	} else if f.Len() != df.N {
		return ewrap.Wrapf(ErrLengthMismatch, "%q has %d values, frame has %d rows",
			name, f.Len(), df.N)
	}
	if f.Pool == nil {
		f.Pool = df.Pool
	}
	if _, ok := df.Columns[name]; !ok {
		df.order = append(df.order, name)
	}
	df.Columns[name] = f
	return nil
}

// Delete removes the named field. Unknown names are ignored.
func (df *DataFrame) Delete(name string) {
	delete(df.Columns, name)
	df.order = slices.DeleteFunc(df.order, func(s string) bool { return s == name })
}

// Rename renames field from to to keeping its position.
func (df *DataFrame) Rename(from, to string) error {
	f, ok := df.Columns[from]
	if !ok {
		return ewrap.Wrapf(ErrColumnNotFound, "%q in %q", from, df.Name)
	}
	if from == to {
		return nil
	}
	if df.Has(to) {
		return ewrap.Wrap(ErrDuplicateColumn, to)
	}
	names := df.Names()
	delete(df.Columns, from)
	df.Columns[to] = f
	for i, n := range names {
		if n == from {
			names[i] = to
		}
	}
	df.order = names
	return nil
}

// Copy returns a deep copy of df. The copy shares the string pool.
func (df *DataFrame) Copy() *DataFrame {
	c := NewDataFrame(df.Name, df.Pool)
	c.N = df.N
	for _, name := range df.Names() {
		c.Columns[name] = df.Columns[name].Copy()
		c.order = append(c.order, name)
	}
	return c
}

// Select returns a new frame with copies of the named fields in the
// given order.
func (df *DataFrame) Select(names ...string) (*DataFrame, error) {
	result := NewDataFrame(df.Name, df.Pool)
	result.N = df.N
	for _, name := range names {
		f, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		if result.Has(name) {
			return nil, ewrap.Wrap(ErrDuplicateColumn, name)
		}
		result.Columns[name] = f.Copy()
		result.order = append(result.order, name)
	}
	return result, nil
}

// Rows returns a new frame containing the rows idx of df in that order.
func (df *DataFrame) Rows(idx []int) *DataFrame {
	result := NewDataFrame(df.Name, df.Pool)
	result.N = len(idx)
	for _, name := range df.Names() {
		f := df.Columns[name]
		data := make([]float64, len(idx))
		for j, i := range idx {
			data[j] = f.Data[i]
		}
		result.Columns[name] = Field{Type: f.Type, Data: data, Pool: f.Pool}
		result.order = append(result.order, name)
	}
	return result
}

// FilterFunc returns a new frame with all rows i for which keep(i) holds.
func (df *DataFrame) FilterFunc(keep func(i int) bool) *DataFrame {
	idx := make([]int, 0, df.N)
	for i := 0; i < df.N; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return df.Rows(idx)
}

// Value returns the value of the named field in the given row, see
// Field.Value.
func (df *DataFrame) Value(row int, name string) (any, error) {
	f, err := df.Column(name)
	if err != nil {
		return nil, err
	}
	return f.Value(row), nil
}

// NumericNames returns the names of all Int and Float fields.
func (df *DataFrame) NumericNames() []string {
	var names []string
	for _, name := range df.Names() {
		if df.Columns[name].Numeric() {
			names = append(names, name)
		}
	}
	return names
}

// DiscreteNames returns the names of all Int and String fields.
func (df *DataFrame) DiscreteNames() []string {
	var names []string
	for _, name := range df.Names() {
		if df.Columns[name].Discrete() {
			names = append(names, name)
		}
	}
	return names
}

// Append returns a new frame with the rows of df followed by the rows of
// other. Both frames must have the same field names and types; String
// values of other are re-encoded into the pool of df.
func (df *DataFrame) Append(other *DataFrame) (*DataFrame, error) {
	names := df.Names()
	if len(other.Columns) != len(names) {
		return nil, ewrap.Wrapf(ErrLengthMismatch, "appending %d fields to %d",
			len(other.Columns), len(names))
	}

	result := NewDataFrame(df.Name, df.Pool)
	result.N = df.N + other.N
	for _, name := range names {
		f := df.Columns[name]
		o, err := other.Column(name)
		if err != nil {
			return nil, err
		}
		if o.Type != f.Type {
			return nil, ewrap.Wrapf(ErrUnsupportedType, "field %q is %s and %s", name, f.Type, o.Type)
		}
		data := make([]float64, 0, result.N)
		data = append(data, f.Data...)
		for _, x := range o.Data {
			if o.Type == String && !math.IsNaN(x) && o.Pool != df.Pool {
				x = float64(df.Pool.Add(o.Pool.Get(int(x))))
			}
			data = append(data, x)
		}
		result.Columns[name] = Field{Type: f.Type, Data: data, Pool: df.Pool}
		result.order = append(result.order, name)
	}
	return result, nil
}

// NamesOfType returns the names of all fields of type t.
func (df *DataFrame) NamesOfType(t FieldType) []string {
	var names []string
	for _, name := range df.Names() {
		if df.Columns[name].Type == t {
			names = append(names, name)
		}
	}
	return names
}

// Filter extracts all rows from df where field==value.
// The field must exist in df.
func Filter(df *DataFrame, field string, value float64) *DataFrame {
	data := mustField(df, field).Data
	return df.FilterFunc(func(i int) bool { return data[i] == value })
}

// Partition splits df into one frame per level of field.
func Partition(df *DataFrame, field string, levels []float64) []*DataFrame {
	parts := make([]*DataFrame, len(levels))
	for i, level := range levels {
		parts[i] = Filter(df, field, level)
	}
	return parts
}

// Levels returns the distinct non-missing values of field in df.
func Levels(df *DataFrame, field string) FloatSet {
	return mustField(df, field).Levels()
}

// MinMax determines minium and maximum value of field in df.
func MinMax(df *DataFrame, field string) (min, max float64, mini, maxi int) {
	return mustField(df, field).MinMax()
}

func mustField(df *DataFrame, field string) Field {
	f, ok := df.Columns[field]
	if !ok {
		panic("No such field " + field + " in " + df.Name)
	}
	return f
}
