package eda

import (
	"math"
	"reflect"
	"time"

	"github.com/hyp3rd/ewrap"
)

var timeType = reflect.TypeOf(time.Time{})

// NewDataFrameFrom constructs a data frame from a slice of structs
// ("slice of measurements"). All exported fields and all methods without
// arguments of a supported type become fields of the frame, fields first.
// Supported are the integer, float, string and time.Time types as well
// as pointers to them; nil pointers are missing values.
func NewDataFrameFrom(data any) (*DataFrame, error) {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return nil, ewrap.Wrapf(ErrUnsupportedType, "cannot convert %T to data frame", data)
	}
	t := v.Type().Elem()
	if t.Kind() != reflect.Struct {
		return nil, ewrap.Wrapf(ErrUnsupportedType, "cannot convert %T to data frame", data)
	}

	n := v.Len()
	df := NewDataFrame(t.Name(), nil)
	df.N = n

	// Fields first.
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		ft, ok := somFieldType(sf.Type)
		if !ok {
			continue
		}
		idx := i
		field := Field{Type: ft, Data: make([]float64, n), Pool: df.Pool}
		for j := 0; j < n; j++ {
			field.Data[j] = somValue(v.Index(j).Field(idx), ft, df.Pool)
		}
		df.Columns[sf.Name] = field
		df.order = append(df.order, sf.Name)
	}

	// The same for methods like "func(elemtype) [int,string,float,time]".
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		mt := m.Type
		if mt.NumIn() != 1 || mt.NumOut() != 1 || df.Has(m.Name) {
			continue
		}
		ft, ok := somFieldType(mt.Out(0))
		if !ok {
			continue
		}
		field := Field{Type: ft, Data: make([]float64, n), Pool: df.Pool}
		for j := 0; j < n; j++ {
			out := m.Func.Call([]reflect.Value{v.Index(j)})[0]
			field.Data[j] = somValue(out, ft, df.Pool)
		}
		df.Columns[m.Name] = field
		df.order = append(df.order, m.Name)
	}

	return df, nil
}

func somFieldType(t reflect.Type) (FieldType, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int, true
	case reflect.Float32, reflect.Float64:
		return Float, true
	case reflect.String:
		return String, true
	case reflect.Struct:
		if t == timeType {
			return Time, true
		}
	}
	return 0, false
}

func somValue(v reflect.Value, ft FieldType, pool *StringPool) float64 {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return math.NaN()
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return float64(pool.Add(v.String()))
	}
	if ft == Time {
		return TimeToUnix(v.Interface().(time.Time))
	}
	return math.NaN()
}

// -------------------------------------------------------------------------
// Collection of slices

// Column is a named slice of values used to build a frame with
// FromColumns.
type Column struct {
	Name string
	Type FieldType

	floats  []float64
	strings []string
	times   []time.Time
}

// FloatColumn makes a Float column. NaN values are missing.
func FloatColumn(name string, values ...float64) Column {
	return Column{Name: name, Type: Float, floats: values}
}

// IntColumn makes an Int column.
func IntColumn(name string, values ...int64) Column {
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}
	return Column{Name: name, Type: Int, floats: floats}
}

// StringColumn makes a String column. Empty strings are missing.
func StringColumn(name string, values ...string) Column {
	return Column{Name: name, Type: String, strings: values}
}

// TimeColumn makes a Time column. Zero times are missing.
func TimeColumn(name string, values ...time.Time) Column {
	return Column{Name: name, Type: Time, times: values}
}

// FromColumns constructs a data frame from a collection of columns.
func FromColumns(name string, cols ...Column) (*DataFrame, error) {
	df := NewDataFrame(name, nil)
	for _, col := range cols {
		if df.Has(col.Name) {
			return nil, ewrap.Wrap(ErrDuplicateColumn, col.Name)
		}
		var field Field
		switch col.Type {
		case String:
			field = Field{Type: String, Data: make([]float64, len(col.strings))}
			for i, s := range col.strings {
				if s == "" {
					field.Data[i] = math.NaN()
					continue
				}
				field.Data[i] = float64(df.Pool.Add(s))
			}
		case Time:
			field = Field{Type: Time, Data: make([]float64, len(col.times))}
			for i, t := range col.times {
				field.Data[i] = TimeToUnix(t)
			}
		default:
			field = Field{Type: col.Type, Data: append([]float64(nil), col.floats...)}
		}
		if err := df.Set(col.Name, field); err != nil {
			return nil, err
		}
	}
	return df, nil
}
