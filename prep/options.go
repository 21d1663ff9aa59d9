// Package prep prepares data frames for analysis: filling and dropping
// missing values, normalization, deduplication, value replacement and
// type conversion.
//
// Every function returns a new frame and leaves its argument unchanged.
// Unknown option tags are reported as eda.ErrInvalidOption.
package prep

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/vdobler/eda"
)

// option maps the accepted tags of an enumeration to its values.
type option[T ~int] struct {
	what  string
	names []string // canonical name per value
	tags  map[string]T
}

func (o option[T]) parse(s string) (T, error) {
	v, ok := o.tags[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ewrap.Wrapf(eda.ErrInvalidOption, "%s %q (allowed: %s)",
			o.what, s, strings.Join(o.names, ", "))
	}
	return v, nil
}

func (o option[T]) name(v T) string {
	if v >= 0 && int(v) < len(o.names) {
		return o.names[v]
	}
	return fmt.Sprintf("%s(%d)", o.what, int(v))
}

func (o option[T]) check(v T) error {
	if v < 0 || int(v) >= len(o.names) {
		return ewrap.Wrapf(eda.ErrInvalidOption, "%s %d", o.what, int(v))
	}
	return nil
}

func (o option[T]) allowed() []string { return slices.Clone(o.names) }

// FillMethod selects the value FillMissing substitutes.
type FillMethod int

const (
	FillMean FillMethod = iota
	FillMedian
	FillMode
	FillZero
	FillValue
)

var fillMethods = option[FillMethod]{
	what:  "fill method",
	names: []string{"mean", "median", "mode", "zero", "value"},
	tags: map[string]FillMethod{
		"mean": FillMean, "media": FillMean, "preencher_medio": FillMean,
		"median": FillMedian, "mediana": FillMedian, "preencher_mediana": FillMedian,
		"mode": FillMode, "moda": FillMode, "preencher_moda": FillMode,
		"zero": FillZero,
		"value": FillValue, "valor": FillValue, "preencher_valor": FillValue,
	},
}

func (m FillMethod) String() string { return fillMethods.name(m) }

// ParseFillMethod maps a tag like "mean" or "mediana" to a FillMethod.
func ParseFillMethod(s string) (FillMethod, error) { return fillMethods.parse(s) }

// FillMethods lists the canonical fill method names.
func FillMethods() []string { return fillMethods.allowed() }

// NormMethod selects the scaling of Normalize.
type NormMethod int

const (
	MinMax NormMethod = iota
	ZScore
)

var normMethods = option[NormMethod]{
	what:  "normalization",
	names: []string{"min_max", "z_score"},
	tags: map[string]NormMethod{
		"min_max": MinMax, "minmax": MinMax, "min-max": MinMax,
		"z_score": ZScore, "zscore": ZScore, "z-score": ZScore,
	},
}

func (m NormMethod) String() string { return normMethods.name(m) }

// ParseNormMethod maps "min_max" or "z_score" to a NormMethod.
func ParseNormMethod(s string) (NormMethod, error) { return normMethods.parse(s) }

// Keep selects which of several duplicate rows Dedupe keeps.
type Keep int

const (
	KeepFirst Keep = iota
	KeepLast
	KeepNone
)

var keeps = option[Keep]{
	what:  "keep",
	names: []string{"first", "last", "none"},
	tags: map[string]Keep{
		"first": KeepFirst, "primeiro": KeepFirst,
		"last": KeepLast, "ultimo": KeepLast, "último": KeepLast,
		"none": KeepNone, "false": KeepNone,
	},
}

func (k Keep) String() string { return keeps.name(k) }

// ParseKeep maps "first", "last" or "none" to a Keep.
func ParseKeep(s string) (Keep, error) { return keeps.parse(s) }

// Kind is the target type of Convert.
type Kind int

const (
	ToInt Kind = iota
	ToFloat
	ToString
	ToCategory
	ToDatetime
)

var kinds = option[Kind]{
	what:  "type",
	names: []string{"int", "float", "string", "category", "datetime"},
	tags: map[string]Kind{
		"int": ToInt, "int64": ToInt, "integer": ToInt,
		"float": ToFloat, "float64": ToFloat, "double": ToFloat,
		"string": ToString, "str": ToString, "object": ToString,
		"category": ToCategory,
		"datetime": ToDatetime, "time": ToDatetime,
	},
}

func (k Kind) String() string { return kinds.name(k) }

// ParseKind maps a type name like "float" or "datetime" to a Kind.
func ParseKind(s string) (Kind, error) { return kinds.parse(s) }
