package eda

import "github.com/hyp3rd/ewrap"

var (
	// ErrColumnNotFound is returned when a referenced column is not part
	// of the data frame.
	ErrColumnNotFound = ewrap.New("column not found")

	// ErrDuplicateColumn is returned when a column name is used twice.
	ErrDuplicateColumn = ewrap.New("duplicate column")

	// ErrLengthMismatch is returned when a column does not have as many
	// values as the frame has rows.
	ErrLengthMismatch = ewrap.New("column length does not match row count")

	// ErrInvalidOption is returned for an unrecognized method, kind or
	// other option value. The wrapping message names the allowed set.
	ErrInvalidOption = ewrap.New("invalid option")

	// ErrNotNumeric is returned when a numeric column is required.
	ErrNotNumeric = ewrap.New("column is not numeric")

	// ErrUnsupportedType is returned when a Go value or struct field
	// cannot be stored in a field.
	ErrUnsupportedType = ewrap.New("unsupported type")

	// ErrEmptyFrame is returned when an operation needs at least one row.
	ErrEmptyFrame = ewrap.New("empty data frame")

	// ErrMissingValue is returned when a required parameter is missing.
	ErrMissingValue = ewrap.New("missing value")
)
