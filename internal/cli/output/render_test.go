package output

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdobler/eda"
)

func frame(t *testing.T) *eda.DataFrame {
	t.Helper()
	df, err := eda.FromColumns("stock",
		eda.StringColumn("item", "pen", ""),
		eda.FloatColumn("price", 1.25, math.NaN()),
		eda.TimeColumn("seen", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	return df
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, JSON).Render(frame(t)))

	var got struct {
		Name    string
		Columns []string
		Types   []string
		Rows    [][]any
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "stock", got.Name)
	assert.Equal(t, []string{"item", "price", "seen"}, got.Columns)
	assert.Equal(t, []string{"string", "float", "time"}, got.Types)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, []any{"pen", 1.25, "2024-05-06T07:08:09Z"}, got.Rows[0])
	assert.Nil(t, got.Rows[1][0])
	assert.Nil(t, got.Rows[1][1])
}

func TestRenderText(t *testing.T) {
	df := frame(t)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, Table).Render(df))
	assert.Contains(t, buf.String(), "stock")
	assert.Contains(t, buf.String(), "(2 rows)")

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, Markdown).Render(df))
	assert.Contains(t, strings.ToLower(buf.String()), "| item | price | seen |")

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, CSV).Render(df))
	assert.Contains(t, strings.ToLower(buf.String()), "item,price,seen")
	assert.Contains(t, buf.String(), "pen,1.25,")

	err := NewRenderer(&buf, Mode("xml")).Render(df)
	assert.True(t, errors.Is(err, eda.ErrInvalidOption))
}

func TestMessage(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, Table).Message("wrote %d rows", 3)
	assert.Equal(t, "wrote 3 rows\n", buf.String())

	buf.Reset()
	NewRenderer(&buf, JSON).Message("wrote %d rows", 3)
	assert.Empty(t, buf.String())
}
