// Package output renders data frames for the terminal.
package output

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vdobler/eda"
)

// Mode is an output format.
type Mode string

const (
	Table    Mode = "table"
	Markdown Mode = "markdown"
	CSV      Mode = "csv"
	JSON     Mode = "json"
)

// Renderer writes frames to w in one mode.
type Renderer struct {
	w    io.Writer
	mode Mode
}

func NewRenderer(w io.Writer, mode Mode) *Renderer {
	return &Renderer{w: w, mode: mode}
}

// Render writes df.
func (r *Renderer) Render(df *eda.DataFrame) error {
	switch r.mode {
	case JSON:
		return r.renderJSON(df)
	case Table, Markdown, CSV:
	default:
		return ewrap.Wrapf(eda.ErrInvalidOption, "output %q", string(r.mode))
	}

	t := df.TableWriter()
	t.SetOutputMirror(r.w)
	alignNumbers(t, df)
	switch r.mode {
	case Markdown:
		t.RenderMarkdown()
	case CSV:
		t.RenderCSV()
	default:
		t.SetStyle(table.StyleLight)
		if df.Name != "" {
			t.SetTitle(df.Name)
		}
		t.Render()
		_, _ = fmt.Fprintf(r.w, "(%d rows)\n", df.N)
	}
	return nil
}

// Message writes a line of text. JSON output drops it.
func (r *Renderer) Message(format string, args ...any) {
	if r.mode == JSON {
		return
	}
	_, _ = fmt.Fprintf(r.w, format+"\n", args...)
}

func alignNumbers(t table.Writer, df *eda.DataFrame) {
	var configs []table.ColumnConfig
	for i, name := range df.Names() {
		if df.Columns[name].Numeric() {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	t.SetColumnConfigs(configs)
}

// jsonFrame is the JSON form of a frame: column names and rows of values
// in column order. Missing values are null.
type jsonFrame struct {
	Name    string   `json:"name,omitempty"`
	Columns []string `json:"columns"`
	Types   []string `json:"types"`
	Rows    [][]any  `json:"rows"`
}

func (r *Renderer) renderJSON(df *eda.DataFrame) error {
	names := df.Names()
	out := jsonFrame{
		Name:    df.Name,
		Columns: names,
		Types:   make([]string, len(names)),
		Rows:    make([][]any, df.N),
	}
	for j, name := range names {
		out.Types[j] = df.Columns[name].Type.String()
	}
	for i := range out.Rows {
		row := make([]any, len(names))
		for j, name := range names {
			row[j] = jsonValue(df.Columns[name].Value(i))
		}
		out.Rows[i] = row
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func jsonValue(v any) any {
	switch v := v.(type) {
	case float64:
		if math.IsInf(v, 0) {
			return nil
		}
	case time.Time:
		return v.Format(time.RFC3339)
	}
	return v
}
