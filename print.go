package eda

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableWriter returns a go-pretty table writer filled with the content
// of df. Callers choose the style and the output format (Render,
// RenderMarkdown, RenderCSV, ...).
func (df *DataFrame) TableWriter() table.Writer {
	t := table.NewWriter()
	names := df.Names()

	header := make(table.Row, len(names))
	for i, name := range names {
		header[i] = name
	}
	t.AppendHeader(header)

	for i := 0; i < df.N; i++ {
		row := make(table.Row, len(names))
		for j, name := range names {
			row[j] = df.Columns[name].String(i)
		}
		t.AppendRow(row)
	}
	return t
}

// Print writes df as a table to w.
func (df *DataFrame) Print(w io.Writer) {
	t := df.TableWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if df.Name != "" {
		t.SetTitle(df.Name)
	}
	t.Render()
}
