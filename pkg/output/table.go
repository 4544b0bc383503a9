package output

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var _ Formatter = (*Table)(nil)

// Table prints rows as an aligned text table.
type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (tf *Table) Name() string {
	return "table"
}

func (tf *Table) Format(w io.Writer, res *Result) error {
	cols := res.columns()

	header := make(table.Row, 0, len(cols))
	for _, c := range cols {
		header = append(header, c)
	}

	rows := make([]table.Row, 0, len(res.Rows))
	for _, r := range res.Rows {
		row := make(table.Row, 0, len(cols))
		for _, c := range cols {
			row = append(row, cell(r[c]))
		}
		rows = append(rows, row)
	}

	t := table.NewWriter()
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func cell(v interface{}) interface{} {
	if v == nil {
		return "NULL"
	}
	return v
}
