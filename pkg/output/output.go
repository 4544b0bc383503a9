// Package output renders query results as text.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/certusone/radiance-client/pkg/radiance"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = "json"

// Result is a set of rows ready to be printed. Columns, when known from the
// response metadata, fixes the column order; otherwise columns are sorted
// by name.
type Result struct {
	Columns []string
	Rows    []radiance.Row
}

// NewResult builds a Result from a full query response.
func NewResult(r *radiance.Response) *Result {
	return &Result{Columns: r.Columns(), Rows: r.Data}
}

// columns returns Columns followed, in sorted order, by any row key that
// Columns does not name.
func (r *Result) columns() []string {
	seen := make(map[string]bool, len(r.Columns))
	cols := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		if !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	var extra []string
	for _, row := range r.Rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

// Formatter writes a Result to w.
type Formatter interface {
	Name() string
	Format(w io.Writer, res *Result) error
}

var formatters = map[string]Formatter{}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(NewJSON())
	register(NewYAML())
	register(NewTable())
}

// Names returns the registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the formatter registered under name.
func Get(name string) (Formatter, error) {
	f, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q, valid: %s", name, strings.Join(Names(), ", "))
	}
	return f, nil
}
