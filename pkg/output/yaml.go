package output

import (
	"encoding/json"
	"io"
	"strconv"

	"gopkg.in/yaml.v2"
)

var _ Formatter = (*YAML)(nil)

// YAML prints rows as a YAML sequence of mappings in column order.
type YAML struct{}

func NewYAML() *YAML {
	return &YAML{}
}

func (yf *YAML) Name() string {
	return "yaml"
}

func (yf *YAML) Format(w io.Writer, res *Result) error {
	cols := res.columns()
	doc := make([]yaml.MapSlice, 0, len(res.Rows))
	for _, row := range res.Rows {
		item := make(yaml.MapSlice, 0, len(row))
		for _, c := range cols {
			if v, ok := row[c]; ok {
				item = append(item, yaml.MapItem{Key: c, Value: yamlValue(v)})
			}
		}
		doc = append(doc, item)
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// yamlValue turns json.Number into a native number so it is not emitted as
// a quoted string.
func yamlValue(v interface{}) interface{} {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return u
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []interface{}:
		out := make([]interface{}, len(x))
		for i := range x {
			out[i] = yamlValue(x[i])
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, e := range x {
			out[k] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}
