package output

import (
	"bytes"
	"encoding/json"
	"io"
)

var _ Formatter = (*JSON)(nil)

// JSON prints rows as a 2-space indented array of objects. Object keys
// follow the result's column order.
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) Name() string {
	return "json"
}

func (jf *JSON) Format(w io.Writer, res *Result) error {
	compact, err := jf.encode(res)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact, "", "  "); err != nil {
		return err
	}
	pretty.WriteByte('\n')
	_, err = w.Write(pretty.Bytes())
	return err
}

func (jf *JSON) encode(res *Result) ([]byte, error) {
	cols := res.columns()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoder.Encode terminates every value with a newline, which json.Indent
	// discards as insignificant whitespace.
	buf.WriteByte('[')
	for i, row := range res.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		first := true
		for _, c := range cols {
			v, ok := row[c]
			if !ok {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := enc.Encode(c); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := enc.Encode(v); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
