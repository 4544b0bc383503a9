// Package radiance is a client for the radiance analytics endpoint, a
// ClickHouse HTTP interface exposing the slot_status table.
//
// Queries are sent verbatim as the POST body with a JSON format directive
// appended; the client has no knowledge of the query dialect.
package radiance

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
)

const (
	// ClientName is sent as the User-Agent of every request.
	ClientName = "radiance-client/v0.1"

	formatDirective = "\nFORMAT JSON"

	headerAuthorization = "Authorization"
)

var (
	methodPost = []byte("POST")
	textPlain  = []byte("text/plain")
)

// Row is one decoded record, keyed by column name. Numeric values are
// json.Number so they print exactly as the server sent them.
type Row map[string]interface{}

// Column describes one column of a result set.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Statistics is the execution summary ClickHouse attaches to JSON output.
type Statistics struct {
	Elapsed   float64 `json:"elapsed"`
	RowsRead  uint64  `json:"rows_read"`
	BytesRead uint64  `json:"bytes_read"`
}

// Response is the full JSON envelope of a query result.
type Response struct {
	Meta       []Column   `json:"meta"`
	Data       []Row      `json:"data"`
	Rows       uint64     `json:"rows"`
	Statistics Statistics `json:"statistics"`
}

// Columns returns the column names in result order.
func (r *Response) Columns() []string {
	names := make([]string, 0, len(r.Meta))
	for _, c := range r.Meta {
		names = append(names, c.Name)
	}
	return names
}

// Client sends queries to a single endpoint using HTTP Basic
// authentication. It is safe for concurrent use.
type Client struct {
	client fasthttp.Client

	host string
	auth string
}

// NewClient returns a Client for c. It does not contact the endpoint.
func NewClient(c Config) *Client {
	return &Client{
		client: fasthttp.Client{
			Name: ClientName,
		},
		host: c.Host,
		auth: basicAuth(c.User, c.Password),
	}
}

func basicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

// requestBody appends the format directive to the query text.
func requestBody(query string) string {
	return query + formatDirective
}

func (c *Client) initializeReq(req *fasthttp.Request, query string) {
	req.Header.SetMethodBytes(methodPost)
	req.Header.SetContentTypeBytes(textPlain)
	req.Header.SetUserAgent(ClientName)
	req.Header.Set(headerAuthorization, c.auth)
	req.SetRequestURI(c.host)
	req.SetBodyString(requestBody(query))
}

// do performs one request and returns a copy of the response body if the
// endpoint answered 200.
func (c *Client) do(query string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	c.initializeReq(req, query)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.client.Do(req, resp); err != nil {
		return nil, &RequestError{Err: err}
	}
	body := append([]byte(nil), resp.Body()...)
	if sc := resp.StatusCode(); sc != fasthttp.StatusOK {
		return nil, &RequestError{StatusCode: sc, Body: string(body)}
	}
	return body, nil
}

// QueryResponse runs query and returns the whole decoded envelope,
// including column metadata and execution statistics.
func (c *Client) QueryResponse(query string) (*Response, error) {
	body, err := c.do(query)
	if err != nil {
		return nil, err
	}
	return decodeResponse(body)
}

// Query runs query and returns the rows found under the "data" key of the
// response. Every call issues a new request.
func (c *Client) Query(query string) ([]Row, error) {
	r, err := c.QueryResponse(query)
	if err != nil {
		return nil, err
	}
	return r.Data, nil
}

// LeaderStats runs LeaderStatsQuery. Every call issues a new request.
func (c *Client) LeaderStats() ([]Row, error) {
	return c.Query(LeaderStatsQuery)
}

// LeaderStatsResponse runs LeaderStatsQuery and returns the whole envelope.
func (c *Client) LeaderStatsResponse() (*Response, error) {
	return c.QueryResponse(LeaderStatsQuery)
}

// LeaderStatsTyped runs LeaderStatsQuery and converts the rows into
// LeaderStat values.
func (c *Client) LeaderStatsTyped() ([]LeaderStat, error) {
	rows, err := c.LeaderStats()
	if err != nil {
		return nil, err
	}
	return ParseLeaderStats(rows)
}

// envelope holds the raw response. Only data is required; the other keys
// are decoded best-effort since they are informational.
type envelope struct {
	Meta       json.RawMessage `json:"meta"`
	Data       []Row           `json:"data"`
	Rows       json.RawMessage `json:"rows"`
	Statistics json.RawMessage `json:"statistics"`
}

func decodeResponse(body []byte) (*Response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, &DecodeError{Body: string(body), Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DecodeError{Body: string(body), Err: errors.New("trailing data after JSON value")}
	}
	if env.Data == nil {
		return nil, &DecodeError{Body: string(body), Err: errors.New(`response has no "data" key`)}
	}

	r := &Response{Data: env.Data}
	if len(env.Meta) > 0 {
		var meta []Column
		if err := json.Unmarshal(env.Meta, &meta); err == nil {
			r.Meta = meta
		}
	}
	r.Rows, _ = looseUint(env.Rows)
	var stats map[string]json.RawMessage
	if len(env.Statistics) > 0 && json.Unmarshal(env.Statistics, &stats) == nil {
		r.Statistics.Elapsed, _ = looseFloat(stats["elapsed"])
		r.Statistics.RowsRead, _ = looseUint(stats["rows_read"])
		r.Statistics.BytesRead, _ = looseUint(stats["bytes_read"])
	}
	return r, nil
}

// looseText returns the text of a JSON number or numeric string.
func looseText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	switch x := v.(type) {
	case json.Number:
		return x.String(), true
	case string:
		return x, true
	default:
		return "", false
	}
}

func looseUint(raw json.RawMessage) (uint64, bool) {
	text, ok := looseText(raw)
	if !ok {
		return 0, false
	}
	u, err := strconv.ParseUint(text, 10, 64)
	return u, err == nil
}

func looseFloat(raw json.RawMessage) (float64, bool) {
	text, ok := looseText(raw)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	return f, err == nil
}
