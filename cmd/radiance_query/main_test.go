package main

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/certusone/radiance-client/pkg/radiance"
	"github.com/pkg/errors"
)

const leaderStatsBody = `{
	"meta": [
		{"name": "slotWindow", "type": "Float64"},
		{"name": "leader", "type": "String"},
		{"name": "medianReplay", "type": "Float64"},
		{"name": "count", "type": "UInt64"}
	],
	"data": [
		{"slotWindow": 137326000, "leader": "val1", "medianReplay": 412.5, "count": "7"}
	],
	"rows": 1,
	"statistics": {"elapsed": 0.01, "rows_read": 100, "bytes_read": 4000}
}`

type fakeServer struct {
	server *httptest.Server
	status int
	body   string

	mu     sync.Mutex
	bodies []string
}

func startFakeServer(t *testing.T, status int, body string) *fakeServer {
	f := &fakeServer{status: status, body: body}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := ioutil.ReadAll(r.Body)
		f.mu.Lock()
		f.bodies = append(f.bodies, string(b))
		f.mu.Unlock()
		w.WriteHeader(f.status)
		w.Write([]byte(f.body))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeServer) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.bodies...)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootPrintsLeaderStatsJSON(t *testing.T) {
	f := startFakeServer(t, http.StatusOK, leaderStatsBody)
	out, err := execute(t, "", "--host", f.server.URL, "--user", "u", "--password", "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[
  {
    "slotWindow": 137326000,
    "leader": "val1",
    "medianReplay": 412.5,
    "count": "7"
  }
]
`
	if out != want {
		t.Errorf("incorrect output: got\n%s\nwant\n%s", out, want)
	}
	if len(f.received()) != 1 || f.received()[0] != radiance.LeaderStatsQuery+"\nFORMAT JSON" {
		t.Errorf("incorrect request bodies: %q", f.received())
	}
}

func TestLeaderStatsTyped(t *testing.T) {
	f := startFakeServer(t, http.StatusOK, leaderStatsBody)
	out, err := execute(t, "", "leader-stats", "--typed", "--format", "yaml", "--host", f.server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "- slotWindow: 137326000\n  leader: val1\n  medianReplay: 412.5\n  count: 7\n"
	if out != want {
		t.Errorf("incorrect output: got\n%s\nwant\n%s", out, want)
	}
}

func TestRootBadStatus(t *testing.T) {
	f := startFakeServer(t, http.StatusInternalServerError, "internal error")
	out, err := execute(t, "", "--host", f.server.URL)
	if err == nil {
		t.Fatalf("unexpected lack of error, output %q", out)
	}
	if out != "" {
		t.Errorf("unexpected output on failure: %q", out)
	}
	if !strings.Contains(err.Error(), "internal error") || !strings.Contains(err.Error(), "500") {
		t.Errorf("error lacks status or body: %v", err)
	}
	if _, ok := errors.Cause(err).(*radiance.RequestError); !ok {
		t.Errorf("expected *radiance.RequestError cause, got %T", errors.Cause(err))
	}
}

func TestQueryFromArgsAndStdin(t *testing.T) {
	cases := []struct {
		desc  string
		stdin string
		args  []string
		want  string
	}{
		{
			desc: "args",
			args: []string{"SELECT", "1"},
			want: "SELECT 1\nFORMAT JSON",
		},
		{
			desc:  "stdin",
			stdin: "SELECT\n  count()\nFROM slot_status\n",
			want:  "SELECT\n  count()\nFROM slot_status\nFORMAT JSON",
		},
	}
	for _, c := range cases {
		f := startFakeServer(t, http.StatusOK, `{"data": [{"x": 1}]}`)
		args := append([]string{"query", "--host", f.server.URL}, c.args...)
		out, err := execute(t, c.stdin, args...)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.desc, err)
			continue
		}
		if len(f.received()) != 1 || f.received()[0] != c.want {
			t.Errorf("%s: incorrect request body: got %q want %q", c.desc, f.received(), c.want)
		}
		if want := "[\n  {\n    \"x\": 1\n  }\n]\n"; out != want {
			t.Errorf("%s: incorrect output: got %q want %q", c.desc, out, want)
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	f := startFakeServer(t, http.StatusOK, `{"data": []}`)
	_, err := execute(t, "", "--host", f.server.URL, "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
	if len(f.received()) != 0 {
		t.Errorf("request sent despite bad format: %q", f.received())
	}
}
