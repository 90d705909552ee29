package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/timelane/pkg/cache"
	terrors "github.com/matzehuels/timelane/pkg/errors"
	tio "github.com/matzehuels/timelane/pkg/io"
	"github.com/matzehuels/timelane/pkg/observability"
	"github.com/matzehuels/timelane/pkg/pipeline"
)

const layoutBody = `{"items": [
  {"id": "bach", "name": "J. S. Bach", "category": "person", "start": 1685, "end": 1750},
  {"id": "eruption", "name": "Vesuvius", "category": "event", "start": 1707, "end": 1710},
  {"id": "blink", "name": "Blink", "category": "event", "start": 1720, "end": 1721}
]}`

func newTestServer(t *testing.T, metrics http.Handler) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, nil, logger)
	srv := httptest.NewServer(New(runner, logger, Config{Metrics: metrics}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/v1/layout", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLayoutEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv.URL, layoutBody)
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, b)
	}
	if got := resp.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}
	doc, err := tio.ReadLayout(resp.Body)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if len(doc.Placements) != 2 {
		t.Errorf("placements = %d, want 2", len(doc.Placements))
	}
	if len(doc.Excluded) != 1 || doc.Excluded[0] != "blink" {
		t.Errorf("excluded = %v", doc.Excluded)
	}

	again := post(t, srv.URL, layoutBody)
	if got := again.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second request X-Cache = %q, want HIT", got)
	}
}

func TestLayoutEndpointParamOverride(t *testing.T) {
	srv := newTestServer(t, nil)
	body := strings.Replace(layoutBody, `{"items"`, `{"params": {"row_height": 50}, "items"`, 1)

	resp := post(t, srv.URL, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	doc, err := tio.ReadLayout(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Params.RowHeight != 50 || doc.Params.PixelsPerUnit != 4 {
		t.Errorf("params = %+v, want row_height 50 over defaults", doc.Params)
	}
	if doc.Placements[0].BarY != 25 {
		t.Errorf("bar_y = %v, want 25", doc.Placements[0].BarY)
	}
}

func TestLayoutEndpointErrors(t *testing.T) {
	srv := newTestServer(t, nil)
	tests := []struct {
		name     string
		body     string
		wantCode terrors.Code
	}{
		{"malformed json", `{"items": [`, terrors.ErrCodeInvalidInput},
		{"missing name", `{"items": [{"id": "a", "start": 1, "end": 9}]}`, terrors.ErrCodeInvalidItem},
		{"reversed span", `{"items": [{"id": "a", "name": "A", "start": 9, "end": 1}]}`, terrors.ErrCodeInvalidItem},
		{"bad params", `{"items": [], "params": {"pixels_per_unit": 0}}`, terrors.ErrCodeInvalidParams},
		{"params wrong type", `{"items": [], "params": {"pixels_per_unit": "big"}}`, terrors.ErrCodeInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode || body.Message == "" {
				t.Errorf("body = %+v, want code %s", body, tt.wantCode)
			}
		})
	}
}

func TestEmptyItems(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := post(t, srv.URL, `{"items": []}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	doc, err := tio.ReadLayout(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if doc.TotalRows != 0 || len(doc.Placements) != 0 {
		t.Errorf("doc = %+v, want empty layout", doc)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v", resp.StatusCode, body)
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("generated id %q is not a uuid", resp.Header.Get(RequestIDHeader))
	}

	want := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, want)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != want {
		t.Errorf("id = %q, want incoming %q", got, want)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("malformed incoming id should be replaced")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	prom := observability.NewPrometheus("timelane")
	observability.SetHTTPHooks(prom)
	defer observability.Reset()

	srv := newTestServer(t, prom.Handler())
	post(t, srv.URL, layoutBody)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	want := `timelane_http_requests_total{method="POST",route="/v1/layout",status="200"} 1`
	if !strings.Contains(buf.String(), want) {
		t.Errorf("metrics missing %q", want)
	}
}

func TestMetricsRouteOptional(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without a metrics handler", resp.StatusCode)
	}
}
