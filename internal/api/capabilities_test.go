package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/screenway/vidcaps/internal/api/models"
	"github.com/screenway/vidcaps/internal/codec"
	_ "github.com/screenway/vidcaps/internal/modules"
	"github.com/screenway/vidcaps/internal/registry"
)

func newTestServer(t *testing.T, opts *Options) *Server {
	t.Helper()
	reg := registry.New(codec.SystemCatalog(), codec.Default())
	if err := reg.SelectModules([]string{"all"}, []string{"all"}, []string{"all"}); err != nil {
		t.Fatalf("SelectModules failed: %v", err)
	}
	reg.Init()
	t.Cleanup(reg.Cleanup)

	if opts == nil {
		opts = &Options{}
	}
	opts.Registry = reg
	return NewServer(opts)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.GetMux().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data models.HealthData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data.Status != "ok" {
		t.Errorf("status = %q, want ok", data.Status)
	}
}

func TestEncodingsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/encodings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data models.EncodingsData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	sort.Strings(data.Encodings)
	if !reflect.DeepEqual(data.Encodings, []string{"h264", "vp8", "vp9"}) {
		t.Errorf("encodings = %v, want [h264 vp8 vp9]", data.Encodings)
	}
	if len(data.Decodings) == 0 {
		t.Error("expected at least one decoding")
	}
	if len(data.CSCInputs) == 0 {
		t.Error("expected at least one CSC input")
	}
}

func TestCapabilitiesEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/capabilities", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data models.CapabilitiesData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if got := data.Encoding["YUV420P_to_h264"]; len(got) == 0 {
		t.Errorf("expected x264 for YUV420P_to_h264, got %v", got)
	}
	if status := data.Encoders["x264"]; status != "active" {
		t.Errorf("x264 status = %q, want active", status)
	}
	if status := data.Encoders["nvenc"]; status != "not-found" {
		t.Errorf("nvenc status = %q, want not-found", status)
	}
}

func TestNegotiateEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/negotiate",
		`{"colorspaces": ["YUV420P"], "rgb": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var data models.NegotiateData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if data.Count != len(data.Encodings) {
		t.Errorf("count = %d, want %d", data.Count, len(data.Encodings))
	}
	want := []string{"YUV420P", "YUV422P"}
	if !reflect.DeepEqual(data.Encodings["h264"], want) {
		t.Errorf("h264 = %v, want %v", data.Encodings["h264"], want)
	}
}

func TestNegotiateRGBEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/negotiate",
		`{"colorspaces": ["RGB"], "rgb": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var data models.NegotiateData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// vp9's YUV444P pair is only reachable through a conversion hop
	want := []string{"YUV420P", "YUV444P"}
	if !reflect.DeepEqual(data.Encodings["vp9"], want) {
		t.Errorf("vp9 = %v, want %v", data.Encodings["vp9"], want)
	}
}

func TestNegotiateRequiresColorspaces(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/negotiate", `{"colorspaces": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBasicAuth(t *testing.T) {
	srv := newTestServer(t, &Options{AuthUsername: "admin", AuthPassword: "secret"})

	// Health has no security requirement
	rec := doRequest(t, srv, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("health without auth: status = %d, want 200", rec.Code)
	}

	// Capability routes require credentials
	rec = doRequest(t, srv, http.MethodGet, "/api/capabilities", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("capabilities without auth: status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/capabilities", nil)
	req.SetBasicAuth("admin", "secret")
	resp := httptest.NewRecorder()
	srv.GetMux().ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Errorf("capabilities with auth: status = %d, want 200", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/capabilities", nil)
	req.SetBasicAuth("admin", "wrong")
	resp = httptest.NewRecorder()
	srv.GetMux().ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("capabilities with bad password: status = %d, want 401", resp.Code)
	}
}
