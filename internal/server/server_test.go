package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/pixelflex/pkg/cache"
	"github.com/matzehuels/pixelflex/pkg/history"
)

const sceneDoc = `
[root]
kind = "container"
width = 40
height = 30
axis = "horizontal"
justify = "center"
align = "center"
background = "white"

[[root.children]]
kind = "spacer"
width = 10
height = 10
`

func newTestServer(t *testing.T) (*Server, *history.MemoryStore) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := history.NewMemoryStore(0)
	return New(Config{Cache: fc, Store: store}), store
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestComposeRendersPNG(t *testing.T) {
	s, store := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/compose", bytes.NewReader([]byte(sceneDoc)))
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("content type = %q", got)
	}
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}
	body, _ := io.ReadAll(rec.Body)
	if !bytes.HasPrefix(body, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("response is not a PNG")
	}

	jobs, err := store.Recent(req.Context(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(jobs))
	}
	if jobs[0].Width != 40 || jobs[0].Height != 30 || jobs[0].Cached {
		t.Errorf("job = %+v", jobs[0])
	}
}

func TestComposeServesFromCache(t *testing.T) {
	s, _ := newTestServer(t)

	first := httptest.NewRecorder()
	s.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/v1/compose", bytes.NewReader([]byte(sceneDoc))))
	if first.Code != http.StatusOK {
		t.Fatalf("first render failed: %s", first.Body.String())
	}

	second := httptest.NewRecorder()
	s.Handler().ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/v1/compose", bytes.NewReader([]byte(sceneDoc))))
	if second.Code != http.StatusOK {
		t.Fatalf("second render failed: %s", second.Body.String())
	}
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("X-Cache = %q, want HIT", got)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached bytes differ from rendered bytes")
	}
}

func TestComposeRejectsBadManifest(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid toml", body: "[root\n"},
		{name: "no root", body: `title = "x"`},
		{name: "bad policy", body: "[root]\nkind = \"container\"\njustify = \"sideways\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/compose", bytes.NewReader([]byte(tt.body))))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp["code"] == "" {
				t.Error("error response missing code")
			}
		})
	}
}

func TestJobsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/compose", bytes.NewReader([]byte(sceneDoc))))
	if rec.Code != http.StatusOK {
		t.Fatal("render failed")
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/jobs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Jobs []*history.Job `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(resp.Jobs))
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/jobs/"+resp.Jobs[0].ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("job lookup status = %d", rec.Code)
	}
}

func TestJobNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/jobs/absent", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestJobsInvalidLimit(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/jobs?limit=banana", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
