package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/session"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	mgr := session.NewManager(session.NewMemoryStore(), time.Hour, logger)
	runner := pipeline.NewRunner(c, nil, logger)
	return New(mgr, runner, append([]Option{WithLogger(logger)}, opts...)...)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func wantError(t *testing.T, rec *httptest.ResponseRecorder, status int, code errors.Code) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	got := decode[errorResponse](t, rec)
	if got.Code != string(code) {
		t.Errorf("code = %q, want %q", got.Code, code)
	}
	if got.Message == "" {
		t.Error("error message is empty")
	}
}

func createSession(t *testing.T, s *Server, body string) session.Session {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/v1/sessions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", rec.Code, rec.Body.String())
	}
	sess := decode[session.Session](t, rec)
	if loc := rec.Header().Get("Location"); loc != "/v1/sessions/"+sess.ID {
		t.Errorf("Location = %q", loc)
	}
	return sess
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["status"] != "ok" {
		t.Errorf("body = %v", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, `{"width": 200, "height": 100}`)
	if sess.Center != geom.Pt(100, 50) {
		t.Errorf("center = %v", sess.Center)
	}
	base := "/v1/sessions/" + sess.ID

	rec := do(t, s, http.MethodPost, base+"/rectangles", `{"sizes": [{"width": 10, "height": 4}], "labels": ["go"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("place: %d %s", rec.Code, rec.Body.String())
	}
	placed := decode[placeResponse](t, rec)
	if placed.Total != 1 || len(placed.Placed) != 1 || placed.Placed[0] != geom.Rect(95, 48, 10, 4) {
		t.Errorf("place response = %+v", placed)
	}

	rec = do(t, s, http.MethodPost, base+"/rectangles", `{"sizes": [{"width": 10, "height": 4}]}`)
	if got := decode[placeResponse](t, rec); got.Total != 2 || got.Placed[0].Intersects(placed.Placed[0]) {
		t.Errorf("second place response = %+v", got)
	}

	rec = do(t, s, http.MethodGet, base, "")
	if got := decode[session.Session](t, rec); len(got.Rectangles) != 2 || got.Labels[0] != "go" {
		t.Errorf("session = %+v", got)
	}

	rec = do(t, s, http.MethodGet, base+"/render.svg?labels=true&center=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("render: %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<svg") || !strings.Contains(body, ">go</text>") {
		t.Errorf("unexpected svg: %s", body)
	}
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first render X-Cache = %q, want miss", got)
	}
	rec = do(t, s, http.MethodGet, base+"/render.svg?labels=true&center=1", "")
	if got := rec.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second render X-Cache = %q, want hit", got)
	}

	rec = do(t, s, http.MethodGet, base+"/render.json", "")
	if rec.Code != http.StatusOK || !json.Valid(rec.Body.Bytes()) {
		t.Errorf("render json: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodDelete, base, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	wantError(t, do(t, s, http.MethodGet, base, ""), http.StatusNotFound, errors.ErrCodeSessionNotFound)
}

func TestPlaceSearchExhausted(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, `{"max_steps": 1}`)
	rec := do(t, s, http.MethodPost, "/v1/sessions/"+sess.ID+"/rectangles",
		`{"sizes": [{"width": 10, "height": 10}, {"width": 10, "height": 10}]}`)
	wantError(t, rec, http.StatusUnprocessableEntity, errors.ErrCodeSearchExhausted)

	rec = do(t, s, http.MethodGet, "/v1/sessions/"+sess.ID, "")
	if got := decode[session.Session](t, rec); len(got.Rectangles) != 0 {
		t.Errorf("failed placement stored %d rectangles", len(got.Rectangles))
	}
}

func TestRequestErrors(t *testing.T) {
	s := newTestServer(t, WithMaxBodyBytes(64))
	sess := createSession(t, s, "")
	base := "/v1/sessions/" + sess.ID

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"unknown field", http.MethodPost, "/v1/sessions", `{"radius": 3}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed json", http.MethodPost, "/v1/sessions", `{"width":`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"trailing value", http.MethodPost, "/v1/sessions", `{} {}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad distribution", http.MethodPost, "/v1/sessions", `{"distribution": "hilbert"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"body too large", http.MethodPost, "/v1/sessions", `{"width": 1` + strings.Repeat(" ", 100) + `}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"empty sizes", http.MethodPost, base + "/rectangles", `{"sizes": []}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too many labels", http.MethodPost, base + "/rectangles", `{"sizes": [{"width": 1, "height": 1}], "labels": ["a", "b"]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"negative size", http.MethodPost, base + "/rectangles", `{"sizes": [{"width": -1, "height": 1}]}`, http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"malformed id", http.MethodGet, "/v1/sessions/nope", "", http.StatusNotFound, errors.ErrCodeSessionNotFound},
		{"unknown format", http.MethodGet, base + "/render.gif", "", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown style", http.MethodGet, base + "/render.svg?style=neon", "", http.StatusBadRequest, errors.ErrCodeInvalidStyle},
		{"bad probes", http.MethodGet, base + "/render.svg?probes=many", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"path length over limit", http.MethodGet, base + "/render.svg?probes=1000000", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"huge png scale", http.MethodGet, base + "/render.png?scale=1e9", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"nan png scale", http.MethodGet, base + "/render.png?scale=NaN", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"no route", http.MethodGet, "/v2/everything", "", http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantError(t, do(t, s, tt.method, tt.path, tt.body), tt.status, tt.code)
		})
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/layout", `{"count": 5, "formats": ["svg", "json"], "seed": 7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[layoutResponse](t, rec)
	if got.Stats.Rectangles != 5 || len(got.Layout.Rectangles) != 5 {
		t.Errorf("stats = %+v", got.Stats)
	}
	if !strings.HasPrefix(string(got.Artifacts["svg"]), "<svg") {
		t.Errorf("svg artifact = %.40q", got.Artifacts["svg"])
	}
	if !json.Valid(got.Artifacts["json"]) {
		t.Error("json artifact is not valid JSON")
	}

	rec = do(t, s, http.MethodPost, "/v1/layout", `{"count": 5, "formats": ["svg", "json"], "seed": 7}`)
	if got := decode[layoutResponse](t, rec); !got.Stats.LayoutCached || !got.Stats.RenderCached {
		t.Errorf("repeat request not served from cache: %+v", got.Stats)
	}

	wantError(t, do(t, s, http.MethodPost, "/v1/layout", `{"formats": ["gif"]}`), http.StatusBadRequest, errors.ErrCodeInvalidFormat)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidStyle, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeSessionNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeSearchExhausted, "x"), http.StatusUnprocessableEntity},
		{fmt.Errorf("layout: %w", errors.New(errors.ErrCodeSearchExhausted, "x")), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
