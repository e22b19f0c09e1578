package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gogpu/isoview/internal/sandbox"
)

func newServer(t *testing.T) (*handler, http.Handler) {
	t.Helper()
	cfg := sandbox.DefaultConfig()
	cfg.MapSize = 32
	s, err := sandbox.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	h := newHandler(s)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return h, r
}

func do(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestFrame(t *testing.T) {
	_, r := newServer(t)
	tests := []struct {
		query string
		w, h  int
	}{
		{"", 640, 480},
		{"?scale=2", 1280, 960},
		{"?scale=99", 2560, 1920},
		{"?scale=junk", 640, 480},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, r, http.MethodGet, "/frame.png"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestPick(t *testing.T) {
	_, r := newServer(t)
	do(t, r, http.MethodGet, "/frame.png")

	tests := []struct {
		name   string
		target string
		code   int
		item   string
	}{
		{"terrain", "/pick?x=320&y=240&filter=terrain", http.StatusOK, "terrain"},
		{"missing", "/pick?x=320", http.StatusBadRequest, ""},
		{"bad filter", "/pick?x=1&y=1&filter=ducks", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodGet, tt.target)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}
			var resp pickResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if !resp.Found || resp.Item != tt.item {
				t.Errorf("pick = %+v, want %s", resp, tt.item)
			}
			if resp.Element != "surface" {
				t.Errorf("element = %q, want surface", resp.Element)
			}
			if resp.Map == nil {
				t.Error("expected a map position")
			}
		})
	}
}

func TestFollowAndViewports(t *testing.T) {
	_, r := newServer(t)

	if rec := do(t, r, http.MethodPost, "/follow?entity=12345"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown entity status = %d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/follow?entity=1000"); rec.Code != http.StatusCreated {
		t.Fatalf("follow status = %d", rec.Code)
	}

	rec := do(t, r, http.MethodGet, "/viewports")
	var vps []viewportJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &vps); err != nil {
		t.Fatal(err)
	}
	if len(vps) != 2 {
		t.Fatalf("got %d viewports, want 2", len(vps))
	}
	if !vps[0].Main || vps[1].Main {
		t.Errorf("main flags = %v, %v", vps[0].Main, vps[1].Main)
	}
	if vps[1].Following == "" {
		t.Error("second viewport should report its focus")
	}
}

func TestTickRotateScroll(t *testing.T) {
	h, r := newServer(t)

	rec := do(t, r, http.MethodPost, "/tick?n=5")
	var ticks map[string]uint32
	if err := json.Unmarshal(rec.Body.Bytes(), &ticks); err != nil {
		t.Fatal(err)
	}
	if ticks["ticks"] != 5 {
		t.Errorf("ticks = %d, want 5", ticks["ticks"])
	}

	rec = do(t, r, http.MethodPost, "/rotate")
	var rot map[string]uint8
	if err := json.Unmarshal(rec.Body.Bytes(), &rot); err != nil {
		t.Fatal(err)
	}
	if rot["rotation"] != 1 {
		t.Errorf("rotation = %d, want 1", rot["rotation"])
	}

	if rec := do(t, r, http.MethodPost, "/scroll?x=-500&y=0"); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("off-map scroll status = %d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/scroll?x=320&y=320"); rec.Code != http.StatusAccepted {
		t.Errorf("scroll status = %d", rec.Code)
	}
	if h.s.Main.SavedViewPos == h.s.Main.Viewport.ViewPos {
		t.Error("scroll should set a new destination")
	}
}
