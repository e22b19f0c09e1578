package main

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gogpu/isoview"
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/internal/sandbox"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/world"
)

const (
	maxScale = 4
	maxTicks = 1000
)

// handler serialises every request against one sandbox.
type handler struct {
	mu sync.Mutex
	s  *sandbox.Sandbox
}

func newHandler(s *sandbox.Sandbox) *handler {
	return &handler{s: s}
}

func (h *handler) RegisterRoutes(r chi.Router) {
	r.Get("/frame.png", h.frame)
	r.Get("/pick", h.pick)
	r.Get("/viewports", h.viewports)
	r.Post("/tick", h.tick)
	r.Post("/rotate", h.rotate)
	r.Post("/scroll", h.scroll)
	r.Post("/follow", h.follow)
}

// run advances the park every interval until ctx is done.
func (h *handler) run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			h.mu.Lock()
			h.s.Frame()
			h.mu.Unlock()
		}
	}
}

func (h *handler) frame(w http.ResponseWriter, r *http.Request) {
	scale := min(max(parseInt(r.URL.Query().Get("scale"), 1), 1), maxScale)

	h.mu.Lock()
	h.s.Windows.Flush()
	img := h.s.Screen.Framebuffer().ScaledRGBA(scale)
	h.mu.Unlock()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, img); err != nil {
		isoview.Logger().Warn("isoserve: png encode", "err", err)
	}
}

type pickResponse struct {
	Found   bool           `json:"found"`
	Item    string         `json:"item"`
	Tile    geom.CoordsXY  `json:"tile"`
	Element string         `json:"element,omitempty"`
	Entity  *entityJSON    `json:"entity,omitempty"`
	Map     *geom.CoordsXY `json:"map,omitempty"`
}

type entityJSON struct {
	ID   world.EntityID `json:"id"`
	Kind string         `json:"kind"`
	Loc  geom.CoordsXYZ `json:"loc"`
}

var pickFilters = map[string]paint.InteractionMask{
	"":        paint.InteractionAll,
	"all":     paint.InteractionAll,
	"terrain": paint.InteractionTerrain.Mask(),
	"entity":  paint.InteractionEntity.Mask(),
	"ride":    paint.InteractionRide.Mask(),
	"path":    paint.InteractionFootpath.Mask(),
	"scenery": paint.InteractionScenery.Mask(),
}

func (h *handler) pick(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	if errX != nil || errY != nil {
		http.Error(w, "x and y are required", http.StatusBadRequest)
		return
	}
	filter, ok := pickFilters[q.Get("filter")]
	if !ok {
		http.Error(w, "unknown filter", http.StatusBadRequest)
		return
	}
	p := geom.ScreenXY{X: int32(x), Y: int32(y)}

	h.mu.Lock()
	info := h.s.Manager.Pick(p, filter)
	pos, _, onMap := h.s.Manager.ScreenGetMapXY(p)
	resp := pickResponse{Found: info.Found(), Item: info.Item.String(), Tile: info.Loc}
	if info.Element != nil {
		resp.Element = info.Element.Type.String()
	}
	if info.Entity != nil {
		resp.Entity = &entityJSON{ID: info.Entity.ID, Kind: info.Entity.Kind.String(), Loc: info.Entity.Loc}
	}
	h.mu.Unlock()
	if onMap {
		resp.Map = &pos
	}

	writeJSON(w, http.StatusOK, resp)
}

type viewportJSON struct {
	Window    int           `json:"window"`
	Main      bool          `json:"main"`
	Pos       geom.ScreenXY `json:"pos"`
	Width     int32         `json:"width"`
	Height    int32         `json:"height"`
	ViewPos   geom.ScreenXY `json:"viewPos"`
	Zoom      geom.Zoom     `json:"zoom"`
	Rotation  uint8         `json:"rotation"`
	Following string        `json:"following,omitempty"`
	Visible   string        `json:"visibility"`
}

func (h *handler) viewports(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	wins := h.s.Windows.Windows()
	out := make([]viewportJSON, 0, len(wins))
	for i, win := range wins {
		vp := win.Viewport
		if vp == nil {
			continue
		}
		v := viewportJSON{
			Window:   i,
			Main:     win.IsMain(),
			Pos:      vp.Pos,
			Width:    vp.Width,
			Height:   vp.Height,
			ViewPos:  vp.ViewPos,
			Zoom:     vp.Zoom,
			Rotation: vp.Rotation,
			Visible:  vp.Visibility.String(),
		}
		if win.Focus.IsSet() {
			v.Following = win.Focus.String()
		}
		out = append(out, v)
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (h *handler) tick(w http.ResponseWriter, r *http.Request) {
	n := min(max(parseInt(r.URL.Query().Get("n"), 1), 1), maxTicks)

	h.mu.Lock()
	for range n {
		h.s.Frame()
	}
	ticks := h.s.Park.Ticks()
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]uint32{"ticks": ticks})
}

func (h *handler) rotate(w http.ResponseWriter, r *http.Request) {
	dir := parseInt(r.URL.Query().Get("dir"), 1)

	h.mu.Lock()
	h.s.Manager.RotateAll(uint8(dir & 3))
	rot := h.s.Manager.CurrentRotation()
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]uint8{"rotation": rot})
}

func (h *handler) scroll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	if errX != nil || errY != nil {
		http.Error(w, "x and y are required", http.StatusBadRequest)
		return
	}
	pos := geom.CoordsXY{X: int32(x), Y: int32(y)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.s.Park.IsLocationValid(pos) {
		http.Error(w, isoview.ErrInvalidLocation.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.s.Manager.ScrollTo(h.s.Main, pos.WithZ(h.s.Park.TileElementHeight(pos)))
	w.WriteHeader(http.StatusAccepted)
}

func (h *handler) follow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("entity"))
	if err != nil {
		http.Error(w, "entity is required", http.StatusBadRequest)
		return
	}
	entity := world.EntityID(id)

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.s.Park.Entity(entity); !ok {
		http.Error(w, isoview.ErrEntityNotFound.Error(), http.StatusNotFound)
		return
	}
	sw, sh := h.s.Screen.Size()
	win, err := h.s.Windows.Open(isoview.WindowClassOther,
		geom.ScreenXY{X: sw - sw/3 - 8, Y: 8}, sw/3, sh/3, isoview.EntityFocus(entity))
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	win.SmartFollowEntity = entity
	w.WriteHeader(http.StatusCreated)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		isoview.Logger().Warn("isoserve: json encode", "err", err)
	}
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
