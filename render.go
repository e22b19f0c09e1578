package isoview

import (
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/internal/parallel"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/sprite"
)

// Render paints the part of the screen rectangle r covered by vp into dst.
//
// dst addresses screen pixels: its X and Y give the screen position of its
// first pixel and its zoom must be 0. Nothing is drawn while vp has
// FlagRenderingInhibited set or when r misses the viewport.
func (m *Manager) Render(dst *paint.Target, vp *Viewport, r geom.ScreenRect) {
	if vp.Flags.Has(paint.FlagRenderingInhibited) {
		return
	}
	r = r.Intersect(vp.ScreenRect()).Intersect(dst.ViewRect())
	if r.Empty() {
		return
	}

	z := vp.Zoom
	tl := r.Min.Sub(vp.Pos)
	br := r.Max.Sub(vp.Pos)
	view := geom.ScreenRect{
		Min: geom.ScreenXY{X: z.Apply(tl.X), Y: z.Apply(tl.Y)}.Add(vp.ViewPos),
		Max: geom.ScreenXY{X: z.Apply(br.X), Y: z.Apply(br.Y)}.Add(vp.ViewPos),
	}
	m.paint(dst, vp, view)
}

// paint runs the column-parallel pass over the view-space rectangle view.
//
// The rectangle is aligned to the zoom grid and split into columns. Every
// column is generated and arranged before any column is drawn. Drawing is
// parallel only when the screen allows concurrent drawing.
func (m *Manager) paint(dst *paint.Target, vp *Viewport, view geom.ScreenRect) {
	multi := m.cfg.MultiThreading()
	gloom := m.gloom()
	pool := m.syncPool(multi)

	mask := vp.Zoom.Mask()
	left, top := view.Min.X&mask, view.Min.Y&mask
	width, height := view.Width()&mask, view.Height()&mask

	x := vp.Zoom.ApplyInversed(left-(vp.ViewPos.X&mask)) + vp.Pos.X
	y := vp.Zoom.ApplyInversed(top-(vp.ViewPos.Y&mask)) + vp.Pos.Y

	base := paint.Target{
		Pix:     dst.Pix,
		Offset:  dst.Offset + int(x-dst.X) + int(y-dst.Y)*dst.Stride,
		Stride:  dst.Stride,
		X:       left,
		Y:       top,
		Width:   width,
		Height:  height,
		Zoom:    vp.Zoom,
		Palette: dst.Palette,
	}

	cols := parallel.Columns(base.X, base.Width)
	sessions := make([]*paint.Session, len(cols))
	for i, c := range cols {
		s := m.sessions.Get(base.Column(c), vp.Flags, vp.Rotation, m.store)
		s.Locale = m.locale
		sessions[i] = s
	}
	defer func() {
		for _, s := range sessions {
			m.sessions.Put(s)
		}
	}()

	fill := parallel.NewBatch(pool)
	for _, s := range sessions {
		fill.Add(func() {
			m.scene.Generate(s)
			paint.Arrange(s)
		})
	}
	fill.Join()

	var drawPool *parallel.WorkerPool
	if multi && m.screen.ParallelDrawing() {
		drawPool = pool
	}
	draw := parallel.NewBatch(drawPool)
	for _, s := range sessions {
		draw.Add(func() {
			paint.DrawColumn(s, gloom)
		})
	}
	draw.Join()

	Logger().Debug("isoview: painted",
		"view", geom.RectWH(left, top, width, height), "columns", len(cols), "parallel", pool != nil)
}

// gloom returns the weather filter to apply this pass, or nil.
func (m *Manager) gloom() sprite.PaletteMap {
	if m.climate == nil || !m.cfg.WeatherGloom() || m.game.TrackDesignSaveMode() {
		return nil
	}
	pm, ok := m.climate.WeatherGloom()
	if !ok {
		return nil
	}
	return pm
}

// syncPool creates the worker pool on first use with multithreading on and
// closes it once multithreading is turned off. It returns nil when painting
// runs inline.
func (m *Manager) syncPool(multi bool) *parallel.WorkerPool {
	m.poolMu.Lock()
	defer m.poolMu.Unlock()

	if !multi {
		if m.pool != nil {
			m.pool.Close()
			m.pool = nil
			Logger().Debug("isoview: worker pool stopped")
		}
		return nil
	}
	if m.pool == nil {
		m.pool = parallel.NewWorkerPool(m.workers)
		Logger().Debug("isoview: worker pool started", "workers", m.pool.Workers())
	}
	return m.pool
}
