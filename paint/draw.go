package paint

import (
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/sprite"
)

// DrawColumn rasterizes an arranged session into its target.
//
// The column is cleared first when the view exposes the void under the
// world and the background is not transparent. gloom, when non-nil, tints
// the finished column unless entities are hidden or path issues are being
// highlighted. Money labels are drawn last.
func DrawColumn(s *Session, gloom sprite.PaletteMap) {
	t := &s.Target
	if s.ViewFlags.Has(needsClear) && !s.ViewFlags.Has(FlagTransparentBackground) {
		colour := sprite.ColourAquamarine
		if s.ViewFlags.Has(FlagHideEntities) {
			colour = sprite.ColourBlack
		}
		t.Clear(colour.Mid())
	}

	DrawStructs(s)

	if gloom != nil && !s.ViewFlags.Has(FlagHideEntities|FlagHighlightPathIssues) {
		t.FilterRect(t.ViewRect(), gloom)
	}

	if s.Money != nil {
		DrawMoney(t, s.Money, s.Locale)
	}
}

// DrawStructs draws every struct in quadrant order, each followed by its
// children, with attached images drawn right after their owner.
func DrawStructs(s *Session) {
	for ps := s.Head; ps != nil; ps = ps.NextQuadrantEntry {
		s.drawStruct(ps)
		for child := ps.Children; child != nil; child = child.Children {
			s.drawStruct(child)
		}
	}
}

func (s *Session) drawStruct(ps *PaintStruct) {
	s.drawImage(ps.Image, ps.ScreenPos)
	for a := ps.Attached; a != nil; a = a.Next {
		s.drawImage(a.Image, ps.ScreenPos.Add(a.RelativePos))
	}
}

// drawImage blits one image with its top-left anchor at pos (view units),
// sampling one source pixel per screen pixel.
func (s *Session) drawImage(id sprite.ImageID, pos geom.ScreenXY) {
	if s.Store == nil {
		return
	}
	el := s.Store.Element(id.Index())
	if el == nil || el.Has(sprite.FlagPalette) || el.Has(sprite.FlagFormatUnsupported) {
		return
	}
	t := &s.Target
	if t.Zoom > 0 && el.Has(sprite.FlagNoZoomDraw) {
		return
	}

	var remap, filter sprite.PaletteMap
	if colour, ok := id.RemapColour(); ok {
		remap, _ = s.Store.PaletteMap(colour)
	} else if id.IsTransparent() {
		var ok bool
		if filter, ok = s.Store.Filter(id.Transparency()); !ok {
			return
		}
	}

	left := pos.X + int32(el.XOffset)
	top := pos.Y + int32(el.YOffset)
	clip := geom.RectWH(left, top, int32(el.Width), int32(el.Height)).Intersect(t.ViewRect())
	if clip.Empty() {
		return
	}

	if cap(s.rowBuf) < int(el.Width) {
		s.rowBuf = make([]uint8, el.Width)
	}
	sw, sh := t.ScreenWidth(), t.ScreenHeight()
	sx0 := max(int(t.Zoom.ApplyInversed(clip.Min.X-t.X)), 0)
	sy0 := max(int(t.Zoom.ApplyInversed(clip.Min.Y-t.Y)), 0)

	for sy := sy0; sy < sh; sy++ {
		vy := t.Y + t.Zoom.Apply(int32(sy))
		if vy < clip.Min.Y {
			continue
		}
		if vy >= clip.Max.Y {
			break
		}
		src := el.DecodeRow(int(vy-top), s.rowBuf)
		dst := t.Row(sy)
		for sx := sx0; sx < sw; sx++ {
			vx := t.X + t.Zoom.Apply(int32(sx))
			if vx < clip.Min.X {
				continue
			}
			if vx >= clip.Max.X {
				break
			}
			index := src[vx-left]
			switch {
			case index == 0:
				continue
			case filter != nil:
				dst[sx] = filter[dst[sx]]
				continue
			case remap != nil:
				index = remap[index]
			}
			if index != 0 {
				dst[sx] = index
			}
		}
	}
}
