// Package isoview is the viewport core of an isometric 2.5D world renderer.
//
// # Overview
//
// A Viewport is a rectangle of the screen showing the world at a given zoom
// level and one of four rotations. The Manager owns every live viewport and
// provides the operations the surrounding application drives each frame:
//
//   - Create and Remove register viewports, bounded by a fixed capacity.
//   - UpdatePosition runs the focus tracker: following entities, clamping
//     to the map and easing towards a scroll target.
//   - Move shifts a viewport, blitting reusable pixels and repainting only
//     what was exposed.
//   - InvalidateTile, InvalidateBox and InvalidateScreenRect turn world or
//     view damage into screen dirty rectangles.
//   - Render paints a screen region through the column-parallel scheduler.
//   - Pick and the ScreenGetMapXY family map screen pixels back to the
//     world.
//
// # Collaborators
//
// The core owns no windows, pixels or simulation state. It consumes them
// through small interfaces: WindowManager, Screen, SceneGenerator, Climate
// and GameFlags, plus world.World and sprite.Store. internal/sandbox has a
// complete in-memory implementation.
//
// # Coordinates
//
// World positions are geom.CoordsXYZ in world units (32 per tile). View
// positions are the isometric projection of the world at zoom 0. Screen
// positions are device pixels; a viewport maps one screen pixel to
// Zoom.Apply(1) view units.
//
// # Concurrency
//
// Manager methods are meant to be called from a single UI goroutine. Render
// fans work out to an internal worker pool when multithreading is enabled
// and joins before returning. Config may be changed from any goroutine; each
// Render call reads it once.
package isoview
