// Package paint holds the per-pass scene graph built while drawing a
// viewport: draw targets, paint sessions and the structs they collect, plus
// the rasterizer that turns an arranged session into palette-indexed pixels.
//
// A Session is filled by an external scene generator, ordered with Arrange
// and then drawn with DrawColumn. Sessions are pooled; nothing in a session
// outlives the pass that produced it.
package paint
