// Package geom provides the integer value types and projections used by
// isoview: world coordinates, screen coordinates, zoom levels and the
// isometric world↔screen transform.
//
// All arithmetic is integer and shift based. Zoom scaling never uses
// division so that repeated zoom/unzoom cycles land on the same pixels.
package geom
