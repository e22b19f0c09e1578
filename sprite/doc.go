// Package sprite describes indexed-colour images the way the paint pipeline
// consumes them: a small header per image (size, draw offset, format flags)
// over either run-length encoded or plain bitmap pixel data.
//
// Pixel value 0 is transparent in both formats. Colour remapping replaces a
// reserved range of palette indices with one of several colour ramps.
package sprite
