package sprite

import "encoding/binary"

// maxRun is the longest run a single header byte can describe.
const maxRun = 0x7F

// EncodeRLE compresses w×h indexed pixels.
//
// The result starts with one little-endian uint16 per row giving the offset
// of that row's runs. Each run is a count byte (bit 7 set on the row's last
// run), a start column byte and count pixel bytes. Rows without opaque
// pixels hold a single empty terminating run.
func EncodeRLE(w, h int, pix []uint8) []byte {
	if w > 0xFF {
		panic("sprite: RLE rows are limited to 255 columns")
	}
	out := make([]byte, 2*h, 2*h+len(pix)+4*h)
	for y := range h {
		binary.LittleEndian.PutUint16(out[2*y:], uint16(len(out)))
		row := pix[y*w : (y+1)*w]

		last := -1
		for x := 0; x < w; {
			if row[x] == 0 {
				x++
				continue
			}
			start := x
			for x < w && row[x] != 0 && x-start < maxRun {
				x++
			}
			last = len(out)
			out = append(out, byte(x-start), byte(start))
			out = append(out, row[start:x]...)
		}
		if last < 0 {
			out = append(out, 0x80, 0)
			continue
		}
		out[last] |= 0x80
	}
	return out
}

// rlePixelPresent reports whether column x of row y lies inside a drawn run.
func rlePixelPresent(data []byte, x, y int) bool {
	p := int(binary.LittleEndian.Uint16(data[2*y:]))
	for {
		count := int(data[p])
		start := int(data[p+1])
		n := count & 0x7F
		p += 2 + n

		if start <= x && x < start+n {
			return true
		}
		if count&0x80 != 0 {
			return false
		}
	}
}
