package render

import "math"

// fillGlowRGBA writes a white radial falloff into a size*size premultiplied
// RGBA buffer. Alpha is (1-d/r)^2, zero at and beyond the inscribed circle.
func fillGlowRGBA(buf []byte, size int) {
	if size <= 0 {
		return
	}
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			t := 1 - math.Hypot(dx, dy)/r
			if t < 0 {
				t = 0
			}
			a := uint8(t*t*255 + 0.5)
			base := (y*size + x) * 4
			buf[base+0] = a
			buf[base+1] = a
			buf[base+2] = a
			buf[base+3] = a
		}
	}
}

// GlowPixels returns the pixel buffer of a glow sprite of the given edge.
func GlowPixels(size int) []byte {
	if size <= 0 {
		return nil
	}
	buf := make([]byte, 4*size*size)
	fillGlowRGBA(buf, size)
	return buf
}
