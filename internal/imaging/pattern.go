package imaging

// Color is one RGB triple.
type Color struct {
	R, G, B byte
}

// Solid fills a frame buffer with one color.
func Solid(width, height int, c Color) []byte {
	buf := make([]byte, width*height*3)
	for i := 0; i < len(buf); i += 3 {
		buf[i] = c.R
		buf[i+1] = c.G
		buf[i+2] = c.B
	}
	return buf
}

// Gradient blends between two colors across the frame, horizontally or
// vertically.
func Gradient(width, height int, from, to Color, horizontal bool) []byte {
	buf := make([]byte, width*height*3)
	span := width
	if !horizontal {
		span = height
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pos := x
			if !horizontal {
				pos = y
			}
			t := 0.0
			if span > 1 {
				t = float64(pos) / float64(span-1)
			}
			i := (y*width + x) * 3
			buf[i] = lerp(from.R, to.R, t)
			buf[i+1] = lerp(from.G, to.G, t)
			buf[i+2] = lerp(from.B, to.B, t)
		}
	}
	return buf
}

// barColors is the standard 8-bar test pattern, brightest to darkest.
var barColors = [8]Color{
	{255, 255, 255},
	{255, 255, 0},
	{0, 255, 255},
	{0, 255, 0},
	{255, 0, 255},
	{255, 0, 0},
	{0, 0, 255},
	{0, 0, 0},
}

// TestBars renders vertical color bars; the last bar absorbs any width
// remainder.
func TestBars(width, height int) []byte {
	buf := make([]byte, width*height*3)
	barWidth := width / len(barColors)
	if barWidth == 0 {
		barWidth = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bar := x / barWidth
			if bar >= len(barColors) {
				bar = len(barColors) - 1
			}
			c := barColors[bar]
			i := (y*width + x) * 3
			buf[i] = c.R
			buf[i+1] = c.G
			buf[i+2] = c.B
		}
	}
	return buf
}

func lerp(a, b byte, t float64) byte {
	return byte(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
