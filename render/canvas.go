package render

// Canvas is a flat additive accumulation buffer in row-major order
// No depth sorting, splats commute
type Canvas struct {
	pix    []Color
	width  int
	height int
}

// NewCanvas creates a cleared canvas
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize adjusts dimensions, reallocates only if capacity is insufficient
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(c.pix) < size {
		c.pix = make([]Color, size)
	} else {
		c.pix = c.pix[:size]
	}
	c.width = width
	c.height = height
	c.Clear()
}

// Clear zeroes all cells using exponential copy
func (c *Canvas) Clear() {
	if len(c.pix) == 0 {
		return
	}
	c.pix[0] = Color{}
	for filled := 1; filled < len(c.pix); filled *= 2 {
		copy(c.pix[filled:], c.pix[:filled])
	}
}

// Size returns width and height
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Splat adds col to the cell at (x, y), out of bounds is ignored
func (c *Canvas) Splat(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := y*c.width + x
	c.pix[i] = c.pix[i].Add(col)
}

// Disc splats a filled circle centered at (cx, cy)
func (c *Canvas) Disc(cx, cy, radius float32, col Color) {
	if radius < 0.5 {
		c.Splat(int(cx), int(cy), col)
		return
	}
	r2 := radius * radius
	x0, x1 := int(cx-radius), int(cx+radius)
	y0, y1 := int(cy-radius), int(cy+radius)
	for y := y0; y <= y1; y++ {
		dy := float32(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float32(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.Splat(x, y, col)
			}
		}
	}
}

// At returns the accumulated value at (x, y)
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Color{}
	}
	return c.pix[y*c.width+x]
}
