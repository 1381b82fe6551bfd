package viz

import (
	"math"
	"strings"

	"github.com/san-kum/mdsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

const brailleBlank = 0x2800

// Braille cell dot bits, indexed [row][col] within the 2x4 cell.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid of Width x Height characters, that is
// 2*Width x 4*Height dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return 2 * c.Width, 4 * c.Height }

// Set lights the dot at (x, y); out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Frame outlines the canvas.
func (c *Canvas) Frame() {
	w, h := c.Dots()
	c.DrawLine(0, 0, w-1, 0)
	c.DrawLine(w-1, 0, w-1, h-1)
	c.DrawLine(w-1, h-1, 0, h-1)
	c.DrawLine(0, h-1, 0, 0)
}

// project maps a point of the periodic box to a dot, y pointing up.
func (c *Canvas) project(p r2.Vec, box dynamo.Box) (int, int) {
	w, h := c.Dots()
	x := int(p.X / box.Lx * float64(w))
	y := int((1 - p.Y/box.Ly) * float64(h))
	return clampInt(x, 0, w-1), clampInt(y, 0, h-1)
}

// Plot lights the dot under p.
func (c *Canvas) Plot(p r2.Vec, box dynamo.Box) {
	c.Set(c.project(p, box))
}

// Disc fills a disc of world radius r around p. The disc wraps across the
// box edges the same way the particles interact.
func (c *Canvas) Disc(p r2.Vec, r float64, box dynamo.Box) {
	w, h := c.Dots()
	cx, cy := c.project(p, box)
	rx := r / box.Lx * float64(w)
	ry := r / box.Ly * float64(h)
	ix, iy := int(math.Ceil(rx)), int(math.Ceil(ry))

	for dy := -iy; dy <= iy; dy++ {
		for dx := -ix; dx <= ix; dx++ {
			u, v := float64(dx)/math.Max(rx, 0.5), float64(dy)/math.Max(ry, 0.5)
			if u*u+v*v > 1 {
				continue
			}
			c.Set(modInt(cx+dx, w), modInt(cy+dy, h))
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampInt(x, lo, hi int) int {
	return max(lo, min(x, hi))
}

func modInt(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}
