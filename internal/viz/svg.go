package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// SnapshotSVG draws the particles of one configuration as discs of
// diameter RMin in a box scaled by scale pixels per unit. Discs crossing an
// edge are repeated on the opposite side and clipped to the box.
func SnapshotSVG(positions []r2.Vec, box dynamo.Box, scale float64, t Theme) string {
	width := box.Lx * scale
	height := box.Ly * scale
	r := physics.RMin / 2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.2f %.2f">
<clipPath id="box"><rect width="%.2f" height="%.2f"/></clipPath>
<rect width="100%%" height="100%%" fill="#0a0a0a" stroke="%s"/>
<g fill="%s" fill-opacity="0.85" clip-path="url(#box)">
`, width, height, width, height, width, height, string(t.Muted), string(t.Primary))

	for _, p := range positions {
		for _, img := range images(p, r, box) {
			// SVG y grows downwards.
			fmt.Fprintf(&sb, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\"/>\n",
				img.X*scale, (box.Ly-img.Y)*scale, r*scale)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// images returns p and each periodic copy whose disc of radius r reaches
// into the box.
func images(p r2.Vec, r float64, box dynamo.Box) []r2.Vec {
	xs := []float64{p.X}
	if p.X < r {
		xs = append(xs, p.X+box.Lx)
	} else if p.X > box.Lx-r {
		xs = append(xs, p.X-box.Lx)
	}
	ys := []float64{p.Y}
	if p.Y < r {
		ys = append(ys, p.Y+box.Ly)
	} else if p.Y > box.Ly-r {
		ys = append(ys, p.Y-box.Ly)
	}

	out := make([]r2.Vec, 0, len(xs)*len(ys))
	for _, x := range xs {
		for _, y := range ys {
			out = append(out, r2.Vec{X: x, Y: y})
		}
	}
	return out
}
