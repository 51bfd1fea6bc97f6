package monopet

import (
	"math"
	"sort"
)

// Pattern decides which pixels inside a filled span are lit.
type Pattern func(x, y int) bool

// Fill pattern presets.
var (
	PatternSolid        Pattern = func(x, y int) bool { return true }
	PatternCheckerboard Pattern = func(x, y int) bool { return (x+y)&1 == 0 }
	PatternHorizontal   Pattern = func(x, y int) bool { return y&1 == 0 }
	PatternVertical     Pattern = func(x, y int) bool { return x&1 == 0 }
	PatternDiagonal     Pattern = func(x, y int) bool { return (x+y)&3 == 0 }
	PatternDots         Pattern = func(x, y int) bool { return x&1 == 0 && y&1 == 0 }
)

var patternsByName = map[string]Pattern{
	"solid":        PatternSolid,
	"checkerboard": PatternCheckerboard,
	"horizontal":   PatternHorizontal,
	"vertical":     PatternVertical,
	"diagonal":     PatternDiagonal,
	"dots":         PatternDots,
}

// PatternByName returns the preset with the given name.
func PatternByName(name string) (Pattern, bool) {
	p, ok := patternsByName[name]
	return p, ok
}

// DrawPolygon draws the closed outline through points.
func (r *Renderer) DrawPolygon(points []Point, c Color) {
	n := len(points)
	if n == 0 {
		return
	}
	r.stats.polygons++
	if n == 1 {
		r.target.SetPixel(points[0].X, points[0].Y, c)
		return
	}
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		drawLine(r.target, a.X, a.Y, b.X, b.Y, c)
	}
}

// polyEdge is a non-horizontal polygon edge with y0 < y1.
type polyEdge struct {
	x0, y0, x1, y1 float64
}

// FillPolygon lights the pixels inside the polygon for which pattern returns
// true, using the even-odd rule. A nil pattern fills solid. Each scanline y
// crosses the edges spanning [y0, y1); spans run between successive pairs of
// sorted crossings with both ends included.
func (r *Renderer) FillPolygon(points []Point, pattern Pattern) {
	if len(points) < 3 {
		return
	}
	if pattern == nil {
		pattern = PatternSolid
	}
	r.stats.polygons++

	edges := make([]polyEdge, 0, len(points))
	minY, maxY := points[0].Y, points[0].Y
	for i, a := range points {
		b := points[(i+1)%len(points)]
		minY = min(minY, a.Y)
		maxY = max(maxY, a.Y)
		if a.Y == b.Y {
			continue
		}
		if a.Y > b.Y {
			a, b = b, a
		}
		edges = append(edges, polyEdge{float64(a.X), float64(a.Y), float64(b.X), float64(b.Y)})
	}

	minY = max(minY, 0)
	maxY = min(maxY, r.target.Height()-1)
	xs := make([]float64, 0, len(edges))
	for y := minY; y <= maxY; y++ {
		fy := float64(y)
		xs = xs[:0]
		for _, e := range edges {
			if fy < e.y0 || fy >= e.y1 {
				continue
			}
			xs = append(xs, e.x0+(fy-e.y0)*(e.x1-e.x0)/(e.y1-e.y0))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i]))
			x1 := int(math.Floor(xs[i+1]))
			for x := x0; x <= x1; x++ {
				if pattern(x, y) {
					r.target.SetPixel(x, y, On)
				}
			}
		}
	}
}

// drawLine draws a Bresenham line from (x0, y0) to (x1, y1), both ends
// included.
func drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
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
