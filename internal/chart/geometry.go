package chart

import (
	"slices"
	"strconv"
	"strings"
)

// defaultAlpha is the curve tension used when a builder does not set one.
const defaultAlpha = 1.0

// geometry is the coordinate bookkeeping shared by all builders. Builders
// fill params and call finish once with their coordinates; nothing changes
// afterwards.
type geometry struct {
	dims        Dimensions
	chartHeight float64
	params      CurveParams
	alpha       float64
	coords      []DataCoord
	curve       string
}

func newGeometry(dims Dimensions) geometry {
	return geometry{
		dims:        dims,
		chartHeight: dims.Height,
		alpha:       defaultAlpha,
	}
}

func (g *geometry) finish(coords []DataCoord) {
	g.coords = coords
	g.curve = GenerateCurve(coords, g.alpha)
}

// Coords returns one coordinate per input sample, in input order.
func (g *geometry) Coords() []DataCoord {
	return slices.Clone(g.coords)
}

// Params returns the layout band of the curve.
func (g *geometry) Params() CurveParams {
	return g.params
}

// Dimensions returns the drawing area the builder was laid out for.
func (g *geometry) Dimensions() Dimensions {
	return g.dims
}

// DrawCurve returns the smoothed curve. With withFillRegion set it also
// returns a closed path that drops from the first and last coordinate to the
// bottom edge of the chart.
func (g *geometry) DrawCurve(withFillRegion bool) Curve {
	c := Curve{MainCurve: g.curve}
	if withFillRegion {
		c.BackPathCurve = FillRegion(g.coords, g.alpha, g.chartHeight)
	}
	return c
}

// GenerateCurve returns a smooth path through coords. Each segment is a cubic
// Bezier whose control points are offset from its end points by one sixth of
// the vector between their neighbours, scaled by alpha. The last point is
// reached with a smooth S command so the curve never ends on a corner.
//
// coords must hold at least two points. Two points produce a single segment;
// fewer produce an empty path or a bare move.
func GenerateCurve(coords []DataCoord, alpha float64) string {
	if len(coords) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M")
	b.WriteString(num(coords[0].X))
	b.WriteString(" ")
	b.WriteString(num(coords[0].Y))
	writeSegments(&b, coords, alpha)
	return b.String()
}

// FillRegion returns the closed area between the curve through coords and
// the horizontal line at bottom.
func FillRegion(coords []DataCoord, alpha, bottom float64) string {
	if len(coords) == 0 {
		return ""
	}
	first, last := coords[0], coords[len(coords)-1]

	var b strings.Builder
	b.WriteString("M " + num(first.X) + " " + num(bottom))
	b.WriteString(" L " + num(first.X) + " " + num(first.Y))
	writeSegments(&b, coords, alpha)
	b.WriteString(" L " + num(last.X) + " " + num(bottom))
	b.WriteString(" L " + num(first.X) + " " + num(bottom))
	b.WriteString(" Z")
	return b.String()
}

func writeSegments(b *strings.Builder, coords []DataCoord, alpha float64) {
	if alpha == 0 {
		alpha = defaultAlpha
	}
	n := len(coords)
	switch {
	case n < 2:
		return
	case n == 2:
		writeCubic(b, coords[0], coords[0], coords[1], coords[1], alpha)
		return
	}

	for i := 0; i < n-2; i++ {
		p0 := coords[max(i-1, 0)]
		writeCubic(b, p0, coords[i], coords[i+1], coords[i+2], alpha)
	}
	penultimate, last := coords[n-2], coords[n-1]
	b.WriteString("S " + num(penultimate.X) + " " + num(penultimate.Y) + " " + num(last.X) + " " + num(last.Y))
}

// writeCubic appends the segment from p1 to p2 with p0 and p3 as neighbours.
func writeCubic(b *strings.Builder, p0, p1, p2, p3 DataCoord, alpha float64) {
	cp1x := p1.X + (p2.X-p0.X)/6*alpha
	cp1y := p1.Y + (p2.Y-p0.Y)/6*alpha
	cp2x := p2.X - (p3.X-p1.X)/6*alpha
	cp2y := p2.Y - (p3.Y-p1.Y)/6*alpha
	b.WriteString("C")
	b.WriteString(strings.Join([]string{num(cp1x), num(cp1y), num(cp2x), num(cp2y), num(p2.X), num(p2.Y)}, ","))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// extentY returns the smallest and largest y among coords.
func extentY(coords []DataCoord) (top, bottom float64) {
	if len(coords) == 0 {
		return 0, 0
	}
	top, bottom = coords[0].Y, coords[0].Y
	for _, c := range coords[1:] {
		top = min(top, c.Y)
		bottom = max(bottom, c.Y)
	}
	return top, bottom
}
