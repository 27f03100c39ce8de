package chart

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestGenerateCurve(t *testing.T) {
	tests := []struct {
		name   string
		coords []DataCoord
		alpha  float64
		want   string
	}{
		{"empty", nil, 1, ""},
		{"single point", []DataCoord{{X: 3, Y: 4}}, 1, "M3 4"},
		{"two points", []DataCoord{{X: 0, Y: 0}, {X: 6, Y: 6}}, 1, "M0 0C1,1,5,5,6,6"},
		{"two points with tension", []DataCoord{{X: 0, Y: 0}, {X: 12, Y: 12}}, 0.5, "M0 0C1,1,11,11,12,12"},
		{"zero alpha means default", []DataCoord{{X: 0, Y: 0}, {X: 6, Y: 6}}, 0, "M0 0C1,1,5,5,6,6"},
		{"three points", []DataCoord{{X: 0, Y: 0}, {X: 6, Y: 12}, {X: 12, Y: 0}}, 1, "M0 0C1,2,4,12,6,12S 6 12 12 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateCurve(tt.coords, tt.alpha); got != tt.want {
				t.Errorf("GenerateCurve = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestGenerateCurvePassesThroughCoords checks that every cubic segment ends
// on an input coordinate and the closing command ends on the last one.
func TestGenerateCurvePassesThroughCoords(t *testing.T) {
	var coords []DataCoord
	for i := 0; i < 12; i++ {
		coords = append(coords, DataCoord{X: float64(i * 25), Y: 100 + 40*math.Sin(float64(i))})
	}
	path := GenerateCurve(coords, 1)

	if !strings.HasPrefix(path, "M"+num(coords[0].X)+" "+num(coords[0].Y)) {
		t.Fatalf("path does not start at the first coordinate: %q", path)
	}

	body, closing, ok := strings.Cut(path, "S ")
	if !ok {
		t.Fatalf("path has no closing S command: %q", path)
	}
	segments := strings.Split(body, "C")[1:]
	if len(segments) != len(coords)-2 {
		t.Fatalf("expected %d cubic segments, got %d", len(coords)-2, len(segments))
	}
	for i, seg := range segments {
		fields := strings.Split(seg, ",")
		if len(fields) != 6 {
			t.Fatalf("segment %d has %d numbers", i, len(fields))
		}
		x, y := parse(t, fields[4]), parse(t, fields[5])
		if want := coords[i+1]; x != want.X || y != want.Y {
			t.Errorf("segment %d ends at (%v,%v), want (%v,%v)", i, x, y, want.X, want.Y)
		}
	}

	end := strings.Fields(closing)
	last := coords[len(coords)-1]
	if parse(t, end[2]) != last.X || parse(t, end[3]) != last.Y {
		t.Errorf("closing command ends at %v, want (%v,%v)", end[2:], last.X, last.Y)
	}
}

func TestFillRegion(t *testing.T) {
	coords := []DataCoord{{X: 0, Y: 0}, {X: 6, Y: 6}}
	want := "M 0 10 L 0 0C1,1,5,5,6,6 L 6 10 L 0 10 Z"
	if got := FillRegion(coords, 1, 10); got != want {
		t.Errorf("FillRegion = %q, want %q", got, want)
	}
	if got := FillRegion(nil, 1, 10); got != "" {
		t.Errorf("FillRegion(nil) = %q, want empty", got)
	}
}

func TestDrawCurve(t *testing.T) {
	g := newGeometry(Dimensions{Width: 100, Height: 50})
	g.finish([]DataCoord{{X: 0, Y: 10}, {X: 6, Y: 16}, {X: 12, Y: 10}})

	plain := g.DrawCurve(false)
	if plain.MainCurve == "" || plain.BackPathCurve != "" {
		t.Fatalf("unexpected curve without fill: %+v", plain)
	}

	filled := g.DrawCurve(true)
	if filled.MainCurve != plain.MainCurve {
		t.Errorf("main curve changed when fill was requested")
	}
	if !strings.HasPrefix(filled.BackPathCurve, "M 0 50 L 0 10") || !strings.HasSuffix(filled.BackPathCurve, "L 12 50 L 0 50 Z") {
		t.Errorf("unexpected fill region %q", filled.BackPathCurve)
	}
}

func TestCoordsReturnsCopy(t *testing.T) {
	g := newGeometry(Dimensions{Width: 10, Height: 10})
	g.finish([]DataCoord{{X: 1, Y: 1}, {X: 2, Y: 2}})

	c := g.Coords()
	c[0].X = 99
	if g.Coords()[0].X != 1 {
		t.Fatal("mutating the returned slice changed the builder")
	}
}

func parse(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func assertIncreasingX(t *testing.T, coords []DataCoord) {
	t.Helper()
	for i := 1; i < len(coords); i++ {
		if coords[i].X <= coords[i-1].X {
			t.Fatalf("x not strictly increasing at %d: %v <= %v", i, coords[i].X, coords[i-1].X)
		}
	}
}

func assertFinite(t *testing.T, coords []DataCoord) {
	t.Helper()
	for i, c := range coords {
		if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) {
			t.Fatalf("coordinate %d is not finite: %+v", i, c)
		}
	}
}
