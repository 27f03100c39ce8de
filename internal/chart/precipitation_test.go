package chart

import (
	"strings"
	"testing"

	"github.com/i474232898/weather-charts/internal/weather"
)

func minuteSeries(n int, amount func(i int) float64) []weather.PrecipitationSample {
	out := make([]weather.PrecipitationSample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, weather.PrecipitationSample{
			Timestamp:     midnightJun12 + int64(i)*60,
			Precipitation: amount(i),
		})
	}
	return out
}

func TestPrecipitationScale(t *testing.T) {
	tests := []struct {
		name                 string
		peak                 float64
		wantMax, wantStep    float64
		wantScale, wantTopAx float64
	}{
		{"light rain floors to minimum", 3, 10, 2, 10, 10},
		{"dry hour", 0, 10, 2, 10, 10},
		{"heavy rain", 23, 23, 5, 25, 25},
		{"exact multiple", 30, 30, 6, 30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := minuteSeries(61, func(i int) float64 {
				if i == 20 {
					return tt.peak
				}
				return 0
			})
			p := NewPrecipitation(data, DefaultPrecipitationDimensions, utcClock(t), 0)

			if p.MaxPrecipitation() != tt.wantMax || p.Step() != tt.wantStep || p.MaxScale() != tt.wantScale {
				t.Fatalf("max/step/scale = %v/%v/%v, want %v/%v/%v",
					p.MaxPrecipitation(), p.Step(), p.MaxScale(), tt.wantMax, tt.wantStep, tt.wantScale)
			}

			axis := p.Axis()
			if len(axis) != 6 {
				t.Fatalf("expected 6 axis lines, got %d", len(axis))
			}
			if axis[0].Value != 0 || axis[5].Value != tt.wantTopAx {
				t.Errorf("axis spans %v..%v", axis[0].Value, axis[5].Value)
			}
			for i := 1; i < len(axis); i++ {
				if axis[i].Y >= axis[i-1].Y {
					t.Errorf("axis y not descending at %d", i)
				}
			}
		})
	}
}

func TestPrecipitationLayout(t *testing.T) {
	data := minuteSeries(61, func(i int) float64 { return float64(i%11) / 2 })
	p := NewPrecipitation(data, DefaultPrecipitationDimensions, utcClock(t), 0)

	coords := p.Coords()
	if len(coords) != 61 {
		t.Fatalf("expected 61 coords, got %d", len(coords))
	}
	assertIncreasingX(t, coords)
	assertFinite(t, coords)

	params := p.Params()
	if !near(coords[0].X, params.Left) || !near(coords[60].X, params.Left+params.Width) {
		t.Errorf("x spans %v..%v, want %v..%v", coords[0].X, coords[60].X, params.Left, params.Left+params.Width)
	}
	if coords[0].Y != params.Bottom {
		t.Errorf("zero precipitation should sit on the bottom, got %v", coords[0].Y)
	}
	for i, c := range coords {
		if c.Y < params.Top-1e-9 || c.Y > params.Bottom {
			t.Errorf("coord %d outside band: %v", i, c.Y)
		}
	}

	if !near(p.ChartHeight(), DefaultPrecipitationDimensions.Height*0.95) {
		t.Errorf("chart height = %v", p.ChartHeight())
	}
	fill := p.DrawCurve(true).BackPathCurve
	if !strings.HasPrefix(fill, "M ") || !strings.HasSuffix(fill, " Z") {
		t.Errorf("fill region is not a closed path: %q", fill)
	}
}

func TestPrecipitationPeakOnScaleCeiling(t *testing.T) {
	data := minuteSeries(10, func(i int) float64 {
		if i == 4 {
			return 25
		}
		return 1
	})
	p := NewPrecipitation(data, DefaultPrecipitationDimensions, utcClock(t), 0)
	if !near(p.Coords()[4].Y, p.Params().Top) {
		t.Errorf("peak equal to scale ceiling should reach band top: %v vs %v", p.Coords()[4].Y, p.Params().Top)
	}
}

func TestPrecipitationTimeLine(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		interval int
		want     []string
	}{
		{"full hour", 61, 0, []string{"now", "15 min", "30 min", "45 min", "60 min"}},
		{"partial hour", 50, 15, []string{"now", "15 min", "30 min", "45 min", "49 min"}},
		{"custom interval", 21, 10, []string{"now", "10 min", "20 min"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrecipitation(minuteSeries(tt.n, func(int) float64 { return 0 }), DefaultPrecipitationDimensions, utcClock(t), tt.interval)
			marks := p.TimeLine()
			if len(marks) != len(tt.want) {
				t.Fatalf("expected %d marks, got %d", len(tt.want), len(marks))
			}
			for i, m := range marks {
				if m.Description != tt.want[i] {
					t.Errorf("mark %d: %q, want %q", i, m.Description, tt.want[i])
				}
				if m.Y2 != p.ChartHeight() {
					t.Errorf("mark %d: y2 = %v", i, m.Y2)
				}
			}
			if marks[0].Time != "12:00 AM" || marks[1].Time != "12:"+strings.TrimSuffix(tt.want[1], " min")+" AM" {
				t.Errorf("unexpected clock labels %q, %q", marks[0].Time, marks[1].Time)
			}

			axis := p.Axis()
			if axis[0].Length != marks[len(marks)-1].X {
				t.Errorf("axis length %v should reach the last mark %v", axis[0].Length, marks[len(marks)-1].X)
			}
		})
	}
}
