package chart

import (
	"fmt"
	"math"
	"slices"

	"github.com/i474232898/weather-charts/internal/timefmt"
	"github.com/i474232898/weather-charts/internal/weather"
)

// DefaultPrecipitationDimensions is used when the container size is unknown.
var DefaultPrecipitationDimensions = Dimensions{Width: 521, Height: 149}

// DefaultTimelineInterval is the number of samples between timeline labels.
const DefaultTimelineInterval = 15

const (
	precipAlpha       = 0.6
	precipAxisSteps   = 6
	precipMinScale    = 10
	precipHeightShare = 0.95
	precipBandShare   = 0.75
	precipWidthShare  = 0.87
	precipLeftShare   = 0.075
	precipBottomInset = 5
)

// Precipitation is the geometry of the minute-resolution precipitation chart.
type Precipitation struct {
	geometry

	data             []weather.PrecipitationSample
	interval         int
	maxPrecipitation float64
	step             float64
	maxScale         float64
	timeline         []TimelineMark
}

// NewPrecipitation lays out a minute series. data must hold at least two
// samples. A non-positive interval means DefaultTimelineInterval.
func NewPrecipitation(data []weather.PrecipitationSample, dims Dimensions, clock *timefmt.Formatter, interval int) *Precipitation {
	if interval <= 0 {
		interval = DefaultTimelineInterval
	}
	p := &Precipitation{
		geometry: newGeometry(dims.or(DefaultPrecipitationDimensions)),
		data:     data,
		interval: interval,
	}
	p.alpha = precipAlpha
	p.chartHeight = p.dims.Height * precipHeightShare
	p.params.Height = p.chartHeight * precipBandShare
	p.params.Width = p.dims.Width * precipWidthShare
	p.params.Bottom = p.chartHeight - precipBottomInset
	p.params.Top = p.params.Bottom - p.params.Height
	p.params.Left = p.dims.Width * precipLeftShare

	p.maxPrecipitation = findMaxPrecipitation(data)
	p.step = math.Ceil(p.maxPrecipitation / (precipAxisSteps - 1))
	p.maxScale = math.Ceil(p.maxPrecipitation/p.step) * p.step

	coords, timeline := p.calcCoords(clock)
	p.timeline = timeline
	p.finish(coords)

	return p
}

// findMaxPrecipitation floors the series maximum to precipMinScale so a dry
// hour still gets a readable axis.
func findMaxPrecipitation(data []weather.PrecipitationSample) float64 {
	var m float64
	for _, s := range data {
		m = max(m, s.Precipitation)
	}
	return max(m, precipMinScale)
}

// calcCoords spaces samples evenly and maps amounts against the rounded
// scale ceiling, which leaves headroom above the tallest point. Timeline
// labels go on every interval-th sample and on the last one.
func (p *Precipitation) calcCoords(clock *timefmt.Formatter) ([]DataCoord, []TimelineMark) {
	totalSteps := len(p.data) - 1
	pixPerStepX := p.params.Width / float64(max(totalSteps, 1))
	pixPerStepY := p.params.Height / p.maxScale

	coords := make([]DataCoord, 0, len(p.data))
	var timeline []TimelineMark
	for i, s := range p.data {
		x := pixPerStepX*float64(i) + p.params.Left
		y := p.params.Bottom - s.Precipitation*pixPerStepY
		coords = append(coords, DataCoord{X: x, Y: y, Value: floatPtr(s.Precipitation)})

		if i%p.interval == 0 || i == totalSteps {
			description := "now"
			if i > 0 {
				description = fmt.Sprintf("%d min", i)
			}
			timeline = append(timeline, TimelineMark{
				Time:        clock.Clock(s.Timestamp),
				Description: description,
				X:           x,
				Y:           timelineY,
				Y2:          p.chartHeight,
			})
		}
	}
	return coords, timeline
}

// TimeLine returns the sparse timeline labels.
func (p *Precipitation) TimeLine() []TimelineMark {
	return slices.Clone(p.timeline)
}

// Axis returns the horizontal value lines from zero up to the scale ceiling.
// Each line spans to the last timeline label.
func (p *Precipitation) Axis() []AxisMark {
	pixPerUnit := p.params.Height / p.maxScale
	var length float64
	if len(p.timeline) > 0 {
		length = p.timeline[len(p.timeline)-1].X
	}

	marks := make([]AxisMark, 0, precipAxisSteps)
	for i := 0; i < precipAxisSteps; i++ {
		value := float64(i) * p.step
		marks = append(marks, AxisMark{
			Y:      p.chartHeight - pixPerUnit*value - precipBottomInset,
			Value:  value,
			Length: length,
		})
	}
	return marks
}

// MaxPrecipitation is the series maximum, floored to the minimum scale.
func (p *Precipitation) MaxPrecipitation() float64 {
	return p.maxPrecipitation
}

// Step is the value distance between two axis lines.
func (p *Precipitation) Step() float64 {
	return p.step
}

// MaxScale is the top of the value axis, a multiple of Step.
func (p *Precipitation) MaxScale() float64 {
	return p.maxScale
}

// ChartHeight is the height of the drawable area, the bottom of the fill
// region.
func (p *Precipitation) ChartHeight() float64 {
	return p.chartHeight
}
