package chart

import (
	"fmt"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-charts/internal/common"
	"github.com/i474232898/weather-charts/internal/timefmt"
	"github.com/i474232898/weather-charts/internal/units"
	"github.com/i474232898/weather-charts/internal/weather"
)

// DefaultHourlyDimensions is the drawing area of the hourly chart.
var DefaultHourlyDimensions = Dimensions{Width: 3000, Height: 300}

const (
	hourlyCurveLeft  = 50
	hourlyBandShare  = 0.5 // curve band, centered vertically
	hourlyRectBottom = 0.9 // baseline of the probability bars
	hourlyRectBudget = 0.6 // height of a 100% bar
	hourlyRectWidth  = 20
	hourlyScaleSteps = 4
	rainLabelOffset  = 22
	popLabelOffset   = 10
)

// PrecipitationLabel is the text drawn above one probability bar.
type PrecipitationLabel struct {
	Rain  *float64 `json:"rain,omitempty"`
	RainX float64  `json:"rainX"`
	RainY float64  `json:"rainY"`
	Pop   string   `json:"pop"`
	PopX  float64  `json:"popX"`
	PopY  float64  `json:"popY"`
}

// WeatherLabel is the condition text drawn under one hourly sample.
type WeatherLabel struct {
	Words     []string          `json:"value"`
	Heading   string            `json:"heading"`
	Condition weather.Condition `json:"condition"`
	X         float64           `json:"pX"`
	Y         float64           `json:"pY"`
}

// Hourly is the geometry of the hourly temperature chart with its
// precipitation-probability bars.
type Hourly struct {
	geometry

	data       []weather.HourlyRecord
	clock      *timefmt.Formatter
	minTemp    float64
	maxTemp    float64
	rectBottom float64

	scale    []ScaleMark
	rects    []Rect
	labels   []PrecipitationLabel
	weather  []WeatherLabel
	timeline []TimelineMark
}

// NewHourly lays out an hourly series. data must hold at least two records.
// Invalid dimensions fall back to DefaultHourlyDimensions. Conversion errors
// from conv are returned unchanged.
func NewHourly(data []weather.HourlyRecord, dims Dimensions, conv units.Converter, clock *timefmt.Formatter) (*Hourly, error) {
	h := &Hourly{
		geometry: newGeometry(dims.or(DefaultHourlyDimensions)),
		data:     data,
		clock:    clock,
	}

	h.params.Height = h.dims.Height * hourlyBandShare
	h.params.Top = (h.dims.Height - h.params.Height) / 2
	h.params.Bottom = h.params.Top + h.params.Height
	h.params.Left = hourlyCurveLeft
	h.params.Width = h.dims.Width - hourlyCurveLeft
	h.rectBottom = h.dims.Height * hourlyRectBottom

	h.finish(h.calcCoords())

	scale, err := h.calcScale(conv)
	if err != nil {
		return nil, err
	}
	h.scale = scale
	h.rects, h.labels = h.calcPrecipitation()
	h.weather = h.calcWeatherLabels()
	h.timeline = h.calcTimeLine()

	return h, nil
}

func (h *Hourly) calcCoords() []DataCoord {
	if len(h.data) == 0 {
		return nil
	}
	h.minTemp, h.maxTemp = h.data[0].Temperature, h.data[0].Temperature
	for _, r := range h.data[1:] {
		h.minTemp = min(h.minTemp, r.Temperature)
		h.maxTemp = max(h.maxTemp, r.Temperature)
	}

	pixPerStepX := h.params.Width / float64(len(h.data))
	pixPerStepY := h.params.Height / max(h.maxTemp-h.minTemp, rangeEpsilon)

	coords := make([]DataCoord, 0, len(h.data))
	for i, r := range h.data {
		coords = append(coords, DataCoord{
			X:     h.params.Left + pixPerStepX*float64(i),
			Y:     h.params.Bottom - (r.Temperature-h.minTemp)*pixPerStepY,
			Value: floatPtr(r.Temperature),
		})
	}
	return coords
}

// calcScale spreads the ticks over the plotted y extent rather than the
// nominal band so they line up with the curve.
func (h *Hourly) calcScale(conv units.Converter) ([]ScaleMark, error) {
	yTop, yBottom := extentY(h.coords)
	step := (h.maxTemp - h.minTemp) / hourlyScaleSteps

	marks := make([]ScaleMark, 0, hourlyScaleSteps+1)
	for i := 0; i <= hourlyScaleSteps; i++ {
		v, err := conv.Temp(h.minTemp+step*float64(i), units.DisplayShort)
		if err != nil {
			return nil, fmt.Errorf("hourly scale: %w", err)
		}
		marks = append(marks, ScaleMark{
			Value: v.Value,
			Units: v.Units,
			Label: v.String(),
			Y:     yBottom - (yBottom-yTop)/hourlyScaleSteps*float64(i),
		})
	}
	return marks, nil
}

func (h *Hourly) calcPrecipitation() ([]Rect, []PrecipitationLabel) {
	budget := h.dims.Height * hourlyRectBudget
	rects := make([]Rect, 0, len(h.data))
	labels := make([]PrecipitationLabel, 0, len(h.data))

	for i, r := range h.data {
		pop := min(max(r.PrecipitationProbability, 0), 1)
		x := h.coords[i].X
		y := h.rectBottom - pop*budget
		rects = append(rects, Rect{X: x, Y: y, Width: hourlyRectWidth, Height: h.rectBottom - y})

		label := PrecipitationLabel{
			RainX: x,
			RainY: y - rainLabelOffset,
			Pop:   fmt.Sprintf("%.0f%%", units.Round(pop*100)),
			PopX:  x,
			PopY:  y - popLabelOffset,
		}
		if rain, ok := r.RainAmount(); ok {
			label.Rain = floatPtr(rain)
		}
		labels = append(labels, label)
	}
	return rects, labels
}

func (h *Hourly) calcWeatherLabels() []WeatherLabel {
	caser := cases.Title(language.English)
	labels := make([]WeatherLabel, 0, len(h.data))
	for i, r := range h.data {
		text := r.ConditionText()
		labels = append(labels, WeatherLabel{
			Words:     common.Words(text),
			Heading:   caser.String(text),
			Condition: weather.ConditionFromText(text),
			X:         h.coords[i].X,
			Y:         h.dims.Height,
		})
	}
	return labels
}

func (h *Hourly) calcTimeLine() []TimelineMark {
	marks := make([]TimelineMark, 0, len(h.data))
	for i, r := range h.data {
		marks = append(marks, TimelineMark{
			Time: h.clock.Hour(r.Timestamp),
			X:    h.coords[i].X,
			Y:    timelineY,
		})
	}
	return marks
}

// Scale returns five temperature ticks from the lowest to the highest value.
func (h *Hourly) Scale() []ScaleMark {
	return slices.Clone(h.scale)
}

// PrecipitationRects returns the probability bars, leaving out bars of zero
// height. Coordinates are unaffected.
func (h *Hourly) PrecipitationRects() []Rect {
	out := make([]Rect, 0, len(h.rects))
	for _, r := range h.rects {
		if r.Height > 0 {
			out = append(out, r)
		}
	}
	return out
}

// PrecipitationDescriptions returns one label pair per sample.
func (h *Hourly) PrecipitationDescriptions() []PrecipitationLabel {
	return slices.Clone(h.labels)
}

// WeatherDescriptions returns the condition text of every sample split into
// words.
func (h *Hourly) WeatherDescriptions() []WeatherLabel {
	return slices.Clone(h.weather)
}

// TimeLine returns one hour label per sample. Midnight is labeled with the
// date instead of "12 AM".
func (h *Hourly) TimeLine() []TimelineMark {
	return slices.Clone(h.timeline)
}

// RectBottom is the baseline of the probability bars.
func (h *Hourly) RectBottom() float64 {
	return h.rectBottom
}
