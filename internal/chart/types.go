// Package chart turns weather time series into drawing geometry: coordinate
// arrays, smooth curve paths, scale ticks and timeline labels. It performs no
// rendering and no I/O; every output is a plain value ready for an SVG or
// canvas surface.
package chart

import "errors"

// ErrDayOutOfRange is returned when a daily popup is requested for a day
// that is not part of the profile list.
var ErrDayOutOfRange = errors.New("day index out of range")

// timelineY is the vertical position of timeline labels.
const timelineY = 12

// rangeEpsilon floors value ranges so a flat series never divides by zero.
const rangeEpsilon = 1e-9

// Dimensions is a drawing area in abstract units. Both sides must be
// positive.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both sides are positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

func (d Dimensions) or(def Dimensions) Dimensions {
	if d.Valid() {
		return d
	}
	return def
}

// CurveParams is the layout band a curve is drawn into.
type CurveParams struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DataCoord is the drawing position of one input sample.
type DataCoord struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Value *float64 `json:"value,omitempty"`
}

// Curve holds a smoothed path and, optionally, the closed region beneath it.
type Curve struct {
	MainCurve     string `json:"mainCurve"`
	BackPathCurve string `json:"backPathCurve,omitempty"`
}

// ScaleMark is a labeled tick on a value scale.
type ScaleMark struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// AxisMark is a horizontal value line spanning the chart.
type AxisMark struct {
	Y      float64 `json:"y"`
	Value  float64 `json:"value"`
	Length float64 `json:"length"`
}

// TimelineMark is a labeled tick on the time axis.
type TimelineMark struct {
	Time        string  `json:"time"`
	Description string  `json:"description,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Y2          float64 `json:"y2,omitempty"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// HoverRect is the pointer hit area of the daily popup curve.
type HoverRect struct {
	X      float64 `json:"x"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Builder is implemented by every chart builder.
type Builder interface {
	Coords() []DataCoord
	DrawCurve(withFillRegion bool) Curve
	TimeLine() []TimelineMark
}

var (
	_ Builder = (*Hourly)(nil)
	_ Builder = (*Precipitation)(nil)
	_ Builder = (*DailyPopup)(nil)
)

func floatPtr(v float64) *float64 {
	return &v
}
