package chart

import (
	"fmt"
	"slices"

	"github.com/i474232898/weather-charts/internal/units"
	"github.com/i474232898/weather-charts/internal/weather"
)

// DefaultPopupDimensions is the drawing area of the daily popup curve.
var DefaultPopupDimensions = Dimensions{Width: 300, Height: 150}

const (
	popupBandShare   = 0.6 // 90 of 150
	popupBottomInset = 10
	popupScaleLeft   = 10
	popupCurveLeft   = 30
	popupPadding     = 5
	popupSubsamples  = 5
	popupScaleSteps  = 4
	popupScaleUnits  = "°"
)

// dayParts label every named value of the expanded profile: with
// popupSubsamples points per gap the names sit at every
// (popupSubsamples+1)-th index.
var dayParts = []string{"00", "06", "12", "18", "00"}

// DayPartLabel marks a day-part boundary along the popup curve.
type DayPartLabel struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value string  `json:"value"`
}

// DailyPopup is the geometry of the temperature curve shown for one day of
// the multi-day forecast.
type DailyPopup struct {
	geometry

	day      int
	minVal   float64
	maxVal   float64
	expanded []units.Value
	scale    []ScaleMark
	parts    []DayPartLabel
}

// NewDailyPopup lays out the profile of day against the extremes of all
// profiles, so the scale stays put while paging between days. Conversion
// errors from conv are returned unchanged.
func NewDailyPopup(profiles []weather.DailyProfile, day int, dims Dimensions, conv units.Converter) (*DailyPopup, error) {
	if day < 0 || day >= len(profiles) {
		return nil, fmt.Errorf("%w: %d of %d", ErrDayOutOfRange, day, len(profiles))
	}

	d := &DailyPopup{
		geometry: newGeometry(dims.or(DefaultPopupDimensions)),
		day:      day,
	}
	d.params.Height = d.dims.Height * popupBandShare
	d.params.Width = d.dims.Width
	d.params.Bottom = d.dims.Height - popupBottomInset
	d.params.Top = d.params.Bottom - d.params.Height
	d.params.Left = popupScaleLeft

	if err := d.calcTotalMinMax(profiles, conv); err != nil {
		return nil, err
	}

	values, err := conv.Temps(profiles[day].Values(), units.DisplayFull)
	if err != nil {
		return nil, fmt.Errorf("daily profile %d: %w", day, err)
	}
	d.expanded = ExpandProfile(values, popupSubsamples)

	d.finish(d.calcCoords())
	d.scale = d.calcScale()
	d.parts = d.calcDayParts()

	return d, nil
}

func (d *DailyPopup) calcTotalMinMax(profiles []weather.DailyProfile, conv units.Converter) error {
	first := true
	var lo, hi float64
	for _, p := range profiles {
		for _, v := range p.Values() {
			if first {
				lo, hi, first = v, v, false
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	minTemp, err := conv.Temp(lo, units.DisplayNone)
	if err != nil {
		return fmt.Errorf("daily scale: %w", err)
	}
	maxTemp, err := conv.Temp(hi, units.DisplayNone)
	if err != nil {
		return fmt.Errorf("daily scale: %w", err)
	}
	d.minVal = minTemp.Value - popupPadding
	d.maxVal = maxTemp.Value + popupPadding
	return nil
}

// ExpandProfile inserts n points between every pair of adjacent values. The
// first inserted point repeats the left value and the rest step linearly
// towards the right one without reaching it, so each gap contributes n+1
// points and an input value sits at every (n+1)-th index. Rising,
// falling and flat gaps all stay within their two end values. Inserted
// values are rounded to two decimals.
func ExpandProfile(values []units.Value, n int) []units.Value {
	if len(values) == 0 {
		return nil
	}
	out := make([]units.Value, 0, len(values)+(len(values)-1)*n)
	unit := values[0].Units
	for i, v := range values {
		out = append(out, v)
		if i == len(values)-1 {
			break
		}
		delta := (values[i+1].Value - v.Value) / float64(n)
		for j := 0; j < n; j++ {
			out = append(out, units.Value{
				Value: units.RoundTo(v.Value+delta*float64(j), 2),
				Units: unit,
			})
		}
	}
	return out
}

func (d *DailyPopup) calcCoords() []DataCoord {
	pixPerStepX := (d.dims.Width - popupCurveLeft) / float64(len(d.expanded))
	pixPerStepY := d.params.Height / max(d.maxVal-d.minVal, rangeEpsilon)

	coords := make([]DataCoord, 0, len(d.expanded))
	for i, v := range d.expanded {
		coords = append(coords, DataCoord{
			X:     popupCurveLeft + pixPerStepX*float64(i),
			Y:     d.params.Bottom - (v.Value-d.minVal)*pixPerStepY,
			Value: floatPtr(v.Value),
		})
	}
	return coords
}

func (d *DailyPopup) calcScale() []ScaleMark {
	step := (d.maxVal - d.minVal) / popupScaleSteps
	marks := make([]ScaleMark, 0, popupScaleSteps+1)
	for i := 0; i <= popupScaleSteps; i++ {
		value := units.Round(d.minVal + step*float64(i))
		marks = append(marks, ScaleMark{
			Value: value,
			Units: popupScaleUnits,
			Label: units.Value{Value: value, Units: popupScaleUnits}.String(),
			X:     popupScaleLeft,
			Y:     d.params.Bottom - d.params.Height/popupScaleSteps*float64(i),
		})
	}
	return marks
}

func (d *DailyPopup) calcDayParts() []DayPartLabel {
	stride := popupSubsamples + 1
	labels := make([]DayPartLabel, 0, len(dayParts))
	for i := 0; i < len(d.coords) && i/stride < len(dayParts); i += stride {
		labels = append(labels, DayPartLabel{
			X:     d.coords[i].X,
			Y:     d.dims.Height,
			Value: dayParts[i/stride],
		})
	}
	return labels
}

// Day is the index of the profile this popup shows.
func (d *DailyPopup) Day() int {
	return d.day
}

// Range returns the padded scale extremes shared by all days.
func (d *DailyPopup) Range() (minVal, maxVal float64) {
	return d.minVal, d.maxVal
}

// Scale returns five ticks spread over the shared range.
func (d *DailyPopup) Scale() []ScaleMark {
	return slices.Clone(d.scale)
}

// Descriptions returns the day-part labels, one per named profile value.
func (d *DailyPopup) Descriptions() []DayPartLabel {
	return slices.Clone(d.parts)
}

// TimeLine returns the day-part labels as timeline marks.
func (d *DailyPopup) TimeLine() []TimelineMark {
	marks := make([]TimelineMark, 0, len(d.parts))
	for _, p := range d.parts {
		marks = append(marks, TimelineMark{Time: p.Value, X: p.X, Y: p.Y})
	}
	return marks
}

// ExpandedValues returns the expanded profile rounded to whole degrees.
func (d *DailyPopup) ExpandedValues() []units.Value {
	out := make([]units.Value, 0, len(d.expanded))
	for _, v := range d.expanded {
		out = append(out, units.Value{Value: units.Round(v.Value), Units: v.Units})
	}
	return out
}

// HoverRect spans the curve horizontally at full chart height.
func (d *DailyPopup) HoverRect() HoverRect {
	if len(d.coords) == 0 {
		return HoverRect{Height: d.dims.Height}
	}
	first, last := d.coords[0], d.coords[len(d.coords)-1]
	return HoverRect{X: first.X, Width: last.X - first.X, Height: d.dims.Height}
}
