package indicators

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// VisibilityReport is a visibility distance with its descriptive range.
type VisibilityReport struct {
	Range    string `json:"range"`
	Distance string `json:"distance"`
}

type visibilityRange struct {
	min, max float64
	name     string
}

// Ranges are half-open [min, max) in meters, each starting where the next
// one ends. The top range also includes its max.
var visibilityRanges = []visibilityRange{
	{9000, 10000, "clear"},
	{4000, 9000, "light haze"},
	{2000, 4000, "haze"},
	{1000, 2000, "thin fog"},
	{500, 1000, "light fog"},
	{200, 500, "moderate fog"},
	{50, 200, "thick fog"},
	{0, 50, "dense fog"},
}

const visibilityUnavailable = "not available"

var distancePrinter = message.NewPrinter(language.English)

// Visibility describes a visibility in meters. Distances of a kilometer or
// more are given in km with at most one decimal.
func Visibility(meters float64) VisibilityReport {
	r := VisibilityReport{Range: visibilityUnavailable}
	for i, vr := range visibilityRanges {
		if meters >= vr.min && (meters < vr.max || i == 0 && meters == vr.max) {
			r.Range = vr.name
			break
		}
	}

	if meters >= 1000 {
		r.Distance = distancePrinter.Sprint(number.Decimal(meters/1000, number.MaxFractionDigits(1))) + "km"
	} else {
		r.Distance = distancePrinter.Sprint(number.Decimal(meters, number.MaxFractionDigits(1))) + "m"
	}
	return r
}
