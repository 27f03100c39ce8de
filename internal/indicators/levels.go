package indicators

import (
	"fmt"
	"math"
)

// LevelKind selects a level scale.
type LevelKind string

const (
	AQI LevelKind = "aqi"
	UVI LevelKind = "uvi"
)

// LevelDefinition is one step of a level scale.
type LevelDefinition struct {
	Value int    `json:"value"`
	Level string `json:"level"`
	Color string `json:"color"`
}

// LevelReport carries the full color ramp of a scale and the step matching
// the requested value, if any.
type LevelReport struct {
	Colors []string         `json:"colors"`
	Value  *LevelDefinition `json:"values,omitempty"`
}

var aqiColors = []string{"#0080FF", "#00FF00", "#FFFF00", "#FFA500", "#E70F12"}

var uviColors = []string{
	"#3FD125", "#30CC14", "#B9CB13", "#EAC811", "#EA9911", "#EA7211",
	"#E84E13", "#E70F12", "#D80D10", "#EB0D65", "#EA0C93", "#F00A90",
}

var aqiLevels = []LevelDefinition{
	{1, "good", aqiColors[0]},
	{2, "moderate", aqiColors[1]},
	{3, "moderate", aqiColors[2]},
	{4, "unhealthy", aqiColors[3]},
	{5, "very unhealthy", aqiColors[4]},
}

var uviLevels = []LevelDefinition{
	{0, "low", uviColors[0]},
	{1, "low", uviColors[1]},
	{2, "low", uviColors[2]},
	{3, "moderate", uviColors[3]},
	{4, "moderate", uviColors[4]},
	{5, "moderate", uviColors[5]},
	{6, "high", uviColors[6]},
	{7, "high", uviColors[7]},
	{8, "very high", uviColors[8]},
	{9, "very high", uviColors[9]},
	{10, "very high", uviColors[10]},
	{11, "extreme", uviColors[11]},
}

// ParseLevelKind validates a scale name.
func ParseLevelKind(s string) (LevelKind, error) {
	switch k := LevelKind(s); k {
	case AQI, UVI:
		return k, nil
	default:
		return "", fmt.Errorf("unknown level scale %q", s)
	}
}

// Level looks up value, rounded to the nearest integer, on the given scale.
// Values off the scale leave Value nil.
func Level(kind LevelKind, value float64) LevelReport {
	colors, levels := uviColors, uviLevels
	if kind == AQI {
		colors, levels = aqiColors, aqiLevels
	}

	r := LevelReport{Colors: append([]string(nil), colors...)}
	rounded := int(math.Floor(value + 0.5))
	for _, l := range levels {
		if l.Value == rounded {
			l := l
			r.Value = &l
			break
		}
	}
	return r
}
