package indicators

import "math"

type compassPoint struct {
	short string
	full  string
}

var compass = []compassPoint{
	{"N", "North"},
	{"NE", "North-east"},
	{"E", "East"},
	{"SE", "South-east"},
	{"S", "South"},
	{"SW", "South-west"},
	{"W", "West"},
	{"NW", "North-west"},
}

// WindDirection names the 8-point compass sector of a bearing in degrees,
// 0 being north. Bearings outside [0, 360) wrap around.
func WindDirection(deg float64, full bool) string {
	idx := int(math.Floor(deg/45+0.5)) % len(compass)
	if idx < 0 {
		idx += len(compass)
	}
	if full {
		return compass[idx].full
	}
	return compass[idx].short
}
