package indicators

// TemperatureBand is a colored Kelvin interval.
type TemperatureBand struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Level string  `json:"level"`
	Color string  `json:"color"`
}

var temperatureBands = []TemperatureBand{
	{0, 273.15, "extremely cold", "#2a52be"},
	{273.15, 288.15, "cold", "#007aa5"},
	{288.15, 293.15, "moderate", "#30CC14"},
	{293.15, 298.15, "slightly warm", "#ffff31"},
	{298.15, 303.15, "warm", "#EA7211"},
	{303.15, 423.15, "warm", "#E70F12"},
}

// TemperatureBands returns the bands touching [minK, maxK], coldest first.
func TemperatureBands(minK, maxK float64) []TemperatureBand {
	var out []TemperatureBand
	for _, b := range temperatureBands {
		if b.Min <= maxK && b.Max >= minK {
			out = append(out, b)
		}
	}
	return out
}

const offsetEpsilon = 1e-9

// DailyScaleOffset places value along a line of lineWidth that spans
// minTemp..maxTemp. A zero-width range places everything at the start.
func DailyScaleOffset(lineWidth, minTemp, maxTemp, value float64) float64 {
	span := maxTemp - minTemp
	if span < offsetEpsilon {
		return 0
	}
	return (value - minTemp) * lineWidth / span
}
