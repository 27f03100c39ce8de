package indicators

// PrecipitationBand is one stop of the precipitation gradient, in mm.
type PrecipitationBand struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Color string  `json:"color"`
}

var precipitationBands = []PrecipitationBand{
	{0, 0, "#caf0f8"},
	{0.01, 2.5, "#90e0ef"},
	{2.51, 5, "#00b4d8"},
	{5.01, 7.5, "#0077b6"},
	{7.51, 50, "#191BB3"},
}

// PrecipitationColors returns the gradient stops needed to color a series
// peaking at peak. A negative peak yields no stops.
func PrecipitationColors(peak float64) []PrecipitationBand {
	var out []PrecipitationBand
	for _, b := range precipitationBands {
		if peak >= b.Min {
			out = append(out, b)
		}
	}
	return out
}
