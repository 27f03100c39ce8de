package indicators

import "math"

// Gauge geometry of the pressure dial.
const (
	gaugeCenterX      = 80
	gaugeCenterY      = 70
	gaugeRadius       = 60
	gaugeTickLength   = 15
	gaugeMinPressure  = 850
	gaugeMaxPressure  = 1100
	gaugeStartAngle   = -105
	DefaultGaugeTicks = 30
)

// GaugeTick is one decorative line of the dial.
type GaugeTick struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// PressureGauge is the needle angle for a pressure reading together with the
// dial ticks.
type PressureGauge struct {
	Pressure float64     `json:"pressure"`
	Angle    float64     `json:"angle"`
	Ticks    []GaugeTick `json:"coords"`
}

// Pressure lays out the dial for a reading in hPa. The needle sweeps from
// -105 degrees at 850 hPa to 105 degrees at 1100 hPa and is not clamped
// outside that range. A non-positive lines means DefaultGaugeTicks.
func Pressure(hpa float64, lines int) PressureGauge {
	if lines <= 0 {
		lines = DefaultGaugeTicks
	}
	scaleStep := float64(gaugeMaxPressure-gaugeMinPressure) / (gaugeStartAngle * 2)

	ticks := make([]GaugeTick, 0, lines)
	for i := 0; i < lines; i++ {
		angle := float64(i) / float64(lines) * 380
		rad := (angle + 91.5*math.Pi) / 100
		cos, sin := math.Cos(rad), math.Sin(rad)
		ticks = append(ticks, GaugeTick{
			X1: gaugeCenterX + gaugeRadius*cos,
			Y1: gaugeCenterY + gaugeRadius*sin,
			X2: gaugeCenterX + (gaugeRadius-gaugeTickLength)*cos,
			Y2: gaugeCenterY + (gaugeRadius-gaugeTickLength)*sin,
		})
	}

	return PressureGauge{
		Pressure: hpa,
		Angle:    gaugeStartAngle - (hpa-gaugeMinPressure)/scaleStep,
		Ticks:    ticks,
	}
}
