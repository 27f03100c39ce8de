package units

import (
	"errors"
	"fmt"
	"math"
)

// System is a user-selected unit system.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// Display controls which unit suffix is attached to a converted temperature.
type Display int

const (
	DisplayNone  Display = iota // no suffix
	DisplayShort                // "°"
	DisplayFull                 // "°C" / "°F"
)

const absoluteZeroC = 273.15

var (
	// ErrInvalidValue is returned when the value to convert is NaN or infinite.
	ErrInvalidValue = errors.New("value must be a finite number")
	// ErrInvalidSystem is returned for anything other than "metric" or "imperial".
	ErrInvalidSystem = errors.New(`unit system must be "metric" or "imperial"`)
)

// Value is a converted number together with its display unit.
type Value struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

// String renders the value followed by its unit, e.g. "21°C".
func (v Value) String() string {
	return fmt.Sprintf("%v%s", v.Value, v.Units)
}

// ParseSystem validates a unit system name.
func ParseSystem(s string) (System, error) {
	sys := System(s)
	if err := sys.Validate(); err != nil {
		return "", err
	}
	return sys, nil
}

// Validate reports whether s is one of the recognized unit systems.
func (s System) Validate() error {
	if s != Metric && s != Imperial {
		return fmt.Errorf("%w: got %q", ErrInvalidSystem, string(s))
	}
	return nil
}

func checkArgs(value float64, sys System) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidValue, value)
	}
	return sys.Validate()
}

// Round rounds half away from negative infinity, so -2.5 becomes -2.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// RoundTo rounds x to the given number of decimals with the same tie rule as Round.
func RoundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return Round(x*p) / p
}

func tempSuffix(sys System, display Display) string {
	switch display {
	case DisplayShort:
		return "°"
	case DisplayFull:
		if sys == Imperial {
			return "°F"
		}
		return "°C"
	default:
		return ""
	}
}

func calcTemp(kelvin float64, sys System, display Display) Value {
	c := kelvin - absoluteZeroC
	if sys == Imperial {
		return Value{Value: Round(c*9/5 + 32), Units: tempSuffix(sys, display)}
	}
	return Value{Value: Round(c), Units: tempSuffix(sys, display)}
}

// Temp converts a Kelvin temperature to the given system, rounded to the
// nearest integer.
func Temp(kelvin float64, sys System, display Display) (Value, error) {
	if err := checkArgs(kelvin, sys); err != nil {
		return Value{}, err
	}
	return calcTemp(kelvin, sys, display), nil
}

// Temps converts every Kelvin value in order. The first invalid value aborts
// the conversion.
func Temps(kelvins []float64, sys System, display Display) ([]Value, error) {
	out := make([]Value, 0, len(kelvins))
	for i, k := range kelvins {
		v, err := Temp(k, sys, display)
		if err != nil {
			return nil, fmt.Errorf("temperature %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Kelvin converts a temperature expressed in the given system back to Kelvin.
func Kelvin(value float64, sys System) (float64, error) {
	if err := checkArgs(value, sys); err != nil {
		return 0, err
	}
	if sys == Imperial {
		return (value-32)*5/9 + absoluteZeroC, nil
	}
	return value + absoluteZeroC, nil
}

// Speed converts a wind speed given in m/s. Imperial values are reported in
// mph with one decimal.
func Speed(ms float64, sys System, withUnits bool) (Value, error) {
	if err := checkArgs(ms, sys); err != nil {
		return Value{}, err
	}
	if sys == Imperial {
		v := Value{Value: RoundTo(ms*2.23694, 1)}
		if withUnits {
			v.Units = "mph"
		}
		return v, nil
	}
	v := Value{Value: ms}
	if withUnits {
		v.Units = "m/s"
	}
	return v, nil
}

// Converter binds a unit system so chart builders can convert without
// carrying the system around separately.
type Converter struct {
	System System
}

// NewConverter validates sys and returns a Converter for it.
func NewConverter(sys System) (Converter, error) {
	if err := sys.Validate(); err != nil {
		return Converter{}, err
	}
	return Converter{System: sys}, nil
}

func (c Converter) Temp(kelvin float64, display Display) (Value, error) {
	return Temp(kelvin, c.System, display)
}

func (c Converter) Temps(kelvins []float64, display Display) ([]Value, error) {
	return Temps(kelvins, c.System, display)
}

func (c Converter) Speed(ms float64, withUnits bool) (Value, error) {
	return Speed(ms, c.System, withUnits)
}
