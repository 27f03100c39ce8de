// Package sun locates the current instant within the day or night period.
package sun

const secondsInDay = 86400

// Cycle describes the day or night period that contains an instant.
type Cycle struct {
	CycleDuration       int64 `json:"cycleDuration"`
	TimeSinceCycleStart int64 `json:"timeSinceCycleStart"`
	IsDay               bool  `json:"isDay"`
}

// Position returns the cycle containing now. All arguments are unix seconds
// for the same calendar day; sunrise and sunset themselves count as day.
// After sunset the night runs to the next sunrise, before sunrise it runs
// from the previous sunset.
func Position(sunrise, sunset, now int64) Cycle {
	if now >= sunrise && now <= sunset {
		return Cycle{
			CycleDuration:       sunset - sunrise,
			TimeSinceCycleStart: now - sunrise,
			IsDay:               true,
		}
	}

	if now > sunset {
		nextSunrise := sunrise + secondsInDay
		return Cycle{
			CycleDuration:       nextSunrise - sunset,
			TimeSinceCycleStart: now - sunset,
		}
	}

	prevSunset := sunset - secondsInDay
	return Cycle{
		CycleDuration:       sunrise - prevSunset,
		TimeSinceCycleStart: now - prevSunset,
	}
}

// Fraction is the elapsed share of the cycle in [0, 1], used to place the
// sun or moon indicator along its arc. A zero-length cycle yields 0.
func (c Cycle) Fraction() float64 {
	if c.CycleDuration <= 0 {
		return 0
	}
	f := float64(c.TimeSinceCycleStart) / float64(c.CycleDuration)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
