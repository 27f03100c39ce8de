package weather

import (
	"strings"

	"github.com/i474232898/weather-charts/internal/common"
)

// DailyProfiles derives the five-point temperature profile of every day. The
// closing night of a day is the next day's night; the last day reuses its
// own night value.
func DailyProfiles(days []DailyRecord) []DailyProfile {
	profiles := make([]DailyProfile, 0, len(days))
	for i, d := range days {
		nextNight := d.Temp.Night
		if i+1 < len(days) {
			nextNight = days[i+1].Temp.Night
		}
		profiles = append(profiles, DailyProfile{
			Night:     d.Temp.Night,
			Morning:   d.Temp.Morning,
			Day:       d.Temp.Day,
			Evening:   d.Temp.Evening,
			NextNight: nextNight,
		})
	}
	return profiles
}

// ConditionFromText classifies a free-text condition such as "light rain"
// or "overcast clouds".
func ConditionFromText(text string) Condition {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case t == "":
		return ConditionUnknown
	case common.HasAny(t, "thunder", "storm", "squall", "tornado"):
		return ConditionStorm
	case common.HasAny(t, "snow", "sleet", "blizzard"):
		return ConditionSnow
	case common.HasAny(t, "rain", "shower", "drizzle"):
		return ConditionRain
	case common.HasAny(t, "mist", "fog", "haze", "smoke", "dust", "sand", "ash"):
		return ConditionMist
	case common.HasAny(t, "cloud", "overcast"):
		return ConditionCloudy
	case common.HasAny(t, "clear", "sunny"):
		return ConditionClear
	default:
		return ConditionUnknown
	}
}
