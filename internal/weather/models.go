package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Location represents a logical place for which we keep forecast series.
// City/Country must be provided.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// WeatherCondition is the free-text condition attached to a sample.
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Rain holds the optional rain volume of an hourly sample, in mm.
type Rain struct {
	OneHour float64 `json:"1h"`
}

// HourlyRecord is one sample of the hourly series. Temperatures are Kelvin,
// PrecipitationProbability is a fraction in [0, 1].
type HourlyRecord struct {
	Timestamp                int64              `json:"dt" validate:"required"`
	Temperature              float64            `json:"temp" validate:"gt=0"`
	FeelsLike                float64            `json:"feels_like,omitempty"`
	Humidity                 float64            `json:"humidity,omitempty"`
	WindSpeed                float64            `json:"wind_speed,omitempty"`
	WindGust                 *float64           `json:"wind_gust,omitempty"`
	PrecipitationProbability float64            `json:"pop"`
	Weather                  []WeatherCondition `json:"weather,omitempty"`
	Rain                     *Rain              `json:"rain,omitempty"`
}

// ConditionText returns the description of the first condition, or "".
func (h HourlyRecord) ConditionText() string {
	if len(h.Weather) == 0 {
		return ""
	}
	return h.Weather[0].Description
}

// RainAmount returns the hourly rain volume and whether it was reported.
func (h HourlyRecord) RainAmount() (float64, bool) {
	if h.Rain == nil {
		return 0, false
	}
	return h.Rain.OneHour, true
}

// PrecipitationSample is one minute of the near-term precipitation series.
type PrecipitationSample struct {
	Timestamp     int64   `json:"dt" validate:"required"`
	Precipitation float64 `json:"precipitation" validate:"gte=0"`
}

// DailyTemperatures are the Kelvin temperatures of the parts of a day.
type DailyTemperatures struct {
	Day     float64 `json:"day" validate:"gt=0"`
	Min     float64 `json:"min" validate:"gt=0"`
	Max     float64 `json:"max" validate:"gtefield=Min"`
	Night   float64 `json:"night" validate:"gt=0"`
	Evening float64 `json:"eve" validate:"gt=0"`
	Morning float64 `json:"morn" validate:"gt=0"`
}

// DailyRecord is one day of the multi-day forecast.
type DailyRecord struct {
	Timestamp   int64              `json:"dt"`
	Sunrise     int64              `json:"sunrise"`
	Sunset      int64              `json:"sunset"`
	Summary     string             `json:"summary,omitempty"`
	Temp        DailyTemperatures  `json:"temp"`
	Pressure    float64            `json:"pressure,omitempty"`
	Humidity    float64            `json:"humidity,omitempty"`
	WindSpeed   float64            `json:"wind_speed,omitempty"`
	WindDeg     float64            `json:"wind_deg,omitempty"`
	WindGust    *float64           `json:"wind_gust,omitempty"`
	Weather     []WeatherCondition `json:"weather,omitempty"`
	Clouds      float64            `json:"clouds,omitempty"`
	Pop         float64            `json:"pop,omitempty"`
	Rain        *float64           `json:"rain,omitempty"`
	Snow        *float64           `json:"snow,omitempty"`
	UVI         float64            `json:"uvi,omitempty"`
}

// DailyProfile is the five-point temperature profile of one day, in Kelvin,
// ordered night, morning, day, evening, next night.
type DailyProfile struct {
	Night     float64 `json:"night"`
	Morning   float64 `json:"morn"`
	Day       float64 `json:"day"`
	Evening   float64 `json:"eve"`
	NextNight float64 `json:"nextNight"`
}

// Values returns the profile in chart order.
func (p DailyProfile) Values() []float64 {
	return []float64{p.Night, p.Morning, p.Day, p.Evening, p.NextNight}
}

// Current is the observation at the time the forecast was produced.
type Current struct {
	Timestamp  int64              `json:"dt"`
	Sunrise    int64              `json:"sunrise"`
	Sunset     int64              `json:"sunset"`
	Temp       float64            `json:"temp"`
	FeelsLike  float64            `json:"feels_like,omitempty"`
	Pressure   float64            `json:"pressure,omitempty"`
	Humidity   float64            `json:"humidity,omitempty"`
	DewPoint   *float64           `json:"dew_point,omitempty"`
	UVI        float64            `json:"uvi,omitempty"`
	Clouds     float64            `json:"clouds,omitempty"`
	Visibility float64            `json:"visibility,omitempty"`
	WindSpeed  float64            `json:"wind_speed,omitempty"`
	WindDeg    float64            `json:"wind_deg,omitempty"`
	WindGust   *float64           `json:"wind_gust,omitempty"`
	AirQuality float64            `json:"air_pollution,omitempty"`
	Weather    []WeatherCondition `json:"weather,omitempty"`
}

// Forecast is the full bundle of series for a location, as delivered by the
// data-fetching layer. Series are ordered by timestamp ascending.
type Forecast struct {
	Timezone string                `json:"timezone"`
	Current  Current               `json:"current"`
	Minutely []PrecipitationSample `json:"minutely,omitempty" validate:"dive"`
	Hourly   []HourlyRecord        `json:"hourly,omitempty" validate:"dive"`
	Daily    []DailyRecord         `json:"daily,omitempty" validate:"dive"`
}

// Snapshot is a stored forecast bundle.
type Snapshot struct {
	ID        string    `json:"id"`
	Location  Location  `json:"location"`
	Timestamp time.Time `json:"timestamp"` // always UTC
	Forecast  Forecast  `json:"forecast"`
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveSnapshot(loc Location, snapshot Snapshot) Snapshot
	GetLatest(loc Location) (Snapshot, error)
	GetByID(id string) (Snapshot, error)
	GetRange(loc Location, from, to time.Time) ([]Snapshot, error)
	Prune(now time.Time) int
}
