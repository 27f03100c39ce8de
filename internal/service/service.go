package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/i474232898/weather-charts/internal/chart"
	"github.com/i474232898/weather-charts/internal/indicators"
	"github.com/i474232898/weather-charts/internal/sun"
	"github.com/i474232898/weather-charts/internal/timefmt"
	"github.com/i474232898/weather-charts/internal/units"
	"github.com/i474232898/weather-charts/internal/weather"
)

var (
	// ErrNoSeries is returned when the stored forecast lacks the requested series.
	ErrNoSeries = errors.New("forecast has no such series")
	// ErrTooFewSamples is returned when a series has fewer than two samples.
	ErrTooFewSamples = errors.New("series needs at least two samples")
)

// minSamples is the shortest series a curve can be drawn through.
const minSamples = 2

// Defaults are the chart settings used when a request leaves them out.
type Defaults struct {
	Units            units.System
	Timezone         string
	Hourly           chart.Dimensions
	Precipitation    chart.Dimensions
	Popup            chart.Dimensions
	TimelineInterval int
}

// Options are the per-request chart settings. Zero values mean the defaults.
type Options struct {
	Units    string
	Width    float64
	Height   float64
	Interval int
}

// Service builds chart geometry from stored forecasts.
type Service struct {
	store    weather.Store
	defaults Defaults
	now      func() time.Time
}

// New creates a new Service.
func New(store weather.Store, defaults Defaults) *Service {
	return &Service{
		store:    store,
		defaults: defaults,
		now:      time.Now,
	}
}

// Save stores a forecast for a location. The forecast timezone must load if
// it is set.
func (s *Service) Save(loc weather.Location, forecast weather.Forecast) (weather.Snapshot, error) {
	if forecast.Timezone != "" {
		if _, err := timefmt.New(forecast.Timezone); err != nil {
			return weather.Snapshot{}, err
		}
	}
	snap := s.store.SaveSnapshot(loc, weather.Snapshot{
		Timestamp: s.now().UTC(),
		Forecast:  forecast,
	})
	log.Printf("DEBUG: stored forecast %s for %s (%d hourly, %d minutely, %d daily)",
		snap.ID, loc.Key(), len(forecast.Hourly), len(forecast.Minutely), len(forecast.Daily))
	return snap, nil
}

// Snapshot returns a stored forecast by id.
func (s *Service) Snapshot(id string) (weather.Snapshot, error) {
	return s.store.GetByID(id)
}

// History returns the stored forecasts for loc saved between from and to.
func (s *Service) History(loc weather.Location, from, to time.Time) ([]weather.Snapshot, error) {
	log.Printf("DEBUG: History called for %s from %s to %s", loc.Key(), from.Format(time.RFC3339), to.Format(time.RFC3339))
	return s.store.GetRange(loc, from, to)
}

// HourlyChart is the JSON view of the hourly temperature chart.
type HourlyChart struct {
	SnapshotID    string                     `json:"snapshotId"`
	Dimensions    chart.Dimensions           `json:"dimensions"`
	Params        chart.CurveParams          `json:"params"`
	Coords        []chart.DataCoord          `json:"coords"`
	Curve         chart.Curve                `json:"curve"`
	Scale         []chart.ScaleMark          `json:"scale"`
	Rects         []chart.Rect               `json:"precipitationRects"`
	RectBottom    float64                    `json:"rectBottom"`
	Precipitation []chart.PrecipitationLabel `json:"precipitationDescriptions"`
	Weather       []chart.WeatherLabel       `json:"weatherDescriptions"`
	TimeLine      []chart.TimelineMark       `json:"timeLine"`
}

// Hourly builds the hourly chart of the latest forecast for loc.
func (s *Service) Hourly(loc weather.Location, opts Options) (HourlyChart, error) {
	snap, conv, clock, err := s.prepare(loc, opts)
	if err != nil {
		return HourlyChart{}, err
	}
	if err := checkSamples("hourly", len(snap.Forecast.Hourly)); err != nil {
		return HourlyChart{}, err
	}

	dims := s.dimensions(opts, s.defaults.Hourly)
	h, err := chart.NewHourly(snap.Forecast.Hourly, dims, conv, clock)
	if err != nil {
		log.Printf("ERROR: hourly chart for %s: %v", loc.Key(), err)
		return HourlyChart{}, err
	}
	return HourlyChart{
		SnapshotID:    snap.ID,
		Dimensions:    h.Dimensions(),
		Params:        h.Params(),
		Coords:        h.Coords(),
		Curve:         h.DrawCurve(false),
		Scale:         h.Scale(),
		Rects:         h.PrecipitationRects(),
		RectBottom:    h.RectBottom(),
		Precipitation: h.PrecipitationDescriptions(),
		Weather:       h.WeatherDescriptions(),
		TimeLine:      h.TimeLine(),
	}, nil
}

// PrecipitationChart is the JSON view of the minute precipitation chart.
type PrecipitationChart struct {
	SnapshotID       string                         `json:"snapshotId"`
	Dimensions       chart.Dimensions               `json:"dimensions"`
	Params           chart.CurveParams              `json:"params"`
	Coords           []chart.DataCoord              `json:"coords"`
	Curve            chart.Curve                    `json:"curve"`
	Axis             []chart.AxisMark               `json:"axis"`
	MaxPrecipitation float64                        `json:"maxPrecipitation"`
	Step             float64                        `json:"step"`
	MaxScale         float64                        `json:"maxScale"`
	ChartHeight      float64                        `json:"chartHeight"`
	TimeLine         []chart.TimelineMark           `json:"timeLine"`
	Colors           []indicators.PrecipitationBand `json:"colors"`
}

// Precipitation builds the minute precipitation chart of the latest forecast for loc.
func (s *Service) Precipitation(loc weather.Location, opts Options) (PrecipitationChart, error) {
	snap, _, clock, err := s.prepare(loc, opts)
	if err != nil {
		return PrecipitationChart{}, err
	}
	data := snap.Forecast.Minutely
	if err := checkSamples("minutely", len(data)); err != nil {
		return PrecipitationChart{}, err
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = s.defaults.TimelineInterval
	}
	p := chart.NewPrecipitation(data, s.dimensions(opts, s.defaults.Precipitation), clock, interval)

	var peak float64
	for _, sample := range data {
		peak = max(peak, sample.Precipitation)
	}
	return PrecipitationChart{
		SnapshotID:       snap.ID,
		Dimensions:       p.Dimensions(),
		Params:           p.Params(),
		Coords:           p.Coords(),
		Curve:            p.DrawCurve(true),
		Axis:             p.Axis(),
		MaxPrecipitation: p.MaxPrecipitation(),
		Step:             p.Step(),
		MaxScale:         p.MaxScale(),
		ChartHeight:      p.ChartHeight(),
		TimeLine:         p.TimeLine(),
		Colors:           indicators.PrecipitationColors(peak),
	}, nil
}

// Range is a pair of scale extremes.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DailyChart is the JSON view of the popup curve for one forecast day.
type DailyChart struct {
	SnapshotID   string                       `json:"snapshotId"`
	Day          int                          `json:"day"`
	Days         int                          `json:"days"`
	Label        string                       `json:"label"`
	Dimensions   chart.Dimensions             `json:"dimensions"`
	Params       chart.CurveParams            `json:"params"`
	Coords       []chart.DataCoord            `json:"coords"`
	Curve        chart.Curve                  `json:"curve"`
	Scale        []chart.ScaleMark            `json:"scale"`
	Range        Range                        `json:"range"`
	Descriptions []chart.DayPartLabel         `json:"descriptions"`
	TimeLine     []chart.TimelineMark         `json:"timeLine"`
	Values       []units.Value                `json:"values"`
	HoverRect    chart.HoverRect              `json:"hoverRect"`
	Bands        []indicators.TemperatureBand `json:"bands"`
	Offsets      DayOffsets                   `json:"offsets"`
}

// DayOffsets place the day's min and max marks along the width of the
// multi-day range bar.
type DayOffsets struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Daily builds the popup chart for one day of the latest forecast for loc.
func (s *Service) Daily(loc weather.Location, day int, opts Options) (DailyChart, error) {
	snap, conv, clock, err := s.prepare(loc, opts)
	if err != nil {
		return DailyChart{}, err
	}
	days := snap.Forecast.Daily
	if len(days) == 0 {
		return DailyChart{}, fmt.Errorf("daily: %w", ErrNoSeries)
	}

	profiles := weather.DailyProfiles(days)
	d, err := chart.NewDailyPopup(profiles, day, s.dimensions(opts, s.defaults.Popup), conv)
	if err != nil {
		return DailyChart{}, err
	}

	lo, hi := d.Range()
	weekMin, weekMax := days[0].Temp.Min, days[0].Temp.Max
	for _, r := range days[1:] {
		weekMin = min(weekMin, r.Temp.Min)
		weekMax = max(weekMax, r.Temp.Max)
	}
	width := d.Dimensions().Width
	rec := days[day]

	return DailyChart{
		SnapshotID:   snap.ID,
		Day:          day,
		Days:         len(days),
		Label:        clock.At(rec.Timestamp).Weekday(timefmt.Short).Divider(timefmt.Space).Day(timefmt.TwoDigit).String(),
		Dimensions:   d.Dimensions(),
		Params:       d.Params(),
		Coords:       d.Coords(),
		Curve:        d.DrawCurve(false),
		Scale:        d.Scale(),
		Range:        Range{Min: lo, Max: hi},
		Descriptions: d.Descriptions(),
		TimeLine:     d.TimeLine(),
		Values:       d.ExpandedValues(),
		HoverRect:    d.HoverRect(),
		Bands:        indicators.TemperatureBands(rec.Temp.Min, rec.Temp.Max),
		Offsets: DayOffsets{
			Min: indicators.DailyScaleOffset(width, weekMin, weekMax, rec.Temp.Min),
			Max: indicators.DailyScaleOffset(width, weekMin, weekMax, rec.Temp.Max),
		},
	}, nil
}

// SunView locates the current instant in the day or night.
type SunView struct {
	sun.Cycle
	Fraction float64 `json:"fraction"`
	Sunrise  string  `json:"sunrise"`
	Sunset   string  `json:"sunset"`
}

// Sun places the sun or moon for the latest forecast of loc at the current time.
func (s *Service) Sun(loc weather.Location) (SunView, error) {
	snap, _, clock, err := s.prepare(loc, Options{})
	if err != nil {
		return SunView{}, err
	}
	cur := snap.Forecast.Current
	if cur.Sunrise == 0 || cur.Sunset == 0 {
		return SunView{}, fmt.Errorf("sunrise/sunset: %w", ErrNoSeries)
	}
	c := sun.Position(cur.Sunrise, cur.Sunset, s.now().Unix())
	return SunView{
		Cycle:    c,
		Fraction: c.Fraction(),
		Sunrise:  clock.Clock(cur.Sunrise),
		Sunset:   clock.Clock(cur.Sunset),
	}, nil
}

// IndicatorsView decorates the current observation.
type IndicatorsView struct {
	Temperature   units.Value                 `json:"temperature"`
	FeelsLike     units.Value                 `json:"feelsLike"`
	WindSpeed     units.Value                 `json:"windSpeed"`
	WindDirection string                      `json:"windDirection"`
	WindHeading   string                      `json:"windHeading"`
	Visibility    indicators.VisibilityReport `json:"visibility"`
	Pressure      indicators.PressureGauge    `json:"pressure"`
	AirQuality    indicators.LevelReport      `json:"airQuality"`
	UVIndex       indicators.LevelReport      `json:"uvIndex"`
}

// Indicators summarizes the current observation of the latest forecast for loc.
func (s *Service) Indicators(loc weather.Location, opts Options) (IndicatorsView, error) {
	snap, conv, _, err := s.prepare(loc, opts)
	if err != nil {
		return IndicatorsView{}, err
	}
	cur := snap.Forecast.Current

	temp, err := conv.Temp(cur.Temp, units.DisplayFull)
	if err != nil {
		return IndicatorsView{}, fmt.Errorf("current temperature: %w", err)
	}
	feels, err := conv.Temp(cur.FeelsLike, units.DisplayFull)
	if err != nil {
		return IndicatorsView{}, fmt.Errorf("feels like: %w", err)
	}
	wind, err := conv.Speed(cur.WindSpeed, true)
	if err != nil {
		return IndicatorsView{}, fmt.Errorf("wind speed: %w", err)
	}

	return IndicatorsView{
		Temperature:   temp,
		FeelsLike:     feels,
		WindSpeed:     wind,
		WindDirection: indicators.WindDirection(cur.WindDeg, false),
		WindHeading:   indicators.WindDirection(cur.WindDeg, true),
		Visibility:    indicators.Visibility(cur.Visibility),
		Pressure:      indicators.Pressure(cur.Pressure, indicators.DefaultGaugeTicks),
		AirQuality:    indicators.Level(indicators.AQI, cur.AirQuality),
		UVIndex:       indicators.Level(indicators.UVI, cur.UVI),
	}, nil
}

// prepare loads the latest forecast for loc together with the unit converter
// and clock for the request.
func (s *Service) prepare(loc weather.Location, opts Options) (weather.Snapshot, units.Converter, *timefmt.Formatter, error) {
	snap, err := s.store.GetLatest(loc)
	if err != nil {
		return weather.Snapshot{}, units.Converter{}, nil, err
	}

	sys := s.defaults.Units
	if opts.Units != "" {
		sys = units.System(opts.Units)
	}
	conv, err := units.NewConverter(sys)
	if err != nil {
		return weather.Snapshot{}, units.Converter{}, nil, err
	}

	tz := snap.Forecast.Timezone
	if tz == "" {
		tz = s.defaults.Timezone
	}
	clock, err := timefmt.New(tz)
	if err != nil {
		log.Printf("ERROR: stored forecast %s has bad timezone: %v", snap.ID, err)
		return weather.Snapshot{}, units.Converter{}, nil, err
	}
	return snap, conv, clock, nil
}

func (s *Service) dimensions(opts Options, def chart.Dimensions) chart.Dimensions {
	d := chart.Dimensions{Width: opts.Width, Height: opts.Height}
	if d.Valid() {
		return d
	}
	return def
}

func checkSamples(series string, n int) error {
	switch {
	case n == 0:
		return fmt.Errorf("%s: %w", series, ErrNoSeries)
	case n < minSamples:
		return fmt.Errorf("%s has %d sample: %w", series, n, ErrTooFewSamples)
	}
	return nil
}
