// Package indicators holds the small lookup tables and gauges that decorate
// the weather charts: compass directions, visibility ranges, the pressure
// dial, AQI/UVI levels and the temperature and precipitation color bands.
package indicators
