package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-charts/internal/chart"
	"github.com/i474232898/weather-charts/internal/service"
	"github.com/i474232898/weather-charts/internal/store"
	"github.com/i474232898/weather-charts/internal/units"
	"github.com/i474232898/weather-charts/internal/weather"
)

// 2024-06-12 00:00:00 UTC
const midnightJun12 = 1718150400

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	svc := service.New(store.NewMemoryStore(10, time.Hour), service.Defaults{
		Units:            units.Metric,
		Timezone:         "UTC",
		Hourly:           chart.DefaultHourlyDimensions,
		Precipitation:    chart.DefaultPrecipitationDimensions,
		Popup:            chart.DefaultPopupDimensions,
		TimelineInterval: chart.DefaultTimelineInterval,
	})
	RegisterRoutes(app, svc)
	return app
}

func testForecast(hours int) weather.Forecast {
	f := weather.Forecast{
		Timezone: "UTC",
		Current: weather.Current{
			Sunrise: midnightJun12 + 6*3600,
			Sunset:  midnightJun12 + 18*3600,
			Temp:    290,
		},
	}
	for i := 0; i < hours; i++ {
		f.Hourly = append(f.Hourly, weather.HourlyRecord{
			Timestamp:   midnightJun12 + int64(i)*3600,
			Temperature: 285 + float64(i),
		})
	}
	for i := 0; i < 30; i++ {
		f.Minutely = append(f.Minutely, weather.PrecipitationSample{Timestamp: midnightJun12 + int64(i)*60})
	}
	f.Daily = []weather.DailyRecord{{
		Timestamp: midnightJun12,
		Temp:      weather.DailyTemperatures{Day: 295, Min: 284, Max: 296, Night: 284, Evening: 290, Morning: 287},
	}}
	return f
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		req = httptest.NewRequest(method, target, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func saveForecast(t *testing.T, app *fiber.App, f weather.Forecast) string {
	t.Helper()
	resp, body := do(t, app, http.MethodPut, "/api/v1/forecasts?city=Paris&country=FR", f)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d (%v)", http.StatusCreated, resp.StatusCode, body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("response has no id: %v", body)
	}
	return id
}

func TestSaveForecastValidation(t *testing.T) {
	app := newTestApp()

	resp, body := do(t, app, http.MethodPut, "/api/v1/forecasts?city=Paris", testForecast(3))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing country: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	if body["error"] != true || body["message"] == "" {
		t.Errorf("unexpected error body %v", body)
	}

	bad := testForecast(3)
	bad.Hourly[1].Temperature = 0
	resp, _ = do(t, app, http.MethodPut, "/api/v1/forecasts?city=Paris&country=FR", bad)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero Kelvin: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	tz := testForecast(3)
	tz.Timezone = "Mars/Olympus"
	resp, _ = do(t, app, http.MethodPut, "/api/v1/forecasts?city=Paris&country=FR", tz)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown timezone: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestGetForecastByID(t *testing.T) {
	app := newTestApp()
	id := saveForecast(t, app, testForecast(3))

	resp, body := do(t, app, http.MethodGet, "/api/v1/forecasts/"+id, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if body["id"] != id {
		t.Errorf("got snapshot %v, want %s", body["id"], id)
	}

	resp, _ = do(t, app, http.MethodGet, "/api/v1/forecasts/does-not-exist", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestHistory(t *testing.T) {
	app := newTestApp()
	saveForecast(t, app, testForecast(3))

	resp, _ := do(t, app, http.MethodGet, "/api/v1/forecasts/history?city=Paris&country=FR", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing range: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	now := time.Now().Unix()
	from, to := strconv.FormatInt(now-60, 10), strconv.FormatInt(now+60, 10)
	resp, body := do(t, app, http.MethodGet, "/api/v1/forecasts/history?city=Paris&country=FR&from="+from+"&to="+to, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if snaps, _ := body["snapshots"].([]any); len(snaps) != 1 {
		t.Errorf("expected one snapshot, got %v", body["snapshots"])
	}

	resp, _ = do(t, app, http.MethodGet, "/api/v1/forecasts/history?city=Paris&country=FR&from="+to+"&to="+from, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("inverted range: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestCharts(t *testing.T) {
	app := newTestApp()
	saveForecast(t, app, testForecast(6))

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"hourly", "/api/v1/charts/hourly?city=Paris&country=FR", http.StatusOK},
		{"hourly imperial custom size", "/api/v1/charts/hourly?city=Paris&country=FR&units=imperial&width=900&height=200", http.StatusOK},
		{"hourly bad units", "/api/v1/charts/hourly?city=Paris&country=FR&units=kelvin", http.StatusBadRequest},
		{"hourly unknown location", "/api/v1/charts/hourly?city=Oslo&country=NO", http.StatusNotFound},
		{"precipitation", "/api/v1/charts/precipitation?city=Paris&country=FR&interval=10", http.StatusOK},
		{"precipitation negative width", "/api/v1/charts/precipitation?city=Paris&country=FR&width=-1", http.StatusBadRequest},
		{"daily", "/api/v1/charts/daily?city=Paris&country=FR&day=0", http.StatusOK},
		{"daily out of range", "/api/v1/charts/daily?city=Paris&country=FR&day=9", http.StatusBadRequest},
		{"daily unparsable day", "/api/v1/charts/daily?city=Paris&country=FR&day=monday", http.StatusBadRequest},
		{"missing city", "/api/v1/charts/daily?country=FR", http.StatusBadRequest},
		{"sun", "/api/v1/sun?city=Paris&country=FR", http.StatusOK},
		{"indicators", "/api/v1/indicators?city=Paris&country=FR", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, http.MethodGet, tt.target, nil)
			if resp.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d (%v)", tt.status, resp.StatusCode, body)
			}
			if tt.status != http.StatusOK && body["error"] != true {
				t.Errorf("error response without error flag: %v", body)
			}
		})
	}
}

func TestHourlyChartBody(t *testing.T) {
	app := newTestApp()
	saveForecast(t, app, testForecast(6))

	resp, body := do(t, app, http.MethodGet, "/api/v1/charts/hourly?city=Paris&country=FR", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	coords, _ := body["coords"].([]any)
	if len(coords) != 6 {
		t.Errorf("expected 6 coords, got %d", len(coords))
	}
	curve, _ := body["curve"].(map[string]any)
	if main, _ := curve["mainCurve"].(string); main == "" || main[0] != 'M' {
		t.Errorf("unexpected curve %v", curve)
	}
}

func TestTooFewSamples(t *testing.T) {
	app := newTestApp()
	saveForecast(t, app, testForecast(1))

	resp, _ := do(t, app, http.MethodGet, "/api/v1/charts/hourly?city=Paris&country=FR", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestStoredLocationSurvivesLaterRequests(t *testing.T) {
	app := newTestApp()
	id := saveForecast(t, app, testForecast(3))

	for i := 0; i < 20; i++ {
		do(t, app, http.MethodGet, "/api/v1/charts/hourly?city=XXXXX&country=YY", nil)
		do(t, app, http.MethodGet, "/api/v1/sun?city=ZZZZZ&country=QQ", nil)
	}

	resp, body := do(t, app, http.MethodGet, "/api/v1/forecasts/"+id, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	loc, _ := body["location"].(map[string]any)
	if loc["city"] != "Paris" || loc["country"] != "FR" {
		t.Fatalf("stored location changed after later requests: %v", loc)
	}

	now := time.Now().Unix()
	from, to := strconv.FormatInt(now-60, 10), strconv.FormatInt(now+60, 10)
	_, body = do(t, app, http.MethodGet, "/api/v1/forecasts/history?city=Paris&country=FR&from="+from+"&to="+to, nil)
	snaps, _ := body["snapshots"].([]any)
	if len(snaps) != 1 {
		t.Fatalf("expected one snapshot in history, got %v", body["snapshots"])
	}
	first, _ := snaps[0].(map[string]any)
	if loc, _ := first["location"].(map[string]any); loc["city"] != "Paris" || loc["country"] != "FR" {
		t.Errorf("history location changed after later requests: %v", loc)
	}
}
