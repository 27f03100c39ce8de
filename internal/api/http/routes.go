package httpapi

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/weather-charts/internal/chart"
	"github.com/i474232898/weather-charts/internal/service"
	"github.com/i474232898/weather-charts/internal/store"
	"github.com/i474232898/weather-charts/internal/timefmt"
	"github.com/i474232898/weather-charts/internal/units"
	"github.com/i474232898/weather-charts/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *service.Service) {
	v1 := app.Group("/api/v1")

	v1.Put("/forecasts", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var forecast weather.Forecast
		if err := c.BodyParser(&forecast); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid forecast body: "+err.Error())
		}
		if err := validate.Struct(forecast); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap, err := svc.Save(locReq.toLocation(), forecast)
		if err != nil {
			return toFiberError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":        snap.ID,
			"location":  snap.Location,
			"timestamp": snap.Timestamp,
		})
	})

	v1.Get("/forecasts/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		snapshots, err := svc.History(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no forecasts stored for requested range")
			}
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"location":  loc,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	v1.Get("/forecasts/:id", func(c *fiber.Ctx) error {
		snap, err := svc.Snapshot(c.Params("id"))
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(snap)
	})

	charts := v1.Group("/charts")

	charts.Get("/hourly", func(c *fiber.Ctx) error {
		q, err := parseChartQuery(c)
		if err != nil {
			return err
		}
		view, err := svc.Hourly(q.toLocation(), q.options())
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(view)
	})

	charts.Get("/precipitation", func(c *fiber.Ctx) error {
		q, err := parseChartQuery(c)
		if err != nil {
			return err
		}
		view, err := svc.Precipitation(q.toLocation(), q.options())
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(view)
	})

	charts.Get("/daily", func(c *fiber.Ctx) error {
		q, err := parseChartQuery(c)
		if err != nil {
			return err
		}
		view, err := svc.Daily(q.toLocation(), q.Day, q.options())
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(view)
	})

	v1.Get("/sun", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		view, err := svc.Sun(locReq.toLocation())
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(view)
	})

	v1.Get("/indicators", func(c *fiber.Ctx) error {
		q, err := parseChartQuery(c)
		if err != nil {
			return err
		}
		view, err := svc.Indicators(q.toLocation(), q.options())
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(view)
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// toFiberError maps service errors to HTTP statuses.
func toFiberError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrNoSeries):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTooFewSamples):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, units.ErrInvalidSystem),
		errors.Is(err, units.ErrInvalidValue),
		errors.Is(err, timefmt.ErrUnknownTimezone),
		errors.Is(err, chart.ErrDayOutOfRange):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR: request failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build chart")
	}
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	// Query values alias the request buffer; the location may outlive it.
	q.City = utils.CopyString(c.Query("city"))
	q.Country = utils.CopyString(c.Query("country"))

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// chartQuery holds query parameters shared by the chart endpoints. Zero
// values fall back to the configured defaults.
type chartQuery struct {
	City     string  `query:"city" validate:"required"`
	Country  string  `query:"country" validate:"required"`
	Units    string  `query:"units" validate:"omitempty,oneof=metric imperial"`
	Width    float64 `query:"width" validate:"omitempty,gt=0"`
	Height   float64 `query:"height" validate:"omitempty,gt=0"`
	Interval int     `query:"interval" validate:"omitempty,gt=0"`
	Day      int     `query:"day" validate:"gte=0"`
}

func parseChartQuery(c *fiber.Ctx) (chartQuery, error) {
	var q chartQuery
	if err := c.QueryParser(&q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "invalid query: "+err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return q, nil
}

func (q chartQuery) toLocation() weather.Location {
	return weather.Location{City: q.City, Country: q.Country}
}

func (q chartQuery) options() service.Options {
	return service.Options{
		Units:    q.Units,
		Width:    q.Width,
		Height:   q.Height,
		Interval: q.Interval,
	}
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
