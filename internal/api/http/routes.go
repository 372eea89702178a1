package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatherfit/weather-outfit-service/internal/apperrors"
	"github.com/weatherfit/weather-outfit-service/internal/hazard"
	"github.com/weatherfit/weather-outfit-service/internal/media"
	"github.com/weatherfit/weather-outfit-service/internal/outfit"
	"github.com/weatherfit/weather-outfit-service/internal/weather"
)

var validate = validator.New()

// Deps bundles the core services the HTTP handlers call into.
type Deps struct {
	Weather *weather.Service
	Hazards *hazard.Client
	Media   *media.Resolver
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		req, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, err := deps.Weather.Current(c.Context(), req.City)
		if err != nil {
			return toHTTPError(err, "failed to fetch current weather")
		}

		return c.JSON(rec)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		req, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		series, err := deps.Weather.Forecast(c.Context(), req.City)
		if err != nil {
			return toHTTPError(err, "failed to fetch forecast")
		}

		return c.JSON(fiber.Map{
			"city": req.City,
			"list": series,
		})
	})

	v1.Get("/outfit", func(c *fiber.Ctx) error {
		var req outfitQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		conditions, err := deps.Weather.FetchConditions(c.Context(), req.City)
		if err != nil {
			return toHTTPError(err, "failed to fetch weather")
		}

		category := outfit.Classify(conditions.Current)
		recommendation := outfit.Recommend(conditions.Current)
		palette := outfit.PaletteFor(conditions.Current)

		resp := fiber.Map{
			"city":           req.City,
			"weather":        conditions.Current,
			"forecast":       conditions.Forecast,
			"category":       category,
			"recommendation": recommendation,
			"palette":        palette,
		}

		// Media degrades to a placeholder marker, never an error response.
		if descriptor, err := deps.Media.Resolve(c.Context(), category, media.Gender(req.Gender)); err == nil {
			resp["media"] = descriptor
		} else {
			resp["mediaUnavailable"] = true
		}

		return c.JSON(resp)
	})

	v1.Get("/hazards", func(c *fiber.Ctx) error {
		city := c.Query("city")

		report, err := deps.Hazards.FetchAll(c.Context(), city)
		if err != nil {
			return toHTTPError(err, "failed to fetch hazard bulletins")
		}

		return c.JSON(report)
	})

	v1.Get("/typhoons", func(c *fiber.Ctx) error {
		cyclones, err := deps.Hazards.Typhoons(c.Context())
		if err != nil {
			return toHTTPError(err, "failed to fetch typhoon records")
		}

		return c.JSON(fiber.Map{
			"typhoons": cyclones,
		})
	})
}

// toHTTPError maps a typed application error onto the fiber error the
// central handler serializes.
func toHTTPError(err error, fallback string) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return fiber.NewError(appErr.HTTPStatus, appErr.Message)
	}
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

// cityQuery holds the query parameter identifying a city.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	var q cityQuery
	q.City = c.Query("city")

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// outfitQuery holds query parameters for the outfit endpoint.
type outfitQuery struct {
	City   string `validate:"required"`
	Gender string `validate:"required,oneof=male female"`
}

func (o *outfitQuery) bind(c *fiber.Ctx) error {
	o.City = c.Query("city")
	o.Gender = c.Query("gender", "male")
	return validate.Struct(o)
}
