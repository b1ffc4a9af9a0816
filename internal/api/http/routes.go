package httpapi

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pradeeppeddineni/weather-app/internal/news"
	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

var validate = validator.New()

// citySummary is one row of the dashboard's city list.
type citySummary struct {
	City    weather.City               `json:"city"`
	Current *weather.CurrentConditions `json:"current"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, newsFetcher *news.Fetcher) {
	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		cities := service.Cities()
		out := make([]citySummary, 0, len(cities))
		for _, city := range cities {
			out = append(out, citySummary{
				City:    city,
				Current: service.Summary(city.Name),
			})
		}
		return c.JSON(fiber.Map{"cities": out})
	})

	v1.Get("/cities/:name", func(c *fiber.Ctx) error {
		city, bundle, current, err := service.Detail(cityParam(c))
		if err != nil {
			if errors.Is(err, weather.ErrUnknownCity) {
				return fiber.NewError(fiber.StatusNotFound, "unknown city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load city")
		}
		return c.JSON(fiber.Map{
			"city":    city,
			"current": current,
			"bundle":  bundle,
		})
	})

	v1.Post("/cities", func(c *fiber.Ctx) error {
		var req addCityRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		city, err := service.AddCity(c.Context(), weather.GeoResult{
			Name: req.Name,
			Lat:  req.Lat,
			Lon:  req.Lon,
		})
		if err != nil {
			if errors.Is(err, weather.ErrCityExists) {
				return fiber.NewError(fiber.StatusConflict, "city already added")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to add city")
		}
		return c.Status(fiber.StatusCreated).JSON(city)
	})

	v1.Delete("/cities/:name", func(c *fiber.Ctx) error {
		if err := service.RemoveCity(cityParam(c)); err != nil {
			if errors.Is(err, weather.ErrUnknownCity) {
				return fiber.NewError(fiber.StatusNotFound, "unknown city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to remove city")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/cities/:name/refresh", func(c *fiber.Ctx) error {
		if err := service.Refresh(c.Context(), cityParam(c)); err != nil {
			if errors.Is(err, weather.ErrUnknownCity) {
				return fiber.NewError(fiber.StatusNotFound, "unknown city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to refresh city")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/search", func(c *fiber.Ctx) error {
		req := searchQuery{Query: c.Query("q")}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "q must be at least 2 characters")
		}

		results, err := service.Search(c.Context(), req.Query)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "search failed")
		}
		return c.JSON(fiber.Map{"results": results})
	})

	v1.Get("/news", func(c *fiber.Ctx) error {
		return c.JSON(newsFetcher.Fetch(c.Context()))
	})
}

// cityParam returns the :name path parameter with percent-encoding
// undone, since city names may contain spaces.
func cityParam(c *fiber.Ctx) string {
	raw := c.Params("name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// addCityRequest is the body for adding a city, normally echoed from a
// geocoding candidate.
type addCityRequest struct {
	Name string  `json:"name" validate:"required"`
	Lat  float64 `json:"lat" validate:"required"`
	Lon  float64 `json:"lon" validate:"required"`
}

// searchQuery holds the city-search query string.
type searchQuery struct {
	Query string `validate:"required,min=2"`
}
