package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/pixelshop/backend/config"
	v1 "github.com/pixelshop/backend/internal/controller/restapi/v1"
	"github.com/pixelshop/backend/internal/usecase"
	"github.com/pixelshop/backend/pkg/logger"
)

// @title Pixelshop fulfillment
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(app *fiber.App, cfg *config.Config, orders usecase.OrderUseCase, catalog usecase.CatalogUseCase, l logger.Interface) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewOrderRoutes(apiV1Group, orders, catalog, l)
	}
}
