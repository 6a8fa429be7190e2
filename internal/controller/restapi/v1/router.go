package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pixelshop/backend/internal/usecase"
	"github.com/pixelshop/backend/pkg/logger"
)

func NewOrderRoutes(apiV1Group fiber.Router, orders usecase.OrderUseCase, catalog usecase.CatalogUseCase, l logger.Interface) {
	r := &V1{orders: orders, catalog: catalog, logger: l}

	{
		// Buyer API
		apiV1Group.Post("/orders", r.createOrder)
		apiV1Group.Get("/orders/mine", r.listMyOrders)
		apiV1Group.Get("/orders/:id/asset", r.downloadAsset)

		// Catalog
		apiV1Group.Get("/products/:id", r.getProduct)
		apiV1Group.Get("/products/:id/preview", r.getProductPreview)

		// Gateway webhook (server-to-server)
		apiV1Group.Post("/payments/callback", r.paymentCallback)
	}
}
