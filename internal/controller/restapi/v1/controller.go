package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/controller/restapi/v1/response"
	"github.com/pixelshop/backend/internal/usecase"
	"github.com/pixelshop/backend/pkg/logger"
)

const _buyerIDHeader = "X-Buyer-Id"

type V1 struct {
	orders  usecase.OrderUseCase
	catalog usecase.CatalogUseCase
	logger  logger.Interface
}

func errorResponse(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(response.Error{Error: msg})
}

// buyerID reads the identity injected by the auth front.
func buyerID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Get(_buyerIDHeader))
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}
