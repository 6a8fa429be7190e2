package v1

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/controller/restapi/v1/response"
	"github.com/pixelshop/backend/pkg/types/errs"
)

// @Summary  	Get product
// @Description Catalog entry with the priced variants it offers
// @Tags 		products
// @Produce 	json
// @Param 		id path string true "Product ID (uuid)"
// @Success 	200 {object} response.Product
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Product not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/products/{id} [get]
func (r *V1) getProduct(ctx *fiber.Ctx) error {
	productID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	product, offers, err := r.catalog.Product(ctx.UserContext(), productID)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "product not found")
		}
		r.logger.Error(err, "restapi - v1 - getProduct")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	resp := response.Product{
		ProductID:   product.ID.String(),
		Title:       product.Title,
		Description: product.Description,
		Variants:    make([]response.Variant, 0, len(offers)),
	}
	for _, offer := range offers {
		resp.Variants = append(resp.Variants, response.Variant{
			Tier:    string(offer.Tier),
			License: string(offer.License),
			Width:   offer.Width,
			Height:  offer.Height,
			Price:   offer.Price,
			Terms:   offer.Terms,
		})
	}

	return ctx.JSON(resp)
}

// @Summary  	Product preview
// @Description Watermarked preview bytes, always allowed
// @Tags 		products
// @Produce 	image/jpeg
// @Param 		id path string true "Product ID (uuid)"
// @Success 	200 {file} 	binary
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Product not found"
// @Failure 	502 {object} response.Error "Asset service unavailable"
// @Router 		/v1/products/{id}/preview [get]
func (r *V1) getProductPreview(ctx *fiber.Ctx) error {
	productID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	data, contentType, err := r.catalog.Preview(ctx.UserContext(), productID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRecordNotFound):
			return errorResponse(ctx, http.StatusNotFound, "product not found")
		case errors.Is(err, errs.ErrUpstreamUnavailable):
			r.logger.Error(err, "restapi - v1 - getProductPreview")

			return errorResponse(ctx, http.StatusBadGateway, "asset service unavailable, try again")
		}
		r.logger.Error(err, "restapi - v1 - getProductPreview")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	ctx.Set(fiber.HeaderContentType, contentType)

	return ctx.Send(data)
}
