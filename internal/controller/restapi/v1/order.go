package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/controller/restapi/v1/response"
	"github.com/pixelshop/backend/internal/entity"
	"github.com/pixelshop/backend/pkg/types/errs"
)

type createOrderRequest struct {
	ProductID string `json:"product_id"`
	Tier      string `json:"tier"`
	License   string `json:"license"`
}

// @Summary  	Create order
// @Description Resolves the variant, opens a payment intent and records a pending order
// @Tags 		orders
// @Accept 		json
// @Produce 	json
// @Param 		X-Buyer-Id header string true "Buyer id (uuid)"
// @Param 		request body createOrderRequest true "Product and variant"
// @Success 	201 {object} response.CreateOrder
// @Failure 	400 {object} response.Error "Invalid parameters"
// @Failure 	401 {object} response.Error "Missing identity"
// @Failure 	404 {object} response.Error "Unknown product or tier"
// @Failure 	422 {object} response.Error "License not offered"
// @Failure 	502 {object} response.Error "Payment gateway unavailable"
// @Router 		/v1/orders [post]
func (r *V1) createOrder(ctx *fiber.Ctx) error {
	buyer, ok := buyerID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusUnauthorized, "buyer identity is required")
	}

	var req createOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid product_id")
	}

	tier, ok := entity.ParseResolutionTier(req.Tier)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid tier. Allowed: small, medium, large, original")
	}

	license, ok := entity.ParseLicenseType(req.License)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid license. Allowed: personal, commercial")
	}

	order, intent, err := r.orders.Checkout(ctx.UserContext(), buyer, productID, entity.VariantKey{Tier: tier, License: license})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRecordNotFound):
			return errorResponse(ctx, http.StatusNotFound, "product or variant not found")
		case errors.Is(err, errs.ErrVariantUnavailable):
			return errorResponse(ctx, http.StatusUnprocessableEntity, "license not offered for this product")
		case errors.Is(err, errs.ErrUpstreamUnavailable):
			r.logger.Error(err, "restapi - v1 - createOrder")

			return errorResponse(ctx, http.StatusBadGateway, "payment gateway unavailable, try again")
		}
		r.logger.Error(err, "restapi - v1 - createOrder")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	resp := response.CreateOrder{
		OrderID:          order.ID.String(),
		Status:           string(order.Status),
		Amount:           order.Amount,
		Currency:         intent.Currency,
		PaymentReference: intent.Reference,
		KeyID:            intent.KeyID,
		CreatedAt:        order.CreatedAt.Format(time.RFC3339),
	}

	return ctx.Status(http.StatusCreated).JSON(resp)
}

// @Summary  	List my orders
// @Description Returns the buyer's orders, newest first, with preview URLs
// @Tags 		orders
// @Produce 	json
// @Param 		X-Buyer-Id header string true "Buyer id (uuid)"
// @Success 	200 {object} response.OrderList
// @Failure 	401 {object} response.Error "Missing identity"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/orders/mine [get]
func (r *V1) listMyOrders(ctx *fiber.Ctx) error {
	buyer, ok := buyerID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusUnauthorized, "buyer identity is required")
	}

	summaries, err := r.orders.ListByBuyer(ctx.UserContext(), buyer)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - listMyOrders")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	resp := response.OrderList{Orders: make([]response.Order, 0, len(summaries))}
	for _, s := range summaries {
		resp.Orders = append(resp.Orders, response.Order{
			OrderID:    s.Order.ID.String(),
			ProductID:  s.Order.ProductID.String(),
			Tier:       string(s.Order.Variant.Tier),
			License:    string(s.Order.Variant.License),
			Width:      s.Order.Variant.Width,
			Height:     s.Order.Variant.Height,
			Amount:     s.Order.Amount,
			Status:     string(s.Order.Status),
			PreviewURL: s.PreviewURL,
			CreatedAt:  s.Order.CreatedAt.Format(time.RFC3339),
			UpdatedAt:  s.Order.UpdatedAt.Format(time.RFC3339),
		})
	}

	return ctx.JSON(resp)
}

// @Summary  	Download purchased asset
// @Description Full-fidelity bytes for the owning buyer's completed order
// @Tags 		orders
// @Produce 	image/jpeg,image/png
// @Param 		X-Buyer-Id header string true "Buyer id (uuid)"
// @Param 		id path string true "Order ID (uuid)"
// @Success 	200 {file} 	binary
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	401 {object} response.Error "Missing identity"
// @Failure 	403 {object} response.Error "Not available"
// @Failure 	404 {object} response.Error "Order not found"
// @Failure 	502 {object} response.Error "Asset service unavailable"
// @Router 		/v1/orders/{id}/asset [get]
func (r *V1) downloadAsset(ctx *fiber.Ctx) error {
	buyer, ok := buyerID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusUnauthorized, "buyer identity is required")
	}

	orderID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	data, contentType, err := r.orders.DownloadAsset(ctx.UserContext(), buyer, orderID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrForbidden):
			// same answer for "not mine" and "not paid"
			return errorResponse(ctx, http.StatusForbidden, "not available")
		case errors.Is(err, errs.ErrRecordNotFound):
			return errorResponse(ctx, http.StatusNotFound, "order not found")
		case errors.Is(err, errs.ErrUpstreamUnavailable):
			r.logger.Error(err, "restapi - v1 - downloadAsset")

			return errorResponse(ctx, http.StatusBadGateway, "asset service unavailable, try again")
		}
		r.logger.Error(err, "restapi - v1 - downloadAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	ctx.Set(fiber.HeaderContentType, contentType)

	return ctx.Send(data)
}
