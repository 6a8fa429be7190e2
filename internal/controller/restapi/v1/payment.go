package v1

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/pixelshop/backend/internal/controller/restapi/v1/response"
	"github.com/pixelshop/backend/internal/controller/restapi/v1/validate"
	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/pkg/types/errs"
)

const _signatureHeader = "X-Razorpay-Signature"

const (
	_resultRejected = "rejected"
)

// @Summary  	Payment gateway callback
// @Description Server-to-server webhook. Always acknowledged with 200 so the gateway stops redelivering; the result field distinguishes accepted, duplicate and rejected deliveries.
// @Tags 		payments
// @Accept 		json
// @Produce 	json
// @Param 		X-Razorpay-Signature header string true "HMAC-SHA256 of the raw body"
// @Success 	200 {object} response.Callback
// @Failure 	400 {object} response.Error "Missing signature or oversized body"
// @Router 		/v1/payments/callback [post]
func (r *V1) paymentCallback(ctx *fiber.Ctx) error {
	signature := ctx.Get(_signatureHeader)
	if signature == "" {
		return errorResponse(ctx, http.StatusBadRequest, "signature is required")
	}

	body := ctx.Body()
	if len(body) == 0 || len(body) > validate.MaxCallbackBytes {
		return errorResponse(ctx, http.StatusBadRequest, "invalid body")
	}

	// the body is copied: fiber reuses its buffers after the handler returns
	event := dto.CallbackEvent{
		Body:      append([]byte(nil), body...),
		Signature: signature,
	}

	result, err := r.orders.Confirm(ctx.UserContext(), event)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidSignature):
			// flagged for operational review: someone is forging callbacks
			// or the webhook secret drifted
			r.logger.Warn("restapi - v1 - paymentCallback - invalid signature rejected")
		case errors.Is(err, errs.ErrRecordNotFound):
			r.logger.Warn("restapi - v1 - paymentCallback - unknown payment reference rejected")
		default:
			r.logger.Error(err, "restapi - v1 - paymentCallback")

			// storage trouble: let the gateway redeliver
			return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
		}

		return ctx.JSON(response.Callback{Result: _resultRejected})
	}

	return ctx.JSON(response.Callback{Result: string(result)})
}
