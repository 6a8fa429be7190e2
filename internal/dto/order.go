package dto

import "github.com/pixelshop/backend/internal/entity"

// OrderSummary is an order with its always-allowed preview URL attached.
type OrderSummary struct {
	Order      *entity.Order `json:"order"`
	PreviewURL string        `json:"preview_url"`
}
