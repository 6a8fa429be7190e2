package entity

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID      uuid.UUID `json:"id"`
	BuyerID uuid.UUID `json:"buyer_id"`

	ProductID uuid.UUID `json:"product_id"`

	// Variant is a copy of the descriptor taken at purchase time. A later
	// catalog change must never alter what was sold.
	Variant VariantDescriptor `json:"variant"`

	// PaymentReference is the gateway-issued intent id, unique per order.
	PaymentReference string `json:"payment_reference"`

	Status OrderStatus `json:"status"`

	// Amount equals Variant.Price at creation and is never mutated.
	Amount int64 `json:"amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Downloadable reports whether full-fidelity delivery is allowed for the
// given requester. Derived on every request, never persisted.
func (o *Order) Downloadable(buyerID uuid.UUID) bool {
	return o.Status == OrderCompleted && o.BuyerID == buyerID
}
