package dto

// PaymentIntent is the gateway-side handle handed to the checkout widget.
type PaymentIntent struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	KeyID     string `json:"key_id"`
}

// CallbackEvent carries a gateway webhook delivery as received: the raw body
// (the signature is computed over it) plus the signature header.
type CallbackEvent struct {
	Body      []byte
	Signature string
}

// CallbackPayload is the decoded webhook body.
type CallbackPayload struct {
	PaymentReference string `json:"payment_reference"`
	OrderReference   string `json:"order_reference"`
	Outcome          string `json:"outcome"` // succeeded, failed
}

const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

type CallbackResult string

const (
	CallbackAccepted  CallbackResult = "accepted"
	CallbackDuplicate CallbackResult = "duplicate"
)
