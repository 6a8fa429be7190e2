package entity

// OrderStatus transitions are monotone: pending is the only non-terminal
// state, completed and failed are terminal.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderFailed    OrderStatus = "failed"
)

func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderFailed
}

// Status is the outbox event lifecycle.
type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Processed  Status = "processed"
	Failed     Status = "failed"
)
