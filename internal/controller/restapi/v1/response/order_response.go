package response

type Error struct {
	Error string `json:"error"`
}

type CreateOrder struct {
	OrderID          string `json:"order_id"`
	Status           string `json:"status"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	PaymentReference string `json:"payment_reference"`
	KeyID            string `json:"key_id"`
	CreatedAt        string `json:"created_at"`
}

type Order struct {
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	Tier       string `json:"tier"`
	License    string `json:"license"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	PreviewURL string `json:"preview_url"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
}

type Callback struct {
	Result string `json:"result"` // accepted, duplicate, rejected
}

type Variant struct {
	Tier    string `json:"tier"`
	License string `json:"license"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Price   int64  `json:"price"`
	Terms   string `json:"terms"`
}

type Product struct {
	ProductID   string    `json:"product_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variants    []Variant `json:"variants"`
}
