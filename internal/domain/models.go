package domain

// Client price tiers.
const (
	TierFactory   = "FACTORY"
	TierWholesale = "WHOLESALE"
	TierRetail    = "RETAIL"
)

// Order statuses.
const (
	StatusPending   = "PENDING"
	StatusDelivered = "DELIVERED"
	StatusCancelled = "CANCELLED"
)

type Client struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email,omitempty"`
	Zone    string `db:"zone" json:"zone"`
	Tier    string `db:"tier" json:"tier"`
	Active  bool   `db:"active" json:"active"`
}

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
}

type Product struct {
	ID          string `db:"id" json:"id"`
	CategoryID  string `db:"category_id" json:"categoryId"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	Image       string `db:"image" json:"image,omitempty"`
	Active      bool   `db:"active" json:"active"`
}

type Price struct {
	ID         string  `db:"id" json:"id"`
	CategoryID string  `db:"category_id" json:"categoryId"`
	Tier       string  `db:"tier" json:"tier"`
	Value      float64 `db:"value" json:"value"`
	StartsAt   string  `db:"starts_at" json:"startsAt"`
	EndsAt     string  `db:"ends_at" json:"endsAt,omitempty"`
	Active     bool    `db:"active" json:"active"`
}

type Order struct {
	ID       string  `db:"id" json:"id"`
	ClientID string  `db:"client_id" json:"clientId"`
	RoundID  string  `db:"round_id" json:"roundId,omitempty"`
	Status   string  `db:"status" json:"status"`
	Paid     bool    `db:"paid" json:"paid"`
	Note     string  `db:"note" json:"note,omitempty"`
	Total    float64 `db:"total" json:"total"`
	PlacedAt string  `db:"placed_at" json:"placedAt"`
}

type OrderItem struct {
	OrderID   string  `db:"order_id" json:"-"`
	ProductID string  `db:"product_id" json:"productId"`
	PriceID   string  `db:"price_id" json:"priceId"`
	Qty       int     `db:"qty" json:"qty"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
}

type DeliveryRound struct {
	ID     string `db:"id" json:"id"`
	Zone   string `db:"zone" json:"zone"`
	Date   string `db:"round_date" json:"date"`
	Active bool   `db:"active" json:"active"`
	Note   string `db:"note" json:"note,omitempty"`
}
