package repos

import (
	"milkrun/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, client_id, COALESCE(round_id,'') AS round_id, status, paid,
  COALESCE(note,'') AS note, total, placed_at`

// ItemRow is an order line joined with its product name for display.
type ItemRow struct {
	ProductID   string  `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	PriceID     string  `db:"price_id" json:"priceId"`
	Qty         int     `db:"qty" json:"qty"`
	UnitPrice   float64 `db:"unit_price" json:"unitPrice"`
	Subtotal    float64 `db:"subtotal" json:"subtotal"`
}

// CreateWithItems inserts the order header and its lines in one transaction.
func (r *OrderRepo) CreateWithItems(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, client_id, round_id, status, paid, note, total, placed_at)
	  VALUES(?, ?, NULLIF(?,''), ?, ?, NULLIF(?,''), ?, CURRENT_TIMESTAMP)
	`, o.ID, o.ClientID, o.RoundID, o.Status, o.Paid, o.Note, o.Total); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, price_id, qty, unit_price, subtotal)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, it.PriceID, it.Qty, it.UnitPrice, it.Subtotal); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, err
}

func (r *OrderRepo) Items(orderID string) ([]ItemRow, error) {
	var out []ItemRow
	err := r.db.Select(&out, `
	  SELECT oi.product_id, p.name AS product_name, oi.price_id, oi.qty, oi.unit_price, oi.subtotal
	  FROM order_items oi
	  JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY p.name
	`, orderID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  ORDER BY datetime(placed_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByClient(clientID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE client_id = ?
	  ORDER BY datetime(placed_at) DESC
	`, clientID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status=? WHERE id=?`, status, id)
	return err
}

func (r *OrderRepo) UpdatePaid(id string, paid bool) error {
	_, err := r.db.Exec(`UPDATE orders SET paid=? WHERE id=?`, paid, id)
	return err
}

func (r *OrderRepo) UpdateNote(id, note string) error {
	_, err := r.db.Exec(`UPDATE orders SET note=NULLIF(?,'') WHERE id=?`, note, id)
	return err
}

// SetRound links the order to a round; empty roundID unlinks it.
func (r *OrderRepo) SetRound(id, roundID string) error {
	_, err := r.db.Exec(`UPDATE orders SET round_id=NULLIF(?,'') WHERE id=?`, roundID, id)
	return err
}
