package repos

import (
	"milkrun/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PriceRepo struct{ db *sqlx.DB }

func NewPriceRepo(db *sqlx.DB) *PriceRepo { return &PriceRepo{db: db} }

const priceCols = `id, category_id, tier, value, starts_at,
  COALESCE(ends_at,'') AS ends_at, active`

func (r *PriceRepo) List(categoryID string) ([]domain.Price, error) {
	var out []domain.Price
	if categoryID != "" {
		err := r.db.Select(&out, `SELECT `+priceCols+` FROM prices WHERE category_id=?
		  ORDER BY tier, starts_at DESC`, categoryID)
		return out, err
	}
	err := r.db.Select(&out, `SELECT `+priceCols+` FROM prices ORDER BY category_id, tier, starts_at DESC`)
	return out, err
}

func (r *PriceRepo) Get(id string) (domain.Price, error) {
	var p domain.Price
	err := r.db.Get(&p, `SELECT `+priceCols+` FROM prices WHERE id = ?`, id)
	return p, err
}

// ActiveFor returns the single active price for (category, tier).
// Activation guarantees at most one such row, so this is a direct lookup.
func (r *PriceRepo) ActiveFor(categoryID, tier string) (domain.Price, error) {
	var p domain.Price
	err := r.db.Get(&p, `SELECT `+priceCols+` FROM prices
	  WHERE category_id=? AND tier=? AND active=1`, categoryID, tier)
	return p, err
}

// Activate closes out the previous active (category, tier) price and inserts
// the new row as active, in one transaction. The partial unique index on
// (category_id, tier) WHERE active=1 backstops concurrent activations.
func (r *PriceRepo) Activate(p domain.Price) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE prices SET active=0, ends_at=CURRENT_TIMESTAMP
	  WHERE category_id=? AND tier=? AND active=1
	`, p.CategoryID, p.Tier); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  INSERT INTO prices(id, category_id, tier, value, starts_at, ends_at, active)
	  VALUES(?, ?, ?, ?, ?, NULLIF(?,''), 1)
	`, p.ID, p.CategoryID, p.Tier, p.Value, p.StartsAt, p.EndsAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PriceRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM prices WHERE id=?`, id)
	return err
}

// Referenced reports whether any order item references the price.
func (r *PriceRepo) Referenced(id string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM order_items WHERE price_id=?`, id)
	return n > 0, err
}
