package repos

import (
	"milkrun/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ClientRepo struct{ db *sqlx.DB }

func NewClientRepo(db *sqlx.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientCols = `id, name, address, phone, COALESCE(email,'') AS email, zone, tier, active`

func (r *ClientRepo) List() ([]domain.Client, error) {
	var out []domain.Client
	err := r.db.Select(&out, `SELECT `+clientCols+` FROM clients ORDER BY name`)
	return out, err
}

func (r *ClientRepo) Get(id string) (domain.Client, error) {
	var c domain.Client
	err := r.db.Get(&c, `SELECT `+clientCols+` FROM clients WHERE id = ?`, id)
	return c, err
}

func (r *ClientRepo) Create(c domain.Client) error {
	_, err := r.db.Exec(`
	  INSERT INTO clients(id, name, address, phone, email, zone, tier, active)
	  VALUES(?, ?, ?, ?, NULLIF(?,''), ?, ?, ?)
	`, c.ID, c.Name, c.Address, c.Phone, c.Email, c.Zone, c.Tier, c.Active)
	return err
}

func (r *ClientRepo) Update(c domain.Client) error {
	_, err := r.db.Exec(`
	  UPDATE clients
	  SET name=?, address=?, phone=?, email=NULLIF(?,''), zone=?, tier=?, active=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, c.Name, c.Address, c.Phone, c.Email, c.Zone, c.Tier, c.Active, c.ID)
	return err
}

func (r *ClientRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM clients WHERE id=?`, id)
	return err
}

// HasOrders reports whether any order references the client.
func (r *ClientRepo) HasOrders(id string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE client_id=?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}
