package repos

import (
	"errors"

	"milkrun/internal/domain"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrDuplicateRound is returned when a round already exists for (zone, date).
	ErrDuplicateRound = errors.New("a round already exists for this zone and date")
	// ErrRoundHasDelivered is returned when deleting a round with delivered orders.
	ErrRoundHasDelivered = errors.New("round has delivered orders")
)

type RoundRepo struct{ db *sqlx.DB }

func NewRoundRepo(db *sqlx.DB) *RoundRepo { return &RoundRepo{db: db} }

const roundCols = `id, zone, round_date, active, COALESCE(note,'') AS note`

func (r *RoundRepo) List() ([]domain.DeliveryRound, error) {
	var out []domain.DeliveryRound
	err := r.db.Select(&out, `SELECT `+roundCols+` FROM delivery_rounds ORDER BY round_date, zone`)
	return out, err
}

func (r *RoundRepo) Get(id string) (domain.DeliveryRound, error) {
	var d domain.DeliveryRound
	err := r.db.Get(&d, `SELECT `+roundCols+` FROM delivery_rounds WHERE id = ?`, id)
	return d, err
}

// EarliestUpcoming returns the id of the active round with the soonest
// round_date >= today in the zone, or sql.ErrNoRows.
func (r *RoundRepo) EarliestUpcoming(zone, today string) (string, error) {
	var id string
	err := r.db.Get(&id, `
	  SELECT id FROM delivery_rounds
	  WHERE zone=? AND active=1 AND round_date >= ?
	  ORDER BY round_date ASC
	  LIMIT 1
	`, zone, today)
	return id, err
}

// CreateAndAssign inserts the round and bulk-assigns matching PENDING
// unassigned orders, all in one transaction. The (zone, date) uniqueness
// check runs before any assignment scan.
func (r *RoundRepo) CreateAndAssign(d domain.DeliveryRound) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM delivery_rounds WHERE zone=? AND round_date=?`,
		d.Zone, d.Date); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrDuplicateRound
	}

	if _, err := tx.Exec(`
	  INSERT INTO delivery_rounds(id, zone, round_date, active, note)
	  VALUES(?, ?, ?, ?, NULLIF(?,''))
	`, d.ID, d.Zone, d.Date, d.Active, d.Note); err != nil {
		return 0, err
	}

	var absorbed int64
	if d.Active {
		res, err := tx.Exec(`
		  UPDATE orders SET round_id=?
		  WHERE round_id IS NULL AND status='PENDING'
		    AND client_id IN (SELECT id FROM clients WHERE zone=?)
		`, d.ID, d.Zone)
		if err != nil {
			return 0, err
		}
		absorbed, _ = res.RowsAffected()
	}

	return absorbed, tx.Commit()
}

// UpdateAndReassign updates the round and reconciles its order links: orders
// whose client zone no longer matches are unlinked, then matching PENDING
// unassigned orders are absorbed. One transaction covers the uniqueness
// re-check and both scans.
func (r *RoundRepo) UpdateAndReassign(d domain.DeliveryRound) (unlinked, absorbed int64, err error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `
	  SELECT COUNT(*) FROM delivery_rounds WHERE zone=? AND round_date=? AND id != ?
	`, d.Zone, d.Date, d.ID); err != nil {
		return 0, 0, err
	}
	if n > 0 {
		return 0, 0, ErrDuplicateRound
	}

	if _, err := tx.Exec(`
	  UPDATE delivery_rounds
	  SET zone=?, round_date=?, active=?, note=NULLIF(?,''), updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, d.Zone, d.Date, d.Active, d.Note, d.ID); err != nil {
		return 0, 0, err
	}

	res, err := tx.Exec(`
	  UPDATE orders SET round_id=NULL
	  WHERE round_id=? AND client_id NOT IN (SELECT id FROM clients WHERE zone=?)
	`, d.ID, d.Zone)
	if err != nil {
		return 0, 0, err
	}
	unlinked, _ = res.RowsAffected()

	if d.Active {
		res, err = tx.Exec(`
		  UPDATE orders SET round_id=?
		  WHERE round_id IS NULL AND status='PENDING'
		    AND client_id IN (SELECT id FROM clients WHERE zone=?)
		`, d.ID, d.Zone)
		if err != nil {
			return 0, 0, err
		}
		absorbed, _ = res.RowsAffected()
	}

	return unlinked, absorbed, tx.Commit()
}

// DeleteAndUnlink refuses to delete a round with delivered orders; otherwise
// it unlinks the remaining orders and deletes the round.
func (r *RoundRepo) DeleteAndUnlink(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var delivered int
	if err := tx.Get(&delivered, `
	  SELECT COUNT(*) FROM orders WHERE round_id=? AND status='DELIVERED'
	`, id); err != nil {
		return err
	}
	if delivered > 0 {
		return ErrRoundHasDelivered
	}

	if _, err := tx.Exec(`UPDATE orders SET round_id=NULL WHERE round_id=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM delivery_rounds WHERE id=?`, id); err != nil {
		return err
	}

	return tx.Commit()
}
