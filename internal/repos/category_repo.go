package repos

import (
	"milkrun/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `id, name, COALESCE(description,'') AS description`

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT `+categoryCols+` FROM categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	return c, err
}

// NameTaken reports whether another category already uses the name (case-insensitive).
func (r *CategoryRepo) NameTaken(name, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories WHERE LOWER(name)=LOWER(?) AND id != ?`, name, excludeID)
	return n > 0, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, description)
	  VALUES(?, ?, NULLIF(?,''))
	`, c.ID, c.Name, c.Description)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	_, err := r.db.Exec(`
	  UPDATE categories SET name=?, description=NULLIF(?,''), updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, c.Name, c.Description, c.ID)
	return err
}

func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id=?`, id)
	return err
}

// InUse reports whether any product or price references the category.
func (r *CategoryRepo) InUse(id string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT (SELECT COUNT(*) FROM products WHERE category_id=?)
	       + (SELECT COUNT(*) FROM prices   WHERE category_id=?)
	`, id, id)
	return n > 0, err
}
