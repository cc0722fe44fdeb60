package repos

import (
	"milkrun/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, category_id, name, COALESCE(description,'') AS description,
  COALESCE(image,'') AS image, active`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// Search filters products by free-text name/description match, category and
// active flag. Empty filters are ignored.
func (r *ProductRepo) Search(q, catID string, activeOnly bool, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	if activeOnly {
		where += ` AND active = 1`
	}

	sql := `SELECT ` + productCols + ` FROM products WHERE ` + where + `
	  ORDER BY name LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, name, description, image, active)
	  VALUES(?, ?, ?, NULLIF(?,''), NULLIF(?,''), ?)
	`, p.ID, p.CategoryID, p.Name, p.Description, p.Image, p.Active)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET category_id=?, name=?, description=NULLIF(?,''), image=NULLIF(?,''), active=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.CategoryID, p.Name, p.Description, p.Image, p.Active, p.ID)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	return err
}

// Referenced reports whether any order item references the product.
func (r *ProductRepo) Referenced(id string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM order_items WHERE product_id=?`, id)
	return n > 0, err
}
