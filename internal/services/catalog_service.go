package services

import (
	"database/sql"
	"errors"

	"milkrun/internal/apperr"
	"milkrun/internal/domain"
	"milkrun/internal/repos"
	"milkrun/internal/validate"

	"github.com/google/uuid"
)

// CatalogService covers category and product CRUD with the referential
// deletion guards.
type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// ---------- Categories ----------

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) GetCategory(id string) (domain.Category, error) {
	c, err := s.Cats.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, apperr.NotFound("category")
	}
	return c, err
}

func (s *CatalogService) CreateCategory(in CategoryInput) (domain.Category, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Category{}, apperr.Invalid("name", "required, max 80 characters")
	}
	taken, err := s.Cats.NameTaken(name, "")
	if err != nil {
		return domain.Category{}, err
	}
	if taken {
		return domain.Category{}, apperr.Conflict("category name %q is already in use", name)
	}
	c := domain.Category{ID: uuid.NewString(), Name: name, Description: in.Description}
	if err := s.Cats.Create(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(id string, in CategoryInput) (domain.Category, error) {
	c, err := s.GetCategory(id)
	if err != nil {
		return domain.Category{}, err
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Category{}, apperr.Invalid("name", "required, max 80 characters")
	}
	taken, err := s.Cats.NameTaken(name, id)
	if err != nil {
		return domain.Category{}, err
	}
	if taken {
		return domain.Category{}, apperr.Conflict("category name %q is already in use", name)
	}
	c.Name = name
	c.Description = in.Description
	if err := s.Cats.Update(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

// DeleteCategory refuses while products or prices still reference the category.
func (s *CatalogService) DeleteCategory(id string) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	used, err := s.Cats.InUse(id)
	if err != nil {
		return err
	}
	if used {
		return apperr.State("category still has products or prices")
	}
	return s.Cats.Delete(id)
}

// ---------- Products ----------

type ProductInput struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Active      *bool  `json:"active"`
}

func (s *CatalogService) SearchProducts(q, catID string, activeOnly bool, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize
	return s.Prods.Search(q, catID, activeOnly, pageSize, offset)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("product")
	}
	return p, err
}

func (s *CatalogService) CreateProduct(in ProductInput) (domain.Product, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Product{}, apperr.Invalid("name", "required, max 80 characters")
	}
	if _, err := s.GetCategory(in.CategoryID); err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		CategoryID:  in.CategoryID,
		Name:        name,
		Description: in.Description,
		Image:       in.Image,
		Active:      in.Active == nil || *in.Active,
	}
	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(id string, in ProductInput) (domain.Product, error) {
	p, err := s.GetProduct(id)
	if err != nil {
		return domain.Product{}, err
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Product{}, apperr.Invalid("name", "required, max 80 characters")
	}
	if _, err := s.GetCategory(in.CategoryID); err != nil {
		return domain.Product{}, err
	}
	p.CategoryID = in.CategoryID
	p.Name = name
	p.Description = in.Description
	p.Image = in.Image
	if in.Active != nil {
		p.Active = *in.Active
	}
	if err := s.Prods.Update(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// DeleteProduct refuses while order items still reference the product.
func (s *CatalogService) DeleteProduct(id string) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	used, err := s.Prods.Referenced(id)
	if err != nil {
		return err
	}
	if used {
		return apperr.State("product is referenced by order items")
	}
	return s.Prods.Delete(id)
}
