package services

import (
	"database/sql"
	"errors"
	"time"

	"milkrun/internal/apperr"
	"milkrun/internal/domain"
	"milkrun/internal/repos"
	"milkrun/internal/validate"

	"github.com/google/uuid"
)

type PricingService struct {
	Prices *repos.PriceRepo
	Cats   *repos.CategoryRepo
}

func NewPricingService(prices *repos.PriceRepo, cats *repos.CategoryRepo) *PricingService {
	return &PricingService{Prices: prices, Cats: cats}
}

// Resolve returns the single active price for (category, tier).
func (s *PricingService) Resolve(categoryID, tier string) (domain.Price, error) {
	p, err := s.Prices.ActiveFor(categoryID, tier)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Price{}, apperr.NotFound("active price")
	}
	return p, err
}

type PriceInput struct {
	CategoryID string  `json:"categoryId"`
	Tier       string  `json:"tier"`
	Value      float64 `json:"value"`
	StartsAt   string  `json:"startsAt"`
	EndsAt     string  `json:"endsAt"`
}

// Activate creates a new active price, closing out the previous active price
// of the same (category, tier) within the same transaction.
func (s *PricingService) Activate(in PriceInput) (domain.Price, error) {
	tier, ok := validate.Tier(in.Tier)
	if !ok {
		return domain.Price{}, apperr.Invalid("tier", "must be FACTORY, WHOLESALE or RETAIL")
	}
	if !validate.Money(in.Value) {
		return domain.Price{}, apperr.Invalid("value", "must be greater than zero")
	}
	startsAt := in.StartsAt
	if startsAt == "" {
		startsAt = time.Now().Format("2006-01-02")
	} else if startsAt, ok = validate.Date(startsAt); !ok {
		return domain.Price{}, apperr.Invalid("startsAt", "must be an ISO date (YYYY-MM-DD)")
	}
	endsAt := in.EndsAt
	if endsAt != "" {
		if endsAt, ok = validate.Date(endsAt); !ok {
			return domain.Price{}, apperr.Invalid("endsAt", "must be an ISO date (YYYY-MM-DD)")
		}
	}

	if _, err := s.Cats.Get(in.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Price{}, apperr.NotFound("category")
		}
		return domain.Price{}, err
	}

	p := domain.Price{
		ID:         uuid.NewString(),
		CategoryID: in.CategoryID,
		Tier:       tier,
		Value:      in.Value,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Active:     true,
	}
	if err := s.Prices.Activate(p); err != nil {
		return domain.Price{}, err
	}
	return p, nil
}

func (s *PricingService) List(categoryID string) ([]domain.Price, error) {
	return s.Prices.List(categoryID)
}

func (s *PricingService) Get(id string) (domain.Price, error) {
	p, err := s.Prices.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Price{}, apperr.NotFound("price")
	}
	return p, err
}

// Delete refuses to remove a price that order items still reference.
func (s *PricingService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	used, err := s.Prices.Referenced(id)
	if err != nil {
		return err
	}
	if used {
		return apperr.State("price is referenced by order items")
	}
	return s.Prices.Delete(id)
}
