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

// RoundService manages delivery rounds and the zone-based assignment of
// orders to them.
type RoundService struct {
	Rounds *repos.RoundRepo
}

func NewRoundService(rounds *repos.RoundRepo) *RoundService {
	return &RoundService{Rounds: rounds}
}

func today() string { return time.Now().Format("2006-01-02") }

// AutoAssign picks the active round with the soonest date >= today in the
// zone. Empty result means the order stays unassigned.
func (s *RoundService) AutoAssign(zone string) (string, error) {
	id, err := s.Rounds.EarliestUpcoming(zone, today())
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

type RoundInput struct {
	Zone   string `json:"zone"`
	Date   string `json:"date"`
	Active *bool  `json:"active"`
	Note   string `json:"note"`
}

func (in RoundInput) validated() (zone, date string, err error) {
	zone, ok := validate.Zone(in.Zone)
	if !ok {
		return "", "", apperr.Invalid("zone", "must be an upper-case zone code")
	}
	date, ok = validate.Date(in.Date)
	if !ok {
		return "", "", apperr.Invalid("date", "must be an ISO date (YYYY-MM-DD)")
	}
	return zone, date, nil
}

// Create inserts a round and absorbs matching PENDING unassigned orders.
// A duplicate (zone, date) is rejected before any assignment scan runs.
func (s *RoundService) Create(in RoundInput) (domain.DeliveryRound, int64, error) {
	zone, date, err := in.validated()
	if err != nil {
		return domain.DeliveryRound{}, 0, err
	}

	d := domain.DeliveryRound{
		ID:     uuid.NewString(),
		Zone:   zone,
		Date:   date,
		Active: in.Active == nil || *in.Active,
		Note:   in.Note,
	}
	absorbed, err := s.Rounds.CreateAndAssign(d)
	if errors.Is(err, repos.ErrDuplicateRound) {
		return domain.DeliveryRound{}, 0, apperr.Conflict("a round already exists for zone %s on %s", zone, date)
	}
	if err != nil {
		return domain.DeliveryRound{}, 0, err
	}
	return d, absorbed, nil
}

// Update edits a round and reconciles its order links when the zone moves:
// mismatched orders are unlinked, newly matching PENDING orders absorbed.
func (s *RoundService) Update(id string, in RoundInput) (domain.DeliveryRound, error) {
	d, err := s.Get(id)
	if err != nil {
		return domain.DeliveryRound{}, err
	}

	zone, date, err := in.validated()
	if err != nil {
		return domain.DeliveryRound{}, err
	}
	d.Zone = zone
	d.Date = date
	if in.Active != nil {
		d.Active = *in.Active
	}
	d.Note = in.Note

	_, _, err = s.Rounds.UpdateAndReassign(d)
	if errors.Is(err, repos.ErrDuplicateRound) {
		return domain.DeliveryRound{}, apperr.Conflict("a round already exists for zone %s on %s", zone, date)
	}
	if err != nil {
		return domain.DeliveryRound{}, err
	}
	return d, nil
}

func (s *RoundService) List() ([]domain.DeliveryRound, error) {
	return s.Rounds.List()
}

func (s *RoundService) Get(id string) (domain.DeliveryRound, error) {
	d, err := s.Rounds.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DeliveryRound{}, apperr.NotFound("round")
	}
	return d, err
}

// Delete refuses to remove a round with delivered orders; remaining orders
// are unlinked before the round goes away.
func (s *RoundService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	err := s.Rounds.DeleteAndUnlink(id)
	if errors.Is(err, repos.ErrRoundHasDelivered) {
		return apperr.State("round has delivered orders and cannot be deleted")
	}
	return err
}
