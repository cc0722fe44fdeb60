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

type ClientService struct {
	Clients *repos.ClientRepo
}

func NewClientService(clients *repos.ClientRepo) *ClientService {
	return &ClientService{Clients: clients}
}

type ClientInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Zone    string `json:"zone"`
	Tier    string `json:"tier"`
	Active  *bool  `json:"active"`
}

func (in ClientInput) validated() (domain.Client, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Client{}, apperr.Invalid("name", "required, max 80 characters")
	}
	zone, ok := validate.Zone(in.Zone)
	if !ok {
		return domain.Client{}, apperr.Invalid("zone", "must be an upper-case zone code")
	}
	tier, ok := validate.Tier(in.Tier)
	if !ok {
		return domain.Client{}, apperr.Invalid("tier", "must be FACTORY, WHOLESALE or RETAIL")
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return domain.Client{}, apperr.Invalid("phone", "must be a phone number")
	}
	email := in.Email
	if email != "" {
		if email, ok = validate.Email(email); !ok {
			return domain.Client{}, apperr.Invalid("email", "must be a valid address")
		}
	}
	return domain.Client{
		Name: name, Address: in.Address, Phone: phone, Email: email,
		Zone: zone, Tier: tier, Active: in.Active == nil || *in.Active,
	}, nil
}

func (s *ClientService) List() ([]domain.Client, error) {
	return s.Clients.List()
}

func (s *ClientService) Get(id string) (domain.Client, error) {
	c, err := s.Clients.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Client{}, apperr.NotFound("client")
	}
	return c, err
}

func (s *ClientService) Create(in ClientInput) (domain.Client, error) {
	c, err := in.validated()
	if err != nil {
		return domain.Client{}, err
	}
	c.ID = uuid.NewString()
	if err := s.Clients.Create(c); err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

func (s *ClientService) Update(id string, in ClientInput) (domain.Client, error) {
	if _, err := s.Get(id); err != nil {
		return domain.Client{}, err
	}
	c, err := in.validated()
	if err != nil {
		return domain.Client{}, err
	}
	c.ID = id
	if err := s.Clients.Update(c); err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

// Delete refuses while the client still has orders.
func (s *ClientService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	has, err := s.Clients.HasOrders(id)
	if err != nil {
		return err
	}
	if has {
		return apperr.State("client has orders and cannot be deleted")
	}
	return s.Clients.Delete(id)
}
