package services

import (
	"database/sql"
	"errors"

	"milkrun/internal/apperr"
	"milkrun/internal/domain"
	"milkrun/internal/repos"
	"milkrun/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService {
	return &UserService{Users: users}
}

type UserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ClientID string `json:"clientId"`
}

func (s *UserService) List() ([]domain.User, error) {
	return s.Users.List()
}

func (s *UserService) Get(id string) (*domain.User, error) {
	u, err := s.Users.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user")
	}
	return u, err
}

func (s *UserService) Create(in UserInput) (*domain.User, error) {
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, apperr.Invalid("email", "must be a valid address")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return nil, apperr.Invalid("name", "required, max 80 characters")
	}
	if !validate.Password(in.Password) {
		return nil, apperr.Invalid("password", "8-64 chars with upper, lower and digit")
	}
	if in.Role != domain.RoleAdmin && in.Role != domain.RoleUser {
		return nil, apperr.Invalid("role", "must be ADMIN or USER")
	}
	taken, err := s.Users.EmailTaken(email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("email %q is already in use", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID: uuid.NewString(), Email: email, Name: name,
		Hash: string(hash), Role: in.Role, ClientID: in.ClientID,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) Update(id string, in UserInput) (*domain.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, apperr.Invalid("email", "must be a valid address")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return nil, apperr.Invalid("name", "required, max 80 characters")
	}
	if in.Role != domain.RoleAdmin && in.Role != domain.RoleUser {
		return nil, apperr.Invalid("role", "must be ADMIN or USER")
	}
	taken, err := s.Users.EmailTaken(email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("email %q is already in use", email)
	}

	u.Email = email
	u.Name = name
	u.Role = in.Role
	u.ClientID = in.ClientID
	if in.Password != "" {
		if !validate.Password(in.Password) {
			return nil, apperr.Invalid("password", "8-64 chars with upper, lower and digit")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
		if err != nil {
			return nil, err
		}
		u.Hash = string(hash)
	}
	if err := s.Users.Update(*u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user. Self-deletion is always denied.
func (s *UserService) Delete(actor *domain.User, id string) error {
	if actor != nil && actor.ID == id {
		return apperr.Unauthorized("you cannot delete your own account")
	}
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Users.Delete(id)
}
