package services

import (
	"context"
	"fmt"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
	"github.com/WildTrack-Africa/field_client/internal/domain"
)

// Users covers account administration.
type Users struct {
	api *apiclient.Client
}

// NewUsers returns the users service.
func NewUsers(api *apiclient.Client) *Users {
	return &Users{api: api}
}

// List fetches every account.
func (s *Users) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := s.api.GetJSON(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds an account.
func (s *Users) Create(ctx context.Context, in domain.UserInput) (domain.User, error) {
	var out domain.User
	if err := s.api.PostJSON(ctx, "/users", in, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

// Update modifies an account.
func (s *Users) Update(ctx context.Context, id int, in domain.UserInput) (domain.User, error) {
	var out domain.User
	if err := s.api.PutJSON(ctx, fmt.Sprintf("/users/%d", id), in, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}
