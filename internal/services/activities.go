package services

import (
	"context"
	"fmt"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
	"github.com/WildTrack-Africa/field_client/internal/domain"
)

// Activities covers the conservation activity log.
type Activities struct {
	api *apiclient.Client
}

// NewActivities returns the activities service.
func NewActivities(api *apiclient.Client) *Activities {
	return &Activities{api: api}
}

// List fetches activities matching the filter map.
func (s *Activities) List(ctx context.Context, filters Filters) ([]domain.Activity, error) {
	var out []domain.Activity
	if err := s.api.GetJSON(ctx, "/activities", filters.encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds an activity.
func (s *Activities) Create(ctx context.Context, in domain.Activity) (domain.Activity, error) {
	var out domain.Activity
	if err := s.api.PostJSON(ctx, "/activities", in, &out); err != nil {
		return domain.Activity{}, err
	}
	return out, nil
}

// Update modifies an activity.
func (s *Activities) Update(ctx context.Context, id int, in domain.Activity) (domain.Activity, error) {
	var out domain.Activity
	if err := s.api.PutJSON(ctx, fmt.Sprintf("/activities/%d", id), in, &out); err != nil {
		return domain.Activity{}, err
	}
	return out, nil
}
