package services

import (
	"context"
	"fmt"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
	"github.com/WildTrack-Africa/field_client/internal/domain"
)

// Stats covers the aggregate dashboards.
type Stats struct {
	api *apiclient.Client
}

// NewStats returns the stats service.
func NewStats(api *apiclient.Client) *Stats {
	return &Stats{api: api}
}

// Dashboard fetches the site-wide aggregate counts.
func (s *Stats) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := s.api.GetJSON(ctx, "/stats/dashboard", nil, &out); err != nil {
		return domain.DashboardStats{}, err
	}
	return out, nil
}

// Species fetches the aggregate for one species.
func (s *Stats) Species(ctx context.Context, id int) (domain.SpeciesStats, error) {
	var out domain.SpeciesStats
	if err := s.api.GetJSON(ctx, fmt.Sprintf("/stats/species/%d", id), nil, &out); err != nil {
		return domain.SpeciesStats{}, err
	}
	return out, nil
}
