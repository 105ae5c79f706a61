package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
	"github.com/WildTrack-Africa/field_client/internal/domain"
)

// Observations covers sighting records and their GeoJSON projection.
type Observations struct {
	api *apiclient.Client
}

// NewObservations returns the observations service.
func NewObservations(api *apiclient.Client) *Observations {
	return &Observations{api: api}
}

// List fetches observations matching the filter map. Empty filter values
// never reach the query string.
func (s *Observations) List(ctx context.Context, filters Filters) ([]domain.Observation, error) {
	var out []domain.Observation
	if err := s.api.GetJSON(ctx, "/observations", filters.encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create records a new observation.
func (s *Observations) Create(ctx context.Context, in domain.ObservationInput) (domain.Observation, error) {
	var out domain.Observation
	if err := s.api.PostJSON(ctx, "/observations", in, &out); err != nil {
		return domain.Observation{}, err
	}
	return out, nil
}

// Update replaces an observation.
func (s *Observations) Update(ctx context.Context, id int, in domain.ObservationInput) (domain.Observation, error) {
	var out domain.Observation
	if err := s.api.PutJSON(ctx, fmt.Sprintf("/observations/%d", id), in, &out); err != nil {
		return domain.Observation{}, err
	}
	return out, nil
}

// Delete removes an observation.
func (s *Observations) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/observations/%d", id))
}

// GeoJSON fetches the observation feature collection for map rendering.
// The species filter is appended as a single query parameter only when
// non-nil; nil means all species.
func (s *Observations) GeoJSON(ctx context.Context, speciesID *int) (domain.FeatureCollection, error) {
	var query url.Values
	if speciesID != nil {
		query = url.Values{"species_id": {strconv.Itoa(*speciesID)}}
	}

	var out domain.FeatureCollection
	if err := s.api.GetJSON(ctx, "/observations/geojson", query, &out); err != nil {
		return domain.FeatureCollection{}, err
	}
	return out, nil
}
