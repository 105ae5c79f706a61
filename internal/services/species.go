package services

import (
	"context"
	"fmt"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
	"github.com/WildTrack-Africa/field_client/internal/domain"
)

// Species covers the species reference catalog.
type Species struct {
	api *apiclient.Client
}

// NewSpecies returns the species service.
func NewSpecies(api *apiclient.Client) *Species {
	return &Species{api: api}
}

// List fetches a page of the catalog.
func (s *Species) List(ctx context.Context, skip, limit int) ([]domain.Species, error) {
	var out []domain.Species
	if err := s.api.GetJSON(ctx, "/species", pageQuery(skip, limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one species by id.
func (s *Species) Get(ctx context.Context, id int) (domain.Species, error) {
	var out domain.Species
	if err := s.api.GetJSON(ctx, fmt.Sprintf("/species/%d", id), nil, &out); err != nil {
		return domain.Species{}, err
	}
	return out, nil
}

// Create adds a catalog entry; the id is assigned remotely.
func (s *Species) Create(ctx context.Context, in domain.SpeciesInput) (domain.Species, error) {
	var out domain.Species
	if err := s.api.PostJSON(ctx, "/species", in, &out); err != nil {
		return domain.Species{}, err
	}
	return out, nil
}

// Update replaces a catalog entry.
func (s *Species) Update(ctx context.Context, id int, in domain.SpeciesInput) (domain.Species, error) {
	var out domain.Species
	if err := s.api.PutJSON(ctx, fmt.Sprintf("/species/%d", id), in, &out); err != nil {
		return domain.Species{}, err
	}
	return out, nil
}

// Delete removes a catalog entry.
func (s *Species) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/species/%d", id))
}

// ImportSpreadsheet submits a spreadsheet to the import endpoint as a
// multipart upload and returns the summary plus per-row errors.
func (s *Species) ImportSpreadsheet(ctx context.Context, filename string, content []byte) (domain.ImportResult, error) {
	var out domain.ImportResult
	if err := s.api.PostMultipart(ctx, "/species/import-excel", nil, "file", filename, content, &out); err != nil {
		return domain.ImportResult{}, err
	}
	return out, nil
}
