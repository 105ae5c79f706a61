package services

import (
	"context"
	"fmt"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
)

// Export covers the binary export endpoints. Payloads come back opaque;
// failures carry a generic export error rather than a parsed detail.
type Export struct {
	api *apiclient.Client
}

// NewExport returns the export service.
func NewExport(api *apiclient.Client) *Export {
	return &Export{api: api}
}

// Observations downloads the observation export in the given format,
// narrowed by the optional filter map.
func (s *Export) Observations(ctx context.Context, format string, filters Filters) ([]byte, error) {
	query := filters.encode()
	query.Set("format", format)

	data, err := s.api.Download(ctx, "/export/observations", query)
	if err != nil {
		return nil, fmt.Errorf("services: export failed: %w", err)
	}
	return data, nil
}

// Species downloads the species catalog export in the given format.
func (s *Export) Species(ctx context.Context, format string) ([]byte, error) {
	data, err := s.api.Download(ctx, "/export/species", Filters{"format": format}.encode())
	if err != nil {
		return nil, fmt.Errorf("services: export failed: %w", err)
	}
	return data, nil
}
