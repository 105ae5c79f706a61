// Package mapview drives the observation map: it fetches the GeoJSON
// feature collection and the species catalog concurrently, applies the
// client-side date range filter, and turns retained features into styled
// marker render models.
package mapview

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/WildTrack-Africa/field_client/internal/domain"
	"github.com/WildTrack-Africa/field_client/internal/services"
)

// Controller owns the map view state.
type Controller struct {
	observations *services.Observations
	species      *services.Species
	style        *Style
	log          zerolog.Logger

	// generation guards against a superseded refresh landing after a newer
	// one: only the latest generation may write state.
	generation atomic.Uint64

	mu            sync.Mutex
	speciesFilter *int
	start, end    *time.Time
	features      []domain.Feature
	speciesByID   map[int]domain.Species
	annotations   map[string]Annotation
}

// NewController wires the map view over its two services.
func NewController(observations *services.Observations, species *services.Species, style *Style, log zerolog.Logger) *Controller {
	return &Controller{
		observations: observations,
		species:      species,
		style:        style,
		log:          log,
		speciesByID:  map[int]domain.Species{},
		annotations:  map[string]Annotation{},
	}
}

// Refresh fetches the feature collection (narrowed server-side by the
// species filter) and the full species list concurrently, joining both
// before any state is written. A refresh that has been superseded by a
// newer one discards its results instead of overwriting fresher state.
func (c *Controller) Refresh(ctx context.Context) error {
	gen := c.generation.Add(1)

	c.mu.Lock()
	filter := c.speciesFilter
	c.mu.Unlock()

	var (
		wg         sync.WaitGroup
		collection domain.FeatureCollection
		list       []domain.Species
		geoErr     error
		listErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		collection, geoErr = c.observations.GeoJSON(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		list, listErr = c.species.List(ctx, 0, 100)
	}()
	wg.Wait()

	if geoErr != nil {
		return geoErr
	}
	if listErr != nil {
		return listErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation.Load() {
		c.log.Debug().Uint64("generation", gen).Msg("discarding stale map refresh")
		return nil
	}

	c.features = collection.Features
	byID := make(map[int]domain.Species, len(list))
	for _, s := range list {
		byID[s.ID] = s
	}
	c.speciesByID = byID

	c.log.Debug().
		Int("features", len(c.features)).
		Int("species", len(list)).
		Msg("map data refreshed")
	return nil
}

// SetSpeciesFilter narrows the server-side fetch to one species (nil for
// all) and refetches.
func (c *Controller) SetSpeciesFilter(ctx context.Context, speciesID *int) error {
	c.mu.Lock()
	c.speciesFilter = speciesID
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetDateRange bounds the rendered features client-side. Either bound may
// be nil; no refetch happens.
func (c *Controller) SetDateRange(start, end *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start, c.end = start, end
}

// Marker is the render model for one retained feature.
type Marker struct {
	ID        int
	Latitude  float64
	Longitude float64
	Color     string
	Glyph     string
	Popup     Popup
}

// Popup carries the marker detail fields.
type Popup struct {
	SpeciesName string
	Count       int
	Date        string
	Activity    string
	Notes       string
	Status      domain.ConservationStatus
}

// Markers applies the date range filter and styles every retained feature:
// color from the species' conservation status, glyph from the species
// display name, defaults when either lookup misses.
func (c *Controller) Markers() []Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	var markers []Marker
	for _, feature := range c.features {
		props := feature.Properties
		observed, ok := parseObservationDate(props.ObservationDate)
		if ok {
			if c.start != nil && observed.Before(*c.start) {
				continue
			}
			if c.end != nil && observed.After(*c.end) {
				continue
			}
		}

		var status domain.ConservationStatus
		if species, found := c.speciesByID[props.SpeciesID]; found {
			status = species.ConservationStatus
		}

		activity := props.ActivityType
		if activity == "" {
			activity = "unspecified"
		}

		markers = append(markers, Marker{
			ID:        props.ID,
			Latitude:  feature.Geometry.Latitude(),
			Longitude: feature.Geometry.Longitude(),
			Color:     c.style.ColorFor(status),
			Glyph:     c.style.GlyphFor(props.SpeciesName),
			Popup: Popup{
				SpeciesName: props.SpeciesName,
				Count:       props.Count,
				Date:        formatPopupDate(observed, ok, props.ObservationDate),
				Activity:    activity,
				Notes:       props.Notes,
				Status:      status,
			},
		})
	}
	return markers
}

// parseObservationDate accepts the timestamp formats the API has been seen
// to emit: RFC3339, a bare datetime, or a bare date.
func parseObservationDate(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatPopupDate(t time.Time, ok bool, raw string) string {
	if !ok {
		return raw
	}
	return t.Format("02 Jan 2006")
}
