package domain

// FeatureCollection is the GeoJSON projection of observations served by the
// API for map rendering. Read-only on the client.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON point feature.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// Geometry carries a point position as [longitude, latitude].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Longitude returns the first coordinate, 0 when absent.
func (g Geometry) Longitude() float64 {
	if len(g.Coordinates) < 1 {
		return 0
	}
	return g.Coordinates[0]
}

// Latitude returns the second coordinate, 0 when absent.
func (g Geometry) Latitude() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[1]
}

// FeatureProperties mirrors the observation fields the API projects into
// each feature, plus the species display name.
type FeatureProperties struct {
	ID              int    `json:"id"`
	SpeciesID       int    `json:"species_id"`
	SpeciesName     string `json:"species_name"`
	ObservationDate string `json:"observation_date"`
	Count           int    `json:"count"`
	ActivityType    string `json:"activity_type,omitempty"`
	Notes           string `json:"notes,omitempty"`
}
