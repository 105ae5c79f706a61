// Package domain holds the entity types exchanged with the Wildlife Tracker
// API. All entities are owned by the remote service; the client only carries
// transient copies fetched per view.
package domain

import "time"

// SpeciesCategory classifies a species entry.
type SpeciesCategory string

const (
	CategoryAnimal SpeciesCategory = "animal"
	CategoryPlant  SpeciesCategory = "plant"
)

// Valid reports whether the category is one the API accepts.
func (c SpeciesCategory) Valid() bool {
	return c == CategoryAnimal || c == CategoryPlant
}

// ConservationStatus is the IUCN extinction-risk code.
type ConservationStatus string

const (
	StatusLeastConcern         ConservationStatus = "LC"
	StatusNearThreatened       ConservationStatus = "NT"
	StatusVulnerable           ConservationStatus = "VU"
	StatusEndangered           ConservationStatus = "EN"
	StatusCriticallyEndangered ConservationStatus = "CR"
	StatusExtinctInWild        ConservationStatus = "EW"
	StatusExtinct              ConservationStatus = "EX"
)

// ConservationStatuses lists every code the API accepts, in severity order.
var ConservationStatuses = []ConservationStatus{
	StatusLeastConcern,
	StatusNearThreatened,
	StatusVulnerable,
	StatusEndangered,
	StatusCriticallyEndangered,
	StatusExtinctInWild,
	StatusExtinct,
}

// Valid reports whether the status is a known IUCN code.
func (s ConservationStatus) Valid() bool {
	for _, known := range ConservationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Species is a reference-catalog entry.
type Species struct {
	ID                  int                `json:"id"`
	CommonName          string             `json:"common_name"`
	ScientificName      string             `json:"scientific_name"`
	Category            SpeciesCategory    `json:"category"`
	ConservationStatus  ConservationStatus `json:"conservation_status"`
	Description         string             `json:"description,omitempty"`
	HabitatDescription  string             `json:"habitat_description,omitempty"`
	Threats             string             `json:"threats,omitempty"`
	ConservationActions string             `json:"conservation_actions,omitempty"`
	PopulationEstimate  *int               `json:"population_estimate,omitempty"`
	CreatedAt           time.Time          `json:"created_at,omitempty"`
	UpdatedAt           time.Time          `json:"updated_at,omitempty"`
}

// SpeciesInput is the create/update payload for a species entry.
type SpeciesInput struct {
	CommonName          string             `json:"common_name"`
	ScientificName      string             `json:"scientific_name"`
	Category            SpeciesCategory    `json:"category"`
	ConservationStatus  ConservationStatus `json:"conservation_status"`
	Description         string             `json:"description,omitempty"`
	HabitatDescription  string             `json:"habitat_description,omitempty"`
	Threats             string             `json:"threats,omitempty"`
	ConservationActions string             `json:"conservation_actions,omitempty"`
	PopulationEstimate  *int               `json:"population_estimate,omitempty"`
}

// Observation is a recorded field sighting.
type Observation struct {
	ID              int       `json:"id"`
	SpeciesID       int       `json:"species_id"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	ObservationDate time.Time `json:"observation_date"`
	Count           int       `json:"count"`
	ActivityType    string    `json:"activity_type,omitempty"`
	Weather         string    `json:"weather_conditions,omitempty"`
	Temperature     *float64  `json:"temperature,omitempty"`
	Humidity        *float64  `json:"humidity,omitempty"`
	BehaviorNotes   string    `json:"behavior_notes,omitempty"`
	HealthStatus    string    `json:"health_status,omitempty"`
	AgeGroup        string    `json:"age_group,omitempty"`
	Sex             string    `json:"sex,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	ObserverID      int       `json:"observer_id,omitempty"`
	Verified        bool      `json:"verified,omitempty"`
	Species         *Species  `json:"species,omitempty"`
}

// ObservationInput is the create/update payload for an observation.
type ObservationInput struct {
	SpeciesID       int      `json:"species_id"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	ObservationDate string   `json:"observation_date"`
	Count           int      `json:"count"`
	ActivityType    string   `json:"activity_type,omitempty"`
	Weather         string   `json:"weather_conditions,omitempty"`
	Temperature     *float64 `json:"temperature"`
	Humidity        *float64 `json:"humidity"`
	BehaviorNotes   string   `json:"behavior_notes,omitempty"`
	HealthStatus    string   `json:"health_status,omitempty"`
	AgeGroup        string   `json:"age_group,omitempty"`
	Sex             string   `json:"sex,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// User is an authenticated account profile.
type User struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// UserInput is the create/update payload for user administration.
type UserInput struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// Activity is a conservation work item tied to a species.
type Activity struct {
	ID               int        `json:"id"`
	SpeciesID        int        `json:"species_id"`
	ActivityType     string     `json:"activity_type"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	PlannedStartDate *time.Time `json:"planned_start_date,omitempty"`
	PlannedEndDate   *time.Time `json:"planned_end_date,omitempty"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	AreaCovered      *float64   `json:"area_covered,omitempty"`
	BudgetAllocated  *float64   `json:"budget_allocated,omitempty"`
}

// Token is the credential returned by the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DashboardStats is the aggregate view served at /stats/dashboard.
type DashboardStats struct {
	TotalSpecies        int                  `json:"total_species"`
	TotalObservations   int                  `json:"total_observations"`
	RecentObservations  int                  `json:"recent_observations"`
	SpeciesObservations []SpeciesObservation `json:"species_observations"`
}

// SpeciesObservation is one row of the per-species observation tally.
type SpeciesObservation struct {
	Species string `json:"species"`
	Count   int    `json:"count"`
}

// SpeciesStats is the per-species aggregate served at /stats/species/{id}.
type SpeciesStats struct {
	SpeciesID         int     `json:"species_id"`
	TotalObservations int     `json:"total_observations"`
	TotalIndividuals  int     `json:"total_individuals"`
	FirstObservation  string  `json:"first_observation,omitempty"`
	LastObservation   string  `json:"last_observation,omitempty"`
	AverageCount      float64 `json:"average_count,omitempty"`
}

// ImportResult is the response of the spreadsheet import endpoint: a summary
// message plus one error string per rejected row.
type ImportResult struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// UploadResult is the response of the generic file upload endpoint.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
}
