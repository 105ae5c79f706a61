package forms

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/WildTrack-Africa/field_client/internal/domain"
	"github.com/WildTrack-Africa/field_client/internal/services"
)

// FilterAll disables a category or status filter.
const FilterAll = "all"

// SpeciesForm holds the CRUD field values for one catalog entry.
type SpeciesForm struct {
	CommonName          string
	ScientificName      string
	Category            string
	ConservationStatus  string
	Description         string
	HabitatDescription  string
	Threats             string
	ConservationActions string
	// PopulationEstimate stays a string until submit; blank means unset.
	PopulationEstimate string
}

// NewSpeciesForm returns the form defaults: an animal of least concern.
func NewSpeciesForm() SpeciesForm {
	return SpeciesForm{
		Category:           string(domain.CategoryAnimal),
		ConservationStatus: string(domain.StatusLeastConcern),
	}
}

// LoadSpecies fills the form from an existing entry for editing.
func LoadSpecies(s domain.Species) SpeciesForm {
	f := SpeciesForm{
		CommonName:          s.CommonName,
		ScientificName:      s.ScientificName,
		Category:            string(s.Category),
		ConservationStatus:  string(s.ConservationStatus),
		Description:         s.Description,
		HabitatDescription:  s.HabitatDescription,
		Threats:             s.Threats,
		ConservationActions: s.ConservationActions,
	}
	if f.Category == "" {
		f.Category = string(domain.CategoryAnimal)
	}
	if f.ConservationStatus == "" {
		f.ConservationStatus = string(domain.StatusLeastConcern)
	}
	if s.PopulationEstimate != nil {
		f.PopulationEstimate = strconv.Itoa(*s.PopulationEstimate)
	}
	return f
}

// Validate checks the form before submission.
func (f SpeciesForm) Validate() *ValidationError {
	if strings.TrimSpace(f.CommonName) == "" {
		return invalid("common_name", "required", "common name is required")
	}
	if strings.TrimSpace(f.ScientificName) == "" {
		return invalid("scientific_name", "required", "scientific name is required")
	}
	if !domain.SpeciesCategory(f.Category).Valid() {
		return invalid("category", "enum", "category must be animal or plant")
	}
	if !domain.ConservationStatus(f.ConservationStatus).Valid() {
		return invalid("conservation_status", "enum", "unknown conservation status")
	}
	if f.PopulationEstimate != "" {
		n, err := strconv.Atoi(f.PopulationEstimate)
		if err != nil || n < 0 {
			return invalid("population_estimate", "min", "population estimate must be a non-negative integer")
		}
	}
	return nil
}

// Input coerces the form into the wire payload. Blank population estimate
// becomes null.
func (f SpeciesForm) Input() domain.SpeciesInput {
	in := domain.SpeciesInput{
		CommonName:          f.CommonName,
		ScientificName:      f.ScientificName,
		Category:            domain.SpeciesCategory(f.Category),
		ConservationStatus:  domain.ConservationStatus(f.ConservationStatus),
		Description:         f.Description,
		HabitatDescription:  f.HabitatDescription,
		Threats:             f.Threats,
		ConservationActions: f.ConservationActions,
	}
	if f.PopulationEstimate != "" {
		if n, err := strconv.Atoi(f.PopulationEstimate); err == nil {
			in.PopulationEstimate = &n
		}
	}
	return in
}

// SpeciesController is the catalog list view: a full fetched list with
// client-side search and filters, CRUD round trips that refetch on success,
// and spreadsheet import.
type SpeciesController struct {
	svc *services.Species
	log zerolog.Logger

	// Confirm gates deletion; it receives the prompt and returns whether
	// the user agreed. A nil Confirm refuses every delete.
	Confirm func(prompt string) bool

	list           []domain.Species
	search         string
	filterCategory string
	filterStatus   string

	pendingFile     string
	pendingContents []byte

	success string
	errMsg  string
}

// NewSpeciesController returns a controller with no filters applied.
func NewSpeciesController(svc *services.Species, log zerolog.Logger) *SpeciesController {
	return &SpeciesController{
		svc:            svc,
		log:            log,
		filterCategory: FilterAll,
		filterStatus:   FilterAll,
	}
}

// Refresh refetches the full catalog. Filtering stays client-side.
func (c *SpeciesController) Refresh(ctx context.Context) error {
	list, err := c.svc.List(ctx, 0, 100)
	if err != nil {
		c.errMsg = "failed to load species"
		return err
	}
	c.list = list
	return nil
}

// SetSearch sets the case-insensitive name search term.
func (c *SpeciesController) SetSearch(term string) { c.search = term }

// SetCategoryFilter sets the exact-match category filter; FilterAll clears.
func (c *SpeciesController) SetCategoryFilter(category string) { c.filterCategory = category }

// SetStatusFilter sets the exact-match status filter; FilterAll clears.
func (c *SpeciesController) SetStatusFilter(status string) { c.filterStatus = status }

// SuccessMessage is the last user-visible success string.
func (c *SpeciesController) SuccessMessage() string { return c.success }

// ErrorMessage is the last user-visible error string.
func (c *SpeciesController) ErrorMessage() string { return c.errMsg }

// All returns the unfiltered fetched list.
func (c *SpeciesController) All() []domain.Species { return c.list }

// Filtered applies search and filters to the fetched list: substring match
// on common or scientific name, exact category, exact status.
func (c *SpeciesController) Filtered() []domain.Species {
	term := strings.ToLower(c.search)
	var out []domain.Species
	for _, s := range c.list {
		if term != "" &&
			!strings.Contains(strings.ToLower(s.CommonName), term) &&
			!strings.Contains(strings.ToLower(s.ScientificName), term) {
			continue
		}
		if c.filterCategory != FilterAll && string(s.Category) != c.filterCategory {
			continue
		}
		if c.filterStatus != FilterAll && string(s.ConservationStatus) != c.filterStatus {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Create validates and submits a new entry, then refetches the list.
func (c *SpeciesController) Create(ctx context.Context, form SpeciesForm) error {
	c.success, c.errMsg = "", ""
	if verr := form.Validate(); verr != nil {
		c.errMsg = verr.Message
		return verr
	}
	if _, err := c.svc.Create(ctx, form.Input()); err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.success = "species created"
	return c.Refresh(ctx)
}

// Update validates and submits changes to an entry, then refetches.
func (c *SpeciesController) Update(ctx context.Context, id int, form SpeciesForm) error {
	c.success, c.errMsg = "", ""
	if verr := form.Validate(); verr != nil {
		c.errMsg = verr.Message
		return verr
	}
	if _, err := c.svc.Update(ctx, id, form.Input()); err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.success = "species updated"
	return c.Refresh(ctx)
}

// Delete asks for confirmation before any network call, then deletes and
// refetches. A declined confirmation aborts silently with ErrAborted.
func (c *SpeciesController) Delete(ctx context.Context, id int) error {
	c.success, c.errMsg = "", ""
	if c.Confirm == nil || !c.Confirm("delete this species?") {
		return ErrAborted
	}
	if err := c.svc.Delete(ctx, id); err != nil {
		c.errMsg = "failed to delete species"
		return err
	}
	c.success = "species deleted"
	return c.Refresh(ctx)
}

// SetFile stages a spreadsheet for import.
func (c *SpeciesController) SetFile(name string, contents []byte) {
	c.pendingFile = name
	c.pendingContents = contents
}

// PendingFile reports the staged spreadsheet name, empty when none.
func (c *SpeciesController) PendingFile() string { return c.pendingFile }

// Import submits the staged spreadsheet. Both the summary message and any
// per-row errors are surfaced, and the list is refetched even when rows
// were rejected. The staged file is cleared after every attempt.
func (c *SpeciesController) Import(ctx context.Context) (domain.ImportResult, error) {
	c.success, c.errMsg = "", ""
	filename := c.pendingFile
	defer func() {
		c.pendingFile = ""
		c.pendingContents = nil
	}()

	if c.pendingFile == "" {
		verr := invalid("file", "required", "no file selected")
		c.errMsg = verr.Message
		return domain.ImportResult{}, verr
	}

	result, err := c.svc.ImportSpreadsheet(ctx, c.pendingFile, c.pendingContents)
	if err != nil {
		c.errMsg = err.Error()
		return domain.ImportResult{}, err
	}

	c.success = result.Message
	if len(result.Errors) > 0 {
		c.errMsg = "imported with errors: " + strings.Join(result.Errors, ", ")
	}
	c.log.Info().
		Str("file", filename).
		Int("row_errors", len(result.Errors)).
		Msg("species import finished")

	if err := c.Refresh(ctx); err != nil {
		return result, err
	}
	return result, nil
}
