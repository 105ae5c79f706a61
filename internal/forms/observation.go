package forms

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/WildTrack-Africa/field_client/internal/domain"
	"github.com/WildTrack-Africa/field_client/internal/geoloc"
	"github.com/WildTrack-Africa/field_client/internal/services"
)

// Observation form field names. The form state is a flat string map keyed
// by these, matching the wire names of the create payload.
const (
	FieldSpeciesID     = "species_id"
	FieldLatitude      = "latitude"
	FieldLongitude     = "longitude"
	FieldDate          = "observation_date"
	FieldCount         = "count"
	FieldActivityType  = "activity_type"
	FieldWeather       = "weather_conditions"
	FieldTemperature   = "temperature"
	FieldHumidity      = "humidity"
	FieldBehaviorNotes = "behavior_notes"
	FieldHealthStatus  = "health_status"
	FieldAgeGroup      = "age_group"
	FieldSex           = "sex"
	FieldNotes         = "notes"
)

// ObservationForm is the entry form state machine: edit fields, capture a
// GPS fix, validate, submit, reset.
type ObservationForm struct {
	svc     *services.Observations
	locator geoloc.Provider
	log     zerolog.Logger
	now     func() time.Time

	fields  map[string]string
	success string
	errMsg  string
}

// NewObservationForm seeds the form with its default field map. locator may
// be nil when the host has no location capability.
func NewObservationForm(svc *services.Observations, locator geoloc.Provider, log zerolog.Logger) *ObservationForm {
	f := &ObservationForm{svc: svc, locator: locator, log: log, now: time.Now}
	f.fields = f.defaults()
	return f
}

// defaults is the pristine field map: today's date, a count of one, every
// optional field empty.
func (f *ObservationForm) defaults() map[string]string {
	return map[string]string{
		FieldSpeciesID:     "",
		FieldLatitude:      "",
		FieldLongitude:     "",
		FieldDate:          f.now().Format("2006-01-02"),
		FieldCount:         "1",
		FieldActivityType:  "",
		FieldWeather:       "",
		FieldTemperature:   "",
		FieldHumidity:      "",
		FieldBehaviorNotes: "",
		FieldHealthStatus:  "",
		FieldAgeGroup:      "",
		FieldSex:           "",
		FieldNotes:         "",
	}
}

// SetField updates one field. No cross-field derivation happens here.
func (f *ObservationForm) SetField(name, value string) {
	f.fields[name] = value
}

// Field reads one field value.
func (f *ObservationForm) Field(name string) string {
	return f.fields[name]
}

// SuccessMessage is the last user-visible success string.
func (f *ObservationForm) SuccessMessage() string { return f.success }

// ErrorMessage is the last user-visible error string.
func (f *ObservationForm) ErrorMessage() string { return f.errMsg }

// Reset restores the default field map unconditionally.
func (f *ObservationForm) Reset() {
	f.fields = f.defaults()
	f.success = ""
	f.errMsg = ""
}

// CaptureLocation asks the location provider for a high-accuracy fix with a
// ten second deadline, accepting a cached position up to a minute old. On
// success both coordinate fields are written as six-decimal strings; on any
// failure neither field changes.
func (f *ObservationForm) CaptureLocation(ctx context.Context) error {
	if f.locator == nil {
		f.errMsg = "geolocation is not available on this device"
		return geoloc.ErrUnavailable
	}

	opts := geoloc.EntryFormOptions()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	pos, err := f.locator.Locate(ctx, opts)
	if err != nil {
		f.errMsg = "failed to acquire GPS position"
		return err
	}

	f.fields[FieldLatitude] = geoloc.FormatCoordinate(pos.Latitude)
	f.fields[FieldLongitude] = geoloc.FormatCoordinate(pos.Longitude)
	f.success = "GPS position acquired"
	f.log.Debug().
		Str("latitude", f.fields[FieldLatitude]).
		Str("longitude", f.fields[FieldLongitude]).
		Msg("location captured")
	return nil
}

// Validate runs the submission rules in order; the first failing rule wins
// and the rest are not evaluated.
func (f *ObservationForm) Validate() *ValidationError {
	if f.fields[FieldSpeciesID] == "" {
		return invalid(FieldSpeciesID, "required", "select a species")
	}
	if f.fields[FieldLatitude] == "" || f.fields[FieldLongitude] == "" {
		return invalid("coordinates", "required", "GPS coordinates are required")
	}

	lat, err := strconv.ParseFloat(f.fields[FieldLatitude], 64)
	if err != nil || lat < -90 || lat > 90 {
		return invalid(FieldLatitude, "range", "latitude must be between -90 and 90")
	}
	lon, err := strconv.ParseFloat(f.fields[FieldLongitude], 64)
	if err != nil || lon < -180 || lon > 180 {
		return invalid(FieldLongitude, "range", "longitude must be between -180 and 180")
	}

	count, err := strconv.Atoi(f.fields[FieldCount])
	if err != nil || count < 1 {
		return invalid(FieldCount, "min", "count must be at least 1")
	}

	return nil
}

// payload coerces the validated field map into the wire payload. The date
// is anchored at local noon so encoding to UTC cannot shift it to the
// neighboring day.
func (f *ObservationForm) payload() (domain.ObservationInput, error) {
	speciesID, _ := strconv.Atoi(f.fields[FieldSpeciesID])
	lat, _ := strconv.ParseFloat(f.fields[FieldLatitude], 64)
	lon, _ := strconv.ParseFloat(f.fields[FieldLongitude], 64)
	count, _ := strconv.Atoi(f.fields[FieldCount])

	day, err := time.ParseInLocation("2006-01-02", f.fields[FieldDate], time.Local)
	if err != nil {
		return domain.ObservationInput{}, invalid(FieldDate, "format", "observation date must be YYYY-MM-DD")
	}
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.Local)

	return domain.ObservationInput{
		SpeciesID:       speciesID,
		Latitude:        lat,
		Longitude:       lon,
		ObservationDate: noon.Format(time.RFC3339),
		Count:           count,
		ActivityType:    f.fields[FieldActivityType],
		Weather:         f.fields[FieldWeather],
		Temperature:     optionalFloat(f.fields[FieldTemperature]),
		Humidity:        optionalFloat(f.fields[FieldHumidity]),
		BehaviorNotes:   f.fields[FieldBehaviorNotes],
		HealthStatus:    f.fields[FieldHealthStatus],
		AgeGroup:        f.fields[FieldAgeGroup],
		Sex:             f.fields[FieldSex],
		Notes:           f.fields[FieldNotes],
	}, nil
}

// optionalFloat maps a blank or unparseable entry to nil.
func optionalFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// Submit validates, coerces, and posts the observation. Validation failures
// abort before any network call. A successful round trip resets the whole
// form to its defaults; a failed one preserves the entered values and
// surfaces the server message.
func (f *ObservationForm) Submit(ctx context.Context) (domain.Observation, error) {
	f.success = ""
	f.errMsg = ""

	if verr := f.Validate(); verr != nil {
		f.errMsg = verr.Message
		return domain.Observation{}, verr
	}

	payload, err := f.payload()
	if err != nil {
		f.errMsg = err.Error()
		return domain.Observation{}, err
	}

	created, err := f.svc.Create(ctx, payload)
	if err != nil {
		f.errMsg = err.Error()
		return domain.Observation{}, err
	}

	f.log.Info().Int("observation_id", created.ID).Msg("observation recorded")
	f.fields = f.defaults()
	f.success = "observation recorded"
	return created, nil
}
