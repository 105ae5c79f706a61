// Package geoloc abstracts position capture for the observation entry form
// and carries the coordinate helpers shared across the client.
package geoloc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ErrUnavailable is returned when no location capability exists on the host.
var ErrUnavailable = errors.New("geoloc: no location provider available")

// Position is a captured fix.
type Position struct {
	Latitude  float64
	Longitude float64
	// Accuracy is the reported precision in meters, 0 when unknown.
	Accuracy float64
}

// Options mirror the capture parameters the entry form requests.
type Options struct {
	HighAccuracy bool
	// Timeout bounds the capture attempt.
	Timeout time.Duration
	// MaximumAge allows a cached fix no older than this.
	MaximumAge time.Duration
}

// EntryFormOptions are the fixed parameters the observation form uses:
// high accuracy, a 10 second capture deadline, and tolerance for a fix up
// to 60 seconds old.
func EntryFormOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaximumAge:   60 * time.Second,
	}
}

// Provider captures the device position.
type Provider interface {
	Locate(ctx context.Context, opts Options) (Position, error)
}

// Static is a provider that always returns a fixed position, used by the
// CLI (positions fed from flags or an external GPS reader) and by tests.
type Static struct {
	Position Position
	Err      error
}

// Locate returns the configured position or error.
func (s Static) Locate(ctx context.Context, opts Options) (Position, error) {
	if s.Err != nil {
		return Position{}, s.Err
	}
	return s.Position, nil
}

// FormatCoordinate renders a coordinate with six decimal places, the
// precision observation records are keyed on.
func FormatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', 6, 64)
}

// ValidateCoordinates checks that a parsed pair is on the globe.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("geoloc: latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("geoloc: longitude must be between -180 and 180")
	}
	return nil
}

const earthRadiusKm = 6371

// Distance returns the haversine great-circle distance between two points,
// in kilometers.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
