package mapview

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/WildTrack-Africa/field_client/internal/domain"
)

//go:embed styles.yaml
var defaultStyles []byte

// Style maps conservation statuses to marker colors and species names to
// marker glyphs. Both the map and the entry form read from the same table
// instead of carrying their own copies.
type Style struct {
	DefaultColor string                             `yaml:"default_color"`
	DefaultGlyph string                             `yaml:"default_glyph"`
	StatusColors map[domain.ConservationStatus]string `yaml:"status_colors"`
	Glyphs       map[string]string                  `yaml:"glyphs"`
}

// DefaultStyle parses the embedded style table.
func DefaultStyle() (*Style, error) {
	return parseStyle(defaultStyles)
}

// LoadStyle reads a style table from disk, falling back to the embedded
// defaults when path is empty.
func LoadStyle(path string) (*Style, error) {
	if path == "" {
		return DefaultStyle()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapview: read style file: %w", err)
	}
	return parseStyle(data)
}

func parseStyle(data []byte) (*Style, error) {
	var s Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("mapview: parse style table: %w", err)
	}
	if s.DefaultColor == "" {
		s.DefaultColor = "#3388ff"
	}
	if s.DefaultGlyph == "" {
		s.DefaultGlyph = "📍"
	}
	return &s, nil
}

// ColorFor returns the marker color for a conservation status, the default
// for unknown or missing statuses.
func (s *Style) ColorFor(status domain.ConservationStatus) string {
	if color, ok := s.StatusColors[status]; ok {
		return color
	}
	return s.DefaultColor
}

// GlyphFor returns the marker glyph for a species display name, the default
// for unmapped names.
func (s *Style) GlyphFor(speciesName string) string {
	if glyph, ok := s.Glyphs[speciesName]; ok {
		return glyph
	}
	return s.DefaultGlyph
}
