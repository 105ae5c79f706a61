package mapview

import "github.com/google/uuid"

// AnnotationKind distinguishes the drawable overlay shapes.
type AnnotationKind string

const (
	AnnotationRectangle AnnotationKind = "rectangle"
	AnnotationPolygon   AnnotationKind = "polygon"
	AnnotationCircle    AnnotationKind = "circle"
)

// Point is a lat/lon vertex.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Annotation is an ephemeral, user-drawn overlay shape for visual reference
// only. Annotations live in the controller and are never sent to the API.
type Annotation struct {
	ID   string
	Kind AnnotationKind
	// Points holds the two corners of a rectangle, the vertices of a
	// polygon, or the center of a circle.
	Points []Point
	// RadiusMeters is set for circles only.
	RadiusMeters float64
}

// AddRectangle records a rectangle by two opposite corners and returns its id.
func (c *Controller) AddRectangle(a, b Point) string {
	return c.addAnnotation(Annotation{Kind: AnnotationRectangle, Points: []Point{a, b}})
}

// AddPolygon records a polygon by its vertices and returns its id.
func (c *Controller) AddPolygon(vertices ...Point) string {
	return c.addAnnotation(Annotation{Kind: AnnotationPolygon, Points: vertices})
}

// AddCircle records a circle by center and radius and returns its id.
func (c *Controller) AddCircle(center Point, radiusMeters float64) string {
	return c.addAnnotation(Annotation{Kind: AnnotationCircle, Points: []Point{center}, RadiusMeters: radiusMeters})
}

func (c *Controller) addAnnotation(a Annotation) string {
	a.ID = uuid.NewString()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.annotations[a.ID] = a
	return a.ID
}

// RemoveAnnotation deletes one shape; unknown ids are ignored.
func (c *Controller) RemoveAnnotation(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.annotations, id)
}

// ClearAnnotations deletes every shape.
func (c *Controller) ClearAnnotations() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.annotations = map[string]Annotation{}
}

// Annotations returns the current shapes in no particular order.
func (c *Controller) Annotations() []Annotation {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Annotation, 0, len(c.annotations))
	for _, a := range c.annotations {
		out = append(out, a)
	}
	return out
}
