package models

import "time"

// CollectionCourses is the document collection holding courses.
const CollectionCourses = "courses"

// Course is a taught course with its ordered lectures.
type Course struct {
	ID             string     `json:"id"`
	CourseCode     string     `json:"course_code"`
	CourseName     string     `json:"course_name"`
	Description    string     `json:"description"`
	Venue          string     `json:"venue"`
	CoverImage     *string    `json:"cover_image"`
	CoverImagePath *string    `json:"cover_image_path"`
	Lectures       []Lecture  `json:"lectures"`
	Prerequisites  []string   `json:"prerequisites"`
	References     []string   `json:"references"`
	Resources      []string   `json:"resources"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Lecture is one entry of a course. Lectures are addressed by position.
type Lecture struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	PDF       *string   `json:"pdf"`
	PDFPath   *string   `json:"pdfPath"`
	Video     *string   `json:"video"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttachmentPaths lists every blob path the course references.
func (c *Course) AttachmentPaths() []string {
	paths := make([]string, 0, len(c.Lectures)+1)
	if c.CoverImagePath != nil && *c.CoverImagePath != "" {
		paths = append(paths, *c.CoverImagePath)
	}
	for _, lecture := range c.Lectures {
		if lecture.PDFPath != nil && *lecture.PDFPath != "" {
			paths = append(paths, *lecture.PDFPath)
		}
	}
	return paths
}

// Normalize replaces nil list fields with empty lists so they encode as [].
func (c *Course) Normalize() {
	if c.Lectures == nil {
		c.Lectures = []Lecture{}
	}
	if c.Prerequisites == nil {
		c.Prerequisites = []string{}
	}
	if c.References == nil {
		c.References = []string{}
	}
	if c.Resources == nil {
		c.Resources = []string{}
	}
}
