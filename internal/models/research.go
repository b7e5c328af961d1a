package models

import "time"

const (
	// CollectionResearch holds the interests singleton document.
	CollectionResearch = "research"
	// InterestsDocumentID is the id of the interests singleton.
	InterestsDocumentID = "interests"
	// CollectionProjects holds research projects.
	CollectionProjects = "research/projects/items"
)

// ResearchInterests is the singleton research-interests document.
type ResearchInterests struct {
	Heading   string     `json:"heading"`
	Paragraph string     `json:"paragraph"`
	Interests []Interest `json:"interests"`
}

// Interest is one named area inside ResearchInterests.
type Interest struct {
	ID          string `json:"id"`
	Heading     string `json:"heading"`
	Description string `json:"description"`
}

// ResearchProject is a showcased project with an image gallery.
type ResearchProject struct {
	ID          string       `json:"id"`
	Heading     string       `json:"heading"`
	Description string       `json:"description"`
	Images      []Attachment `json:"images"`
	CreatedAt   time.Time    `json:"createdAt"`
}
