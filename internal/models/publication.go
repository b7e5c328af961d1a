package models

import "path"

// PublicationSection names one of the fixed publication lists.
type PublicationSection string

const (
	SectionJournals    PublicationSection = "journals"
	SectionConferences PublicationSection = "conferences"
	SectionThesis      PublicationSection = "thesis"
	SectionPatents     PublicationSection = "patents"
)

// PublicationSections lists the accepted sections in display order.
var PublicationSections = []PublicationSection{SectionJournals, SectionConferences, SectionThesis, SectionPatents}

// Valid reports whether s is a known section.
func (s PublicationSection) Valid() bool {
	for _, known := range PublicationSections {
		if s == known {
			return true
		}
	}
	return false
}

// Collection is the document collection for the section.
func (s PublicationSection) Collection() string {
	return path.Join("publications", string(s), "items")
}

// Publication is a journal paper, conference paper, thesis or patent.
type Publication struct {
	ID          string  `json:"id"`
	Heading     string  `json:"heading"`
	Description string  `json:"description"`
	Link        *string `json:"link"`
}
