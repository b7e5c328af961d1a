package models

import "path"

// WatchCategory names one of the fixed watch-out-for lists.
type WatchCategory string

const (
	WatchCompetitions WatchCategory = "competitions"
	WatchJournals     WatchCategory = "journals"
	WatchReads        WatchCategory = "reads"
)

// WatchCategories lists the accepted categories.
var WatchCategories = []WatchCategory{WatchCompetitions, WatchJournals, WatchReads}

// Valid reports whether c is a known category.
func (c WatchCategory) Valid() bool {
	for _, known := range WatchCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Collection is the document collection for the category.
func (c WatchCategory) Collection() string {
	return path.Join("watch-out-for", string(c), "items")
}

// WatchItem is an upcoming competition, journal call or recommended read.
type WatchItem struct {
	ID      string  `json:"id"`
	Heading string  `json:"heading"`
	Link    *string `json:"link"`
}
