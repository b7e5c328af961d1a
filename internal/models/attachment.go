package models

// Attachment references an uploaded blob. URL is what clients render; Path is
// the storage key needed to delete it later.
type Attachment struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}
