package models

import "strings"

// Book is the canonical record produced by the discovery pipelines. Instances
// are built once per catalog response item and never mutated afterwards.
type Book struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description,omitempty"`
	Language      string   `json:"language,omitempty"`
	PageCount     int      `json:"pageCount,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	AverageRating float64  `json:"averageRating,omitempty"`
	RatingsCount  int      `json:"ratingsCount,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	PreviewLink   string   `json:"previewLink,omitempty"`
	ISBN          string   `json:"isbn,omitempty"`
}

// IdentityKey returns the string used to decide whether two records represent
// the same work: the ISBN when present, otherwise "<title>-<author>" lowered
// and trimmed. Two books with equal keys are duplicates regardless of any
// other field differences.
func (b Book) IdentityKey() string {
	if b.ISBN != "" {
		return b.ISBN
	}
	return strings.TrimSpace(strings.ToLower(b.Title + "-" + b.Author))
}

// SearchFilter is the structured criteria set extracted from a free-text
// query. Every field is optional; the zero value is the defined safe default
// when extraction fails.
type SearchFilter struct {
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Topics     []string `json:"topics"`
	Genre      string   `json:"genre"`
	Language   string   `json:"language"`
	Year       string   `json:"year"` // "after YYYY", "before YYYY", "in YYYY" or empty
	MinRating  float64  `json:"minRating"`
	MinPages   int      `json:"minPages"`
	Publisher  string   `json:"publisher"`
	ISBN       string   `json:"isbn"`
	Filters    []string `json:"filters"`
	BookTitles []string `json:"bookTitles"`
}
