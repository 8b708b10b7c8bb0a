package domain

import "strings"

// BookRecord is the primary catalog record for a work.
type BookRecord struct {
	Title                 string   `json:"title" yaml:"title"`
	Authors               []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Description           string   `json:"description,omitempty" yaml:"description,omitempty"`
	Publisher             string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishedDate         string   `json:"publishedDate,omitempty" yaml:"publishedDate,omitempty"`
	OriginalPublishedDate string   `json:"originalPublishedDate,omitempty" yaml:"originalPublishedDate,omitempty"`
	PageCount             int      `json:"pageCount,omitempty" yaml:"pageCount,omitempty" validate:"gte=0"`
	ISBN10                string   `json:"isbn10,omitempty" yaml:"isbn10,omitempty"`
	ISBN13                string   `json:"isbn13,omitempty" yaml:"isbn13,omitempty"`
	Thumbnail             string   `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Copyright             string   `json:"copyright,omitempty" yaml:"copyright,omitempty"`
	Categories            []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// AudiobookRecord is the audiobook metadata for the same work.
// A nil or empty *AudiobookRecord means the work has no audiobook.
type AudiobookRecord struct {
	BookRecord         `yaml:",inline"`
	Narrators          []string `json:"narrators,omitempty" yaml:"narrators,omitempty"`
	TotalDurationHours float64  `json:"totalDurationHours,omitempty" yaml:"totalDurationHours,omitempty" validate:"gte=0"`
	ChapterCount       int      `json:"chapterCount,omitempty" yaml:"chapterCount,omitempty" validate:"gte=0"`
	ASIN               string   `json:"asin,omitempty" yaml:"asin,omitempty"`
	Summary            string   `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// IsEmpty reports whether a carries no metadata at all. Whitespace-only
// strings count as empty.
func (a *AudiobookRecord) IsEmpty() bool {
	if a == nil {
		return true
	}
	for _, v := range []string{
		a.Title, a.Description, a.Publisher, a.PublishedDate, a.OriginalPublishedDate,
		a.ISBN10, a.ISBN13, a.Thumbnail, a.Copyright, a.ASIN, a.Summary,
	} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return len(a.Authors) == 0 && len(a.Categories) == 0 && len(a.Narrators) == 0 &&
		a.PageCount == 0 && a.TotalDurationHours == 0 && a.ChapterCount == 0
}

// EditionRecord is an alternate edition of the work, sourced independently.
type EditionRecord struct {
	Title         string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Publisher     string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty" yaml:"publishedDate,omitempty"`
	PageCount     int      `json:"pageCount,omitempty" yaml:"pageCount,omitempty" validate:"gte=0"`
	ISBN13        string   `json:"isbn13,omitempty" yaml:"isbn13,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Categories    []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// PublishRecord is the finalized record handed to the publishing collaborator.
// Empty values are omitted.
type PublishRecord struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Publisher   string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	ReleaseDate string `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	PageCount   int    `json:"page_count,omitempty" yaml:"page_count,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`

	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	ISBN10  string   `json:"isbn10,omitempty" yaml:"isbn10,omitempty"`
	ISBN13  string   `json:"isbn13,omitempty" yaml:"isbn13,omitempty"`

	Narrators     []string `json:"narrators,omitempty" yaml:"narrators,omitempty"`
	ASIN          string   `json:"asin,omitempty" yaml:"asin,omitempty"`
	DurationHours float64  `json:"duration_hours,omitempty" yaml:"duration_hours,omitempty"`
	ChapterCount  int      `json:"chapter_count,omitempty" yaml:"chapter_count,omitempty"`

	Categories []string `json:"categories" yaml:"categories"`
}
