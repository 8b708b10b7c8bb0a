package domain

import "slices"

// CandidateValue is one provider's value for one field.
type CandidateValue struct {
	Source     SourceID `json:"source_id"`
	Label      string   `json:"label"`
	Content    string   `json:"content"`
	IsYearOnly bool     `json:"is_year_only,omitempty"`

	// Aliases are later sources that offered the same content and were
	// folded into this candidate.
	Aliases []SourceID `json:"aliases,omitempty"`
}

// Candidates maps each field to its ordered candidate list.
// Fields without candidates are absent.
type Candidates map[Field][]CandidateValue

// Find returns the candidate for field offered by source, either directly or
// as an alias.
func (c Candidates) Find(field Field, source SourceID) (CandidateValue, bool) {
	for _, cand := range c[field] {
		if cand.Source == source || slices.Contains(cand.Aliases, source) {
			return cand, true
		}
	}
	return CandidateValue{}, false
}

// Has reports whether field has a candidate from source.
func (c Candidates) Has(field Field, source SourceID) bool {
	_, ok := c.Find(field, source)
	return ok
}

// RawCategory is a category string as received from a provider.
type RawCategory struct {
	Value  string
	Source SourceID
}
