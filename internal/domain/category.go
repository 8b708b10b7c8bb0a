package domain

// ProcessedCategory is a normalized, display-ready category.
//
// For a mapped edge A -> B, the entry for A carries IsMapped and MappedFrom=A
// (and shows Processed=B), while the entry for B lists A in MappedToThis.
type ProcessedCategory struct {
	Original     string   `json:"original"`
	Processed    string   `json:"processed"`
	IsIgnored    bool     `json:"is_ignored"`
	IsMapped     bool     `json:"is_mapped"`
	MappedFrom   string   `json:"mapped_from,omitempty"`
	MappedToThis []string `json:"mapped_to_this,omitempty"`

	Sources    []SourceID `json:"sources"`
	Provenance string     `json:"provenance,omitempty"`

	Geographical bool `json:"geographical,omitempty"`
	Temporal     bool `json:"temporal,omitempty"`

	Similar []SimilarTag `json:"similar,omitempty"`
}

// Protected reports whether the category is excluded from similarity
// suggestions.
func (c ProcessedCategory) Protected() bool {
	return c.Geographical || c.Temporal
}

// SimilarTag is a merge suggestion pointing at another tag.
type SimilarTag struct {
	Tag   string  `json:"tag"`
	Score float64 `json:"score"`
}

// SimilarPair is an unordered pair of tags that look like duplicates.
// A is the tag seen first in the normalization output.
type SimilarPair struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

// TagMapping is one persisted edge of the mapping graph.
type TagMapping struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CategoryRules is a snapshot of the mapping graph and the ignore set.
type CategoryRules struct {
	Mappings map[string]string `json:"mappings"`
	Ignored  map[string]bool   `json:"ignored"`
}

// NewCategoryRules returns an empty rule set.
func NewCategoryRules() *CategoryRules {
	return &CategoryRules{
		Mappings: make(map[string]string),
		Ignored:  make(map[string]bool),
	}
}

// Target returns the outbound edge of tag, if any.
func (r *CategoryRules) Target(tag string) (string, bool) {
	if r == nil {
		return "", false
	}
	to, ok := r.Mappings[tag]
	return to, ok
}

// Reverses reports whether an edge from -> to would undo the stored edge
// to -> from.
func (r *CategoryRules) Reverses(from, to string) bool {
	back, ok := r.Target(to)
	return ok && back == from
}

// IsIgnored reports whether tag is in the ignore set.
func (r *CategoryRules) IsIgnored(tag string) bool {
	return r != nil && r.Ignored[tag]
}
