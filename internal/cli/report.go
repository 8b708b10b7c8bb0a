package cli

import (
	"slices"

	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/session"
)

type fieldReport struct {
	Field      string `json:"field" yaml:"field"`
	Source     string `json:"source" yaml:"source"`
	Label      string `json:"label" yaml:"label"`
	Value      string `json:"value" yaml:"value"`
	UserChose  bool   `json:"user_chose,omitempty" yaml:"user_chose,omitempty"`
	Candidates int    `json:"candidates" yaml:"candidates"`
}

type categoryReport struct {
	Tag        string `json:"tag" yaml:"tag"`
	Sources    string `json:"sources,omitempty" yaml:"sources,omitempty"`
	MappedFrom string `json:"mapped_from,omitempty" yaml:"mapped_from,omitempty"`
	Ignored    bool   `json:"ignored,omitempty" yaml:"ignored,omitempty"`
	Selected   bool   `json:"selected" yaml:"selected"`
}

type suggestionReport struct {
	Tag     string  `json:"tag" yaml:"tag"`
	Similar string  `json:"similar" yaml:"similar"`
	Score   float64 `json:"score" yaml:"score"`
}

type reviewReport struct {
	ReviewID    string               `json:"review_id" yaml:"review_id"`
	Fields      []fieldReport        `json:"fields" yaml:"fields"`
	Categories  []categoryReport     `json:"categories" yaml:"categories"`
	Suggestions []suggestionReport   `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Record      domain.PublishRecord `json:"record" yaml:"record"`
}

func newReviewReport(v session.View, record domain.PublishRecord) reviewReport {
	r := reviewReport{
		ReviewID:   v.ID,
		Fields:     make([]fieldReport, 0, len(v.Fields)),
		Categories: make([]categoryReport, 0, len(v.Categories)),
		Record:     record,
	}

	for _, f := range v.Fields {
		r.Fields = append(r.Fields, fieldReport{
			Field:      string(f.Field),
			Source:     f.Selected.Source.String(),
			Label:      f.Selected.Label,
			Value:      f.Display,
			UserChose:  f.UserChose,
			Candidates: len(f.Candidates),
		})
	}

	for _, c := range v.Categories {
		r.Categories = append(r.Categories, categoryReport{
			Tag:        c.Processed,
			Sources:    c.Provenance,
			MappedFrom: c.MappedFrom,
			Ignored:    c.IsIgnored,
			Selected:   slices.Contains(v.SelectedCategories, c.Processed),
		})
	}

	for _, p := range v.Suggestions {
		r.Suggestions = append(r.Suggestions, suggestionReport{Tag: p.A, Similar: p.B, Score: p.Score})
	}

	return r
}
