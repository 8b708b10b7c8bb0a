// Package reconcile chooses one active candidate per field from competing
// sources, honoring user choices, stored field defaults, and per-field
// heuristics.
package reconcile

import (
	"context"
	"log/slog"

	"github.com/listenupapp/bookpage/internal/domain"
)

// Defaults is the read side of the preference store.
type Defaults interface {
	GetFieldDefault(ctx context.Context, field domain.Field) (domain.SourceID, bool, error)
	PreferAudiobookCovers(ctx context.Context) (bool, error)
}

// Resolved is the active candidate for one field.
type Resolved struct {
	Field     domain.Field          `json:"field"`
	Value     domain.CandidateValue `json:"value"`
	UserChose bool                  `json:"user_chose"`
}

// Reconciler picks field values. It never returns errors: store failures
// degrade to "no stored default".
type Reconciler struct {
	defaults Defaults
	logger   *slog.Logger
}

// New creates a Reconciler. defaults may be nil.
func New(defaults Defaults, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{defaults: defaults, logger: logger}
}

// Initialize assigns an automatic selection to every field that has
// candidates but no selection yet. Fields the user has chosen are left alone.
func (r *Reconciler) Initialize(ctx context.Context, st *State, cands domain.Candidates) {
	var (
		coversLoaded bool
		preferCovers bool
	)

	for _, field := range domain.AllFields() {
		fieldCands := cands[field]
		if len(fieldCands) == 0 || st.Interacted(field) {
			continue
		}
		if _, ok := st.selections[field]; ok {
			continue
		}

		if src, ok := r.storedDefault(ctx, field, cands); ok {
			st.selections[field] = src
			continue
		}

		if field == domain.FieldThumbnail && !coversLoaded {
			preferCovers = r.preferCovers(ctx)
			coversLoaded = true
		}

		if src, ok := smartDefault(field, cands, preferCovers); ok {
			st.selections[field] = src
			continue
		}

		st.selections[field] = fallback(fieldCands)
	}
}

// Resolve returns the active candidate for every field that has candidates.
// A selection whose candidate is missing falls back to original, then to
// the first candidate, so the result never points outside the list.
func (r *Reconciler) Resolve(st *State, cands domain.Candidates) map[domain.Field]Resolved {
	out := make(map[domain.Field]Resolved, len(cands))
	for _, field := range domain.AllFields() {
		fieldCands := cands[field]
		if len(fieldCands) == 0 {
			continue
		}

		selected, ok := st.Selection(field)
		src := selected
		if !ok || !cands.Has(field, selected) {
			src = fallback(fieldCands)
		}
		value, _ := cands.Find(field, src)
		out[field] = Resolved{
			Field:     field,
			Value:     value,
			UserChose: st.Interacted(field) && src == selected,
		}
	}
	return out
}

func (r *Reconciler) storedDefault(ctx context.Context, field domain.Field, cands domain.Candidates) (domain.SourceID, bool) {
	if r.defaults == nil {
		return domain.SourceID{}, false
	}

	src, ok, err := r.defaults.GetFieldDefault(ctx, field)
	if err != nil {
		r.logger.Warn("failed to read field default", "field", field, "error", err)
		return domain.SourceID{}, false
	}
	if !ok {
		return domain.SourceID{}, false
	}
	if !cands.Has(field, src) {
		r.logger.Debug("field default not available in this session",
			"field", field,
			"source_id", src.String(),
		)
		return domain.SourceID{}, false
	}
	return src, true
}

func (r *Reconciler) preferCovers(ctx context.Context) bool {
	if r.defaults == nil {
		return false
	}
	prefer, err := r.defaults.PreferAudiobookCovers(ctx)
	if err != nil {
		r.logger.Warn("failed to read cover preference", "error", err)
		return false
	}
	return prefer
}

// smartDefault applies the per-field heuristics.
func smartDefault(field domain.Field, cands domain.Candidates, preferCovers bool) (domain.SourceID, bool) {
	hasOriginal := cands.Has(field, domain.Original)
	hasAudiobook := cands.Has(field, domain.Audiobook)

	switch field {
	case domain.FieldDescription:
		if hasAudiobook {
			return domain.Audiobook, true
		}
		if !hasOriginal && cands.Has(field, domain.AudiobookSummary) {
			return domain.AudiobookSummary, true
		}
	case domain.FieldPublisher:
		if !hasOriginal && hasAudiobook {
			return domain.Audiobook, true
		}
	case domain.FieldThumbnail:
		if preferCovers && hasAudiobook {
			return domain.Audiobook, true
		}
	case domain.FieldReleaseDate:
		return PickReleaseDate(cands[field])
	case domain.FieldTitle, domain.FieldPageCount:
	}
	return domain.SourceID{}, false
}

func fallback(cands []domain.CandidateValue) domain.SourceID {
	for _, c := range cands {
		if c.Source == domain.Original {
			return domain.Original
		}
	}
	return cands[0].Source
}
