// Package session assembles one book review: candidate fields, their
// reconciled selections, the normalized categories, and the finalized record.
package session

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/listenupapp/bookpage/internal/categories"
	"github.com/listenupapp/bookpage/internal/domain"
	domainerrors "github.com/listenupapp/bookpage/internal/errors"
	"github.com/listenupapp/bookpage/internal/reconcile"
	"github.com/listenupapp/bookpage/internal/settings"
	"github.com/listenupapp/bookpage/internal/sources"
)

// Deps are the collaborators shared by all sessions.
type Deps struct {
	Reconciler *reconcile.Reconciler
	Normalizer *categories.Normalizer
	Settings   settings.Repository
	Logger     *slog.Logger
}

// Session is one review. All methods are safe for concurrent use; calls are
// serialized so each session has a single writer.
type Session struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	deps      Deps
	logger    *slog.Logger

	input      sources.Input
	registry   sources.Result
	state      *reconcile.State
	categories categories.Result
	selection  *categories.Selection
}

// New starts a review over the given records and runs the initial
// reconciliation and normalization passes.
func New(ctx context.Context, id string, in sources.Input, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Settings == nil {
		deps.Settings = settings.NewMemory()
	}
	if deps.Reconciler == nil {
		deps.Reconciler = reconcile.New(deps.Settings, deps.Logger)
	}
	if deps.Normalizer == nil {
		deps.Normalizer = categories.New(categories.DefaultThreshold)
	}

	if in.Audiobook.IsEmpty() {
		in.Audiobook = nil
	}

	s := &Session{
		id:        id,
		createdAt: time.Now().UTC(),
		deps:      deps,
		logger:    deps.Logger.With("review_id", id),
		input:     in,
		state:     reconcile.NewState(),
		selection: categories.NewSelection(),
	}
	s.rebuild(ctx)
	return s
}

// ID returns the review ID.
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the review started.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// AttachAudiobook adds (or replaces) the audiobook record. An empty record
// detaches the audiobook. Fields the user has not touched are re-initialized
// against the new candidates.
func (s *Session) AttachAudiobook(ctx context.Context, ab domain.AudiobookRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input.Audiobook = &ab
	if ab.IsEmpty() {
		s.input.Audiobook = nil
	}
	s.state.Invalidate()
	s.rebuild(ctx)
	s.logger.Info("audiobook attached", "asin", ab.ASIN)
}

// AddEditions appends edition records. Fields the user has not touched are
// re-initialized against the new candidates.
func (s *Session) AddEditions(ctx context.Context, editions ...domain.EditionRecord) {
	if len(editions) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.input.Editions = append(s.input.Editions, editions...)
	s.state.Invalidate()
	s.rebuild(ctx)
	s.logger.Info("editions added", "added", len(editions), "total", len(s.input.Editions))
}

// SelectSource records a user choice for field and stores it as the field
// default for future reviews.
func (s *Session) SelectSource(ctx context.Context, field domain.Field, source domain.SourceID) error {
	if !field.Valid() {
		return domainerrors.Validationf("unknown field %q", field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.Candidates.Has(field, source) {
		return domainerrors.NotFoundf("no %s candidate from %s", field, source)
	}
	if err := s.deps.Settings.SetFieldDefault(ctx, field, source); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "save field default")
	}

	s.state.Select(field, source)
	s.logger.Debug("source selected", "field", field, "source_id", source.String())
	return nil
}

// SetCategorySelected toggles a tag in the publish selection.
func (s *Session) SetCategorySelected(ctx context.Context, tag string, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical := categories.Canonicalize(tag)
	if canonical == "" {
		return domainerrors.Validation("tag is empty")
	}

	s.normalize(ctx)
	return s.selection.Set(s.categories, canonical, selected)
}

// IgnoreCategory adds tag to the ignore set and deselects it.
func (s *Session) IgnoreCategory(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, err := s.knownTag(ctx, tag)
	if err != nil {
		return err
	}
	if err := s.deps.Settings.IgnoreTag(ctx, canonical); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "ignore tag")
	}

	s.selection.Remove(canonical)
	s.normalize(ctx)
	s.logger.Info("category ignored", "tag", canonical)
	return nil
}

// UnignoreCategory removes tag from the ignore set and selects it again.
func (s *Session) UnignoreCategory(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, err := s.knownTag(ctx, tag)
	if err != nil {
		return err
	}
	if err := s.deps.Settings.UnignoreTag(ctx, canonical); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "unignore tag")
	}

	s.normalize(ctx)
	if s.categories.Selectable(canonical) {
		_ = s.selection.Set(s.categories, canonical, true)
	}
	s.logger.Info("category unignored", "tag", canonical)
	return nil
}

// MapCategory merges from into to. If from was selected, to is selected in
// its place.
func (s *Session) MapCategory(ctx context.Context, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mapCategory(ctx, from, to)
}

// UnmapCategory removes the outbound edge of from. The tag is selected again
// when the tag it was merged into is selected.
func (s *Session) UnmapCategory(ctx context.Context, from string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, err := s.knownTag(ctx, from)
	if err != nil {
		return err
	}

	previous, _ := s.categories.Find(canonical)
	for _, c := range s.categories.Categories {
		if c.MappedFrom == canonical {
			previous = c
		}
	}

	if err := s.deps.Settings.UnmapTag(ctx, canonical); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "unmap tag")
	}

	targetSelected := previous.IsMapped && s.selection.Contains(previous.Processed)
	s.normalize(ctx)
	if targetSelected && s.categories.Selectable(canonical) {
		_ = s.selection.Set(s.categories, canonical, true)
	}
	s.logger.Info("category unmapped", "tag", canonical)
	return nil
}

// AcceptSuggestion applies a similarity suggestion as a regular mapping.
// The pair must be among the current suggestions, in either order.
func (s *Session) AcceptSuggestion(ctx context.Context, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.normalize(ctx)
	from, to = categories.Canonicalize(from), categories.Canonicalize(to)
	found := slices.ContainsFunc(s.categories.Suggestions, func(p domain.SimilarPair) bool {
		return (p.A == from && p.B == to) || (p.A == to && p.B == from)
	})
	if !found {
		return domainerrors.NotFoundf("no suggestion to merge %q into %q", from, to)
	}
	return s.mapCategory(ctx, from, to)
}

func (s *Session) mapCategory(ctx context.Context, from, to string) error {
	canonicalFrom, err := s.knownTag(ctx, from)
	if err != nil {
		return err
	}
	canonicalTo := categories.Canonicalize(to)
	if canonicalTo == "" {
		return domainerrors.Validation("mapping target is empty")
	}
	if canonicalTo == canonicalFrom {
		return domainerrors.Validationf("cannot map %q onto itself", canonicalFrom)
	}
	rules, err := s.deps.Settings.CategoryRules(ctx)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "load category rules")
	}
	if rules.Reverses(canonicalFrom, canonicalTo) {
		return domainerrors.Validationf("%q is already mapped onto %q", canonicalTo, canonicalFrom)
	}

	if err := s.deps.Settings.MapTag(ctx, canonicalFrom, canonicalTo); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "map tag")
	}

	wasSelected := s.selection.Contains(canonicalFrom)
	s.normalize(ctx)
	if wasSelected && s.categories.Selectable(canonicalTo) {
		_ = s.selection.Set(s.categories, canonicalTo, true)
	}
	s.logger.Info("category mapped", "from", canonicalFrom, "to", canonicalTo)
	return nil
}

// knownTag canonicalizes tag and checks that this review has it, either as a
// displayed tag or as the source of a mapping.
func (s *Session) knownTag(ctx context.Context, tag string) (string, error) {
	canonical := categories.Canonicalize(tag)
	if canonical == "" {
		return "", domainerrors.Validation("tag is empty")
	}

	s.normalize(ctx)
	if s.categories.Has(canonical) {
		return canonical, nil
	}
	for _, c := range s.categories.Categories {
		if c.MappedFrom == canonical {
			return canonical, nil
		}
	}
	return "", domainerrors.NotFoundf("category %q not found", canonical)
}

// rebuild recomputes candidates, automatic selections, and categories.
func (s *Session) rebuild(ctx context.Context) {
	s.registry = sources.Build(s.input)
	s.deps.Reconciler.Initialize(ctx, s.state, s.registry.Candidates)
	s.normalize(ctx)
}

// normalize re-runs category normalization against the current rules so
// edits made elsewhere are reflected.
func (s *Session) normalize(ctx context.Context) {
	rules, err := s.deps.Settings.CategoryRules(ctx)
	if err != nil {
		s.logger.Warn("failed to load category rules", "error", err)
		rules = domain.NewCategoryRules()
	}
	s.categories = s.deps.Normalizer.Normalize(s.registry.Categories, rules)
	s.selection.Sync(s.categories)
}

// FieldView is one field as shown to the reviewer.
type FieldView struct {
	Field      domain.Field            `json:"field"`
	Selected   domain.CandidateValue   `json:"selected"`
	Display    string                  `json:"display"`
	UserChose  bool                    `json:"user_chose"`
	Candidates []domain.CandidateValue `json:"candidates"`
}

// View is a snapshot of the review.
type View struct {
	ID                 string                     `json:"id"`
	CreatedAt          time.Time                  `json:"created_at"`
	HasAudiobook       bool                       `json:"has_audiobook"`
	EditionCount       int                        `json:"edition_count"`
	Fields             []FieldView                `json:"fields"`
	Categories         []domain.ProcessedCategory `json:"categories"`
	Suggestions        []domain.SimilarPair       `json:"suggestions"`
	SelectedCategories []string                   `json:"selected_categories"`
}

// View returns a snapshot of the review.
func (s *Session) View(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.normalize(ctx)
	resolved := s.deps.Reconciler.Resolve(s.state, s.registry.Candidates)

	fields := make([]FieldView, 0, len(resolved))
	for _, field := range domain.AllFields() {
		r, ok := resolved[field]
		if !ok {
			continue
		}
		fields = append(fields, FieldView{
			Field:      field,
			Selected:   r.Value,
			Display:    display(field, r.Value.Content),
			UserChose:  r.UserChose,
			Candidates: slices.Clone(s.registry.Candidates[field]),
		})
	}

	return View{
		ID:                 s.id,
		CreatedAt:          s.createdAt,
		HasAudiobook:       s.input.Audiobook != nil,
		EditionCount:       len(s.input.Editions),
		Fields:             fields,
		Categories:         s.categories.Categories,
		Suggestions:        s.categories.Suggestions,
		SelectedCategories: s.selection.Tags(),
	}
}

// Finalize returns the record to publish. Fields without a value are left
// empty and omitted from the payload.
func (s *Session) Finalize(ctx context.Context) domain.PublishRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.normalize(ctx)
	resolved := s.deps.Reconciler.Resolve(s.state, s.registry.Candidates)
	value := func(f domain.Field) string { return resolved[f].Value.Content }

	rec := domain.PublishRecord{
		Title:       value(domain.FieldTitle),
		Description: value(domain.FieldDescription),
		Publisher:   value(domain.FieldPublisher),
		ReleaseDate: value(domain.FieldReleaseDate),
		Thumbnail:   value(domain.FieldThumbnail),
		Authors:     slices.Clone(s.input.Primary.Authors),
		ISBN10:      s.input.Primary.ISBN10,
		ISBN13:      s.input.Primary.ISBN13,
		Categories:  s.selection.Tags(),
	}
	if n, err := strconv.Atoi(value(domain.FieldPageCount)); err == nil {
		rec.PageCount = n
	}

	if ab := s.input.Audiobook; ab != nil {
		if len(rec.Authors) == 0 {
			rec.Authors = slices.Clone(ab.Authors)
		}
		rec.Narrators = slices.Clone(ab.Narrators)
		rec.ASIN = ab.ASIN
		rec.DurationHours = ab.TotalDurationHours
		rec.ChapterCount = ab.ChapterCount
	}
	return rec
}

func display(field domain.Field, content string) string {
	if field == domain.FieldReleaseDate {
		return reconcile.FormatDate(content)
	}
	return content
}
