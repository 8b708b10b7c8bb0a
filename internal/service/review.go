package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/listenupapp/bookpage/internal/categories"
	"github.com/listenupapp/bookpage/internal/domain"
	domainerrors "github.com/listenupapp/bookpage/internal/errors"
	"github.com/listenupapp/bookpage/internal/id"
	"github.com/listenupapp/bookpage/internal/reconcile"
	"github.com/listenupapp/bookpage/internal/session"
	"github.com/listenupapp/bookpage/internal/settings"
	"github.com/listenupapp/bookpage/internal/sources"
	"github.com/listenupapp/bookpage/internal/validation"
)

// DefaultSessionTTL is how long an untouched review stays in memory.
const DefaultSessionTTL = 2 * time.Hour

// ReviewRecords holds the provider records a review starts from.
type ReviewRecords struct {
	Primary   domain.BookRecord       `json:"primary" yaml:"primary"`
	Audiobook *domain.AudiobookRecord `json:"audiobook,omitempty" yaml:"audiobook,omitempty"`
	Editions  []domain.EditionRecord  `json:"editions,omitempty" yaml:"editions,omitempty" validate:"dive"`
}

// ReviewService owns the live review sessions. Sessions expire after the
// configured TTL of inactivity; expiry has no persisted side effects.
type ReviewService struct {
	sessions  *gocache.Cache
	ttl       time.Duration
	deps      session.Deps
	validator *validation.Validator
	logger    *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo settings.Repository, normalizer *categories.Normalizer, ttl time.Duration, logger *slog.Logger) *ReviewService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sessions := gocache.New(ttl, ttl/2)
	sessions.OnEvicted(func(reviewID string, _ any) {
		logger.Debug("review session released", "review_id", reviewID)
	})

	return &ReviewService{
		sessions: sessions,
		ttl:      ttl,
		deps: session.Deps{
			Reconciler: reconcile.New(repo, logger),
			Normalizer: normalizer,
			Settings:   repo,
			Logger:     logger,
		},
		validator: validation.New(),
		logger:    logger,
	}
}

// Create starts a review and returns its first view.
func (s *ReviewService) Create(ctx context.Context, in ReviewRecords) (session.View, error) {
	if err := s.validator.Validate(in); err != nil {
		return session.View{}, err
	}

	reviewID, err := id.NewReviewID()
	if err != nil {
		return session.View{}, fmt.Errorf("generate review id: %w", err)
	}

	sess := session.New(ctx, reviewID, sources.Input{
		Primary:   in.Primary,
		Audiobook: in.Audiobook,
		Editions:  in.Editions,
	}, s.deps)
	s.sessions.SetDefault(reviewID, sess)

	s.logger.Info("review created",
		"review_id", reviewID,
		"has_audiobook", !in.Audiobook.IsEmpty(),
		"editions", len(in.Editions),
	)

	return sess.View(ctx), nil
}

// Get returns the current view of a review.
func (s *ReviewService) Get(ctx context.Context, reviewID string) (session.View, error) {
	sess, err := s.lookup(reviewID)
	if err != nil {
		return session.View{}, err
	}
	return sess.View(ctx), nil
}

// Abandon drops a review without publishing.
func (s *ReviewService) Abandon(_ context.Context, reviewID string) error {
	if _, err := s.lookup(reviewID); err != nil {
		return err
	}
	s.sessions.Delete(reviewID)
	s.logger.Info("review abandoned", "review_id", reviewID)
	return nil
}

// Count returns the number of live reviews.
func (s *ReviewService) Count() int {
	return s.sessions.ItemCount()
}

// AttachAudiobook adds the audiobook record to a review.
func (s *ReviewService) AttachAudiobook(ctx context.Context, reviewID string, ab domain.AudiobookRecord) (session.View, error) {
	if err := s.validator.Validate(ab); err != nil {
		return session.View{}, err
	}
	return s.apply(ctx, reviewID, func(sess *session.Session) error {
		sess.AttachAudiobook(ctx, ab)
		return nil
	})
}

// AddEditions appends edition records to a review.
func (s *ReviewService) AddEditions(ctx context.Context, reviewID string, editions []domain.EditionRecord) (session.View, error) {
	for i := range editions {
		if err := s.validator.Validate(editions[i]); err != nil {
			return session.View{}, err
		}
	}
	return s.apply(ctx, reviewID, func(sess *session.Session) error {
		sess.AddEditions(ctx, editions...)
		return nil
	})
}

// SelectSource records the user's choice for a field.
func (s *ReviewService) SelectSource(ctx context.Context, reviewID string, field domain.Field, source domain.SourceID) (session.View, error) {
	return s.apply(ctx, reviewID, func(sess *session.Session) error {
		return sess.SelectSource(ctx, field, source)
	})
}

// SetCategorySelected toggles a tag in the publish selection.
func (s *ReviewService) SetCategorySelected(ctx context.Context, reviewID, tag string, selected bool) (session.View, error) {
	return s.apply(ctx, reviewID, func(sess *session.Session) error {
		return sess.SetCategorySelected(ctx, tag, selected)
	})
}

// IgnoreCategory adds a tag to the global ignore set.
func (s *ReviewService) IgnoreCategory(ctx context.Context, reviewID, tag string) (session.View, error) {
	return s.apply(ctx, reviewID, func(sess *session.Session) error {
		return sess.IgnoreCategory(ctx, tag)
	})
}

// UnignoreCategory removes a tag from the global ignore set.
func (s *ReviewService) UnignoreCategory(ctx context.Context, reviewID, tag string) (session.View, error) {
	return s.apply(ctx, reviewID, func(sess *session.Session) error {
		return sess.UnignoreCategory(ctx, tag)
	})
}

// MapCategory adds a global mapping edge from one tag to another.
func (s *ReviewService) MapCategory(ctx context.Context, reviewID, from, to string) (session.View, error) {
	return s.apply(ctx, reviewID, func(sess *session.Session) error {
		return sess.MapCategory(ctx, from, to)
	})
}

// UnmapCategory removes the outbound mapping edge of a tag.
func (s *ReviewService) UnmapCategory(ctx context.Context, reviewID, from string) (session.View, error) {
	return s.apply(ctx, reviewID, func(sess *session.Session) error {
		return sess.UnmapCategory(ctx, from)
	})
}

// AcceptSuggestion merges a suggested duplicate pair.
func (s *ReviewService) AcceptSuggestion(ctx context.Context, reviewID, from, to string) (session.View, error) {
	return s.apply(ctx, reviewID, func(sess *session.Session) error {
		return sess.AcceptSuggestion(ctx, from, to)
	})
}

// Finalize returns the record to publish. The review stays open so the
// caller can keep editing.
func (s *ReviewService) Finalize(ctx context.Context, reviewID string) (domain.PublishRecord, error) {
	sess, err := s.lookup(reviewID)
	if err != nil {
		return domain.PublishRecord{}, err
	}

	rec := sess.Finalize(ctx)
	s.logger.Info("review finalized",
		"review_id", reviewID,
		"title", rec.Title,
		"categories", len(rec.Categories),
	)
	return rec, nil
}

func (s *ReviewService) apply(ctx context.Context, reviewID string, fn func(*session.Session) error) (session.View, error) {
	if err := ctx.Err(); err != nil {
		return session.View{}, err
	}

	sess, err := s.lookup(reviewID)
	if err != nil {
		return session.View{}, err
	}
	if err := fn(sess); err != nil {
		return session.View{}, err
	}
	return sess.View(ctx), nil
}

// lookup finds a live session and extends its lifetime.
func (s *ReviewService) lookup(reviewID string) (*session.Session, error) {
	if !id.HasPrefix(reviewID, id.PrefixReview) {
		return nil, domainerrors.NotFoundf("review %s not found", reviewID)
	}

	v, ok := s.sessions.Get(reviewID)
	if !ok {
		return nil, domainerrors.NotFoundf("review %s not found", reviewID)
	}
	sess, ok := v.(*session.Session)
	if !ok {
		return nil, domainerrors.Internal("corrupt review session")
	}

	s.sessions.SetDefault(reviewID, sess)
	return sess, nil
}
