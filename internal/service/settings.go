package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/listenupapp/bookpage/internal/categories"
	"github.com/listenupapp/bookpage/internal/domain"
	domainerrors "github.com/listenupapp/bookpage/internal/errors"
	"github.com/listenupapp/bookpage/internal/settings"
)

// SettingsService manages the persisted review preferences outside of any
// review: field defaults, the covers flag, and the category rules.
type SettingsService struct {
	repo   settings.Repository
	logger *slog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo settings.Repository, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SettingsService{repo: repo, logger: logger}
}

// ListFieldDefaults returns every stored field default.
func (s *SettingsService) ListFieldDefaults(ctx context.Context) ([]domain.FieldDefault, error) {
	defaults, err := s.repo.ListFieldDefaults(ctx)
	if err != nil {
		return nil, fmt.Errorf("list field defaults: %w", err)
	}
	if defaults == nil {
		defaults = []domain.FieldDefault{}
	}
	return defaults, nil
}

// SetFieldDefault stores the preferred source for a field.
func (s *SettingsService) SetFieldDefault(ctx context.Context, field domain.Field, source domain.SourceID) error {
	if !field.Valid() {
		return domainerrors.Validationf("unknown field %q", field)
	}
	if err := s.repo.SetFieldDefault(ctx, field, source); err != nil {
		return fmt.Errorf("set field default: %w", err)
	}

	s.logger.Info("field default updated", "field", field, "source_id", source.String())
	return nil
}

// PreferAudiobookCovers reports whether audiobook covers are preferred.
func (s *SettingsService) PreferAudiobookCovers(ctx context.Context) (bool, error) {
	prefer, err := s.repo.PreferAudiobookCovers(ctx)
	if err != nil {
		return false, fmt.Errorf("get covers preference: %w", err)
	}
	return prefer, nil
}

// SetPreferAudiobookCovers updates the covers preference.
func (s *SettingsService) SetPreferAudiobookCovers(ctx context.Context, prefer bool) error {
	if err := s.repo.SetPreferAudiobookCovers(ctx, prefer); err != nil {
		return fmt.Errorf("set covers preference: %w", err)
	}

	s.logger.Info("covers preference updated", "prefer_audiobook_covers", prefer)
	return nil
}

// CategoryRules returns the mapping graph and the ignore set.
func (s *SettingsService) CategoryRules(ctx context.Context) (*domain.CategoryRules, error) {
	rules, err := s.repo.CategoryRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load category rules: %w", err)
	}
	return rules, nil
}

// MapTag adds or replaces the outbound edge of from. Both tags are stored in
// canonical form.
func (s *SettingsService) MapTag(ctx context.Context, from, to string) (domain.TagMapping, error) {
	m := domain.TagMapping{From: categories.Canonicalize(from), To: categories.Canonicalize(to)}
	if m.From == "" || m.To == "" {
		return domain.TagMapping{}, domainerrors.Validation("both tags are required")
	}
	if m.From == m.To {
		return domain.TagMapping{}, domainerrors.Validationf("cannot map %q onto itself", m.From)
	}

	rules, err := s.repo.CategoryRules(ctx)
	if err != nil {
		return domain.TagMapping{}, fmt.Errorf("map tag: %w", err)
	}
	if rules.Reverses(m.From, m.To) {
		return domain.TagMapping{}, domainerrors.Validationf("%q is already mapped onto %q", m.To, m.From)
	}

	if err := s.repo.MapTag(ctx, m.From, m.To); err != nil {
		return domain.TagMapping{}, fmt.Errorf("map tag: %w", err)
	}

	s.logger.Info("tag mapped", "from", m.From, "to", m.To)
	return m, nil
}

// UnmapTag removes the outbound edge of tag.
func (s *SettingsService) UnmapTag(ctx context.Context, tag string) error {
	canonical, err := requireTag(tag)
	if err != nil {
		return err
	}
	if err := s.repo.UnmapTag(ctx, canonical); err != nil {
		return fmt.Errorf("unmap tag: %w", err)
	}

	s.logger.Info("tag unmapped", "tag", canonical)
	return nil
}

// IgnoreTag adds tag to the ignore set.
func (s *SettingsService) IgnoreTag(ctx context.Context, tag string) error {
	canonical, err := requireTag(tag)
	if err != nil {
		return err
	}
	if err := s.repo.IgnoreTag(ctx, canonical); err != nil {
		return fmt.Errorf("ignore tag: %w", err)
	}

	s.logger.Info("tag ignored", "tag", canonical)
	return nil
}

// UnignoreTag removes tag from the ignore set.
func (s *SettingsService) UnignoreTag(ctx context.Context, tag string) error {
	canonical, err := requireTag(tag)
	if err != nil {
		return err
	}
	if err := s.repo.UnignoreTag(ctx, canonical); err != nil {
		return fmt.Errorf("unignore tag: %w", err)
	}

	s.logger.Info("tag unignored", "tag", canonical)
	return nil
}

func requireTag(tag string) (string, error) {
	canonical := categories.Canonicalize(tag)
	if canonical == "" {
		return "", domainerrors.Validation("tag is required")
	}
	return canonical, nil
}
