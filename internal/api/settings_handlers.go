package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookpage/internal/domain"
)

func (s *Server) registerSettingsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFieldDefaults",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings/field-defaults",
		Summary:     "List field defaults",
		Description: "Returns the preferred source per field",
		Tags:        []string{"Settings"},
	}, s.handleListFieldDefaults)

	huma.Register(s.api, huma.Operation{
		OperationID: "setFieldDefault",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings/field-defaults/{field}",
		Summary:     "Set field default",
		Description: "Stores the preferred source for a field",
		Tags:        []string{"Settings"},
	}, s.handleSetFieldDefault)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCoversPreference",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings/prefer-audiobook-covers",
		Summary:     "Get covers preference",
		Description: "Reports whether audiobook covers win by default",
		Tags:        []string{"Settings"},
	}, s.handleGetCoversPreference)

	huma.Register(s.api, huma.Operation{
		OperationID: "setCoversPreference",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings/prefer-audiobook-covers",
		Summary:     "Set covers preference",
		Description: "Sets whether audiobook covers win by default",
		Tags:        []string{"Settings"},
	}, s.handleSetCoversPreference)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategoryRules",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings/categories",
		Summary:     "Get category rules",
		Description: "Returns the tag mappings and the ignore set",
		Tags:        []string{"Settings"},
	}, s.handleGetCategoryRules)

	huma.Register(s.api, huma.Operation{
		OperationID: "mapTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/settings/categories/map",
		Summary:     "Map tag",
		Description: "Adds or replaces a tag mapping",
		Tags:        []string{"Settings"},
	}, s.handleMapTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "unmapTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/settings/categories/unmap",
		Summary:     "Unmap tag",
		Description: "Removes a tag mapping",
		Tags:        []string{"Settings"},
	}, s.handleUnmapTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "ignoreTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/settings/categories/ignore",
		Summary:     "Ignore tag",
		Description: "Adds a tag to the ignore set",
		Tags:        []string{"Settings"},
	}, s.handleIgnoreTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "unignoreTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/settings/categories/unignore",
		Summary:     "Unignore tag",
		Description: "Removes a tag from the ignore set",
		Tags:        []string{"Settings"},
	}, s.handleUnignoreTag)
}

// === DTOs ===

type FieldDefaultsResponse struct {
	Defaults []domain.FieldDefault `json:"defaults" doc:"Stored field defaults"`
}

type FieldDefaultsOutput struct {
	Body FieldDefaultsResponse
}

type SetFieldDefaultInput struct {
	Field string `path:"field" enum:"title,description,publisher,release_date,page_count,thumbnail" doc:"Field name"`
	Body  SelectSourceRequest
}

type FieldDefaultOutput struct {
	Body domain.FieldDefault
}

type CoversPreference struct {
	Prefer bool `json:"prefer" doc:"Whether audiobook covers win by default"`
}

type CoversPreferenceInput struct {
	Body CoversPreference
}

type CoversPreferenceOutput struct {
	Body CoversPreference
}

type CategoryRulesOutput struct {
	Body domain.CategoryRules
}

type MapTagInput struct {
	Body MapTagRequest
}

type TagMappingOutput struct {
	Body domain.TagMapping
}

type SettingsTagInput struct {
	Body TagRequest
}

// === Handlers ===

func (s *Server) handleListFieldDefaults(ctx context.Context, _ *struct{}) (*FieldDefaultsOutput, error) {
	defaults, err := s.settings.ListFieldDefaults(ctx)
	if err != nil {
		return nil, err
	}
	return &FieldDefaultsOutput{Body: FieldDefaultsResponse{Defaults: defaults}}, nil
}

func (s *Server) handleSetFieldDefault(ctx context.Context, input *SetFieldDefaultInput) (*FieldDefaultOutput, error) {
	field, source, err := parseFieldSource(input.Field, input.Body.SourceID)
	if err != nil {
		return nil, err
	}
	if err := s.settings.SetFieldDefault(ctx, field, source); err != nil {
		return nil, err
	}
	return &FieldDefaultOutput{Body: domain.FieldDefault{Field: field, Source: source}}, nil
}

func (s *Server) handleGetCoversPreference(ctx context.Context, _ *struct{}) (*CoversPreferenceOutput, error) {
	prefer, err := s.settings.PreferAudiobookCovers(ctx)
	if err != nil {
		return nil, err
	}
	return &CoversPreferenceOutput{Body: CoversPreference{Prefer: prefer}}, nil
}

func (s *Server) handleSetCoversPreference(ctx context.Context, input *CoversPreferenceInput) (*CoversPreferenceOutput, error) {
	if err := s.settings.SetPreferAudiobookCovers(ctx, input.Body.Prefer); err != nil {
		return nil, err
	}
	return &CoversPreferenceOutput{Body: input.Body}, nil
}

func (s *Server) handleGetCategoryRules(ctx context.Context, _ *struct{}) (*CategoryRulesOutput, error) {
	rules, err := s.settings.CategoryRules(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryRulesOutput{Body: *rules}, nil
}

func (s *Server) handleMapTag(ctx context.Context, input *MapTagInput) (*TagMappingOutput, error) {
	m, err := s.settings.MapTag(ctx, input.Body.From, input.Body.To)
	if err != nil {
		return nil, err
	}
	return &TagMappingOutput{Body: m}, nil
}

func (s *Server) handleUnmapTag(ctx context.Context, input *SettingsTagInput) (*CategoryRulesOutput, error) {
	if err := s.settings.UnmapTag(ctx, input.Body.Tag); err != nil {
		return nil, err
	}
	return s.handleGetCategoryRules(ctx, nil)
}

func (s *Server) handleIgnoreTag(ctx context.Context, input *SettingsTagInput) (*CategoryRulesOutput, error) {
	if err := s.settings.IgnoreTag(ctx, input.Body.Tag); err != nil {
		return nil, err
	}
	return s.handleGetCategoryRules(ctx, nil)
}

func (s *Server) handleUnignoreTag(ctx context.Context, input *SettingsTagInput) (*CategoryRulesOutput, error) {
	if err := s.settings.UnignoreTag(ctx, input.Body.Tag); err != nil {
		return nil, err
	}
	return s.handleGetCategoryRules(ctx, nil)
}
