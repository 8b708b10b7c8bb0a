package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "selectCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/categories/select",
		Summary:     "Select category",
		Description: "Adds or removes a tag from the publish selection",
		Tags:        []string{"Categories"},
	}, s.handleSelectCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "ignoreCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/categories/ignore",
		Summary:     "Ignore category",
		Description: "Adds a tag to the global ignore set and deselects it",
		Tags:        []string{"Categories"},
	}, s.handleIgnoreCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "unignoreCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/categories/unignore",
		Summary:     "Unignore category",
		Description: "Removes a tag from the global ignore set and selects it",
		Tags:        []string{"Categories"},
	}, s.handleUnignoreCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "mapCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/categories/map",
		Summary:     "Map category",
		Description: "Merges one tag into another for this and all future reviews",
		Tags:        []string{"Categories"},
	}, s.handleMapCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "unmapCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/categories/unmap",
		Summary:     "Unmap category",
		Description: "Removes the mapping of a tag",
		Tags:        []string{"Categories"},
	}, s.handleUnmapCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "acceptCategorySuggestion",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/categories/suggestions/accept",
		Summary:     "Accept merge suggestion",
		Description: "Maps one tag of a suggested duplicate pair onto the other",
		Tags:        []string{"Categories"},
	}, s.handleAcceptSuggestion)
}

// === DTOs ===

type TagRequest struct {
	Tag string `json:"tag" minLength:"1" maxLength:"200" doc:"Category tag"`
}

type TagInput struct {
	ID   string `path:"id" doc:"Review ID"`
	Body TagRequest
}

type SelectCategoryRequest struct {
	Tag      string `json:"tag" minLength:"1" maxLength:"200" doc:"Category tag"`
	Selected bool   `json:"selected" doc:"Whether the tag is published"`
}

type SelectCategoryInput struct {
	ID   string `path:"id" doc:"Review ID"`
	Body SelectCategoryRequest
}

type MapTagRequest struct {
	From string `json:"from" minLength:"1" maxLength:"200" doc:"Tag to merge"`
	To   string `json:"to" minLength:"1" maxLength:"200" doc:"Tag to merge into"`
}

type MapCategoryInput struct {
	ID   string `path:"id" doc:"Review ID"`
	Body MapTagRequest
}

// === Handlers ===

func (s *Server) handleSelectCategory(ctx context.Context, input *SelectCategoryInput) (*ReviewOutput, error) {
	view, err := s.reviews.SetCategorySelected(ctx, input.ID, input.Body.Tag, input.Body.Selected)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleIgnoreCategory(ctx context.Context, input *TagInput) (*ReviewOutput, error) {
	view, err := s.reviews.IgnoreCategory(ctx, input.ID, input.Body.Tag)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleUnignoreCategory(ctx context.Context, input *TagInput) (*ReviewOutput, error) {
	view, err := s.reviews.UnignoreCategory(ctx, input.ID, input.Body.Tag)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleMapCategory(ctx context.Context, input *MapCategoryInput) (*ReviewOutput, error) {
	view, err := s.reviews.MapCategory(ctx, input.ID, input.Body.From, input.Body.To)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleUnmapCategory(ctx context.Context, input *TagInput) (*ReviewOutput, error) {
	view, err := s.reviews.UnmapCategory(ctx, input.ID, input.Body.Tag)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleAcceptSuggestion(ctx context.Context, input *MapCategoryInput) (*ReviewOutput, error) {
	view, err := s.reviews.AcceptSuggestion(ctx, input.ID, input.Body.From, input.Body.To)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}
