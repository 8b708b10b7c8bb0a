package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookpage/internal/domain"
	domainerrors "github.com/listenupapp/bookpage/internal/errors"
	"github.com/listenupapp/bookpage/internal/service"
	"github.com/listenupapp/bookpage/internal/session"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/reviews",
		Summary:       "Create review",
		Description:   "Starts a review from a primary record, an optional audiobook record, and alternate editions",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReview",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Get review",
		Description: "Returns field candidates, current selections, and categories",
		Tags:        []string{"Reviews"},
	}, s.handleGetReview)

	huma.Register(s.api, huma.Operation{
		OperationID:   "abandonReview",
		Method:        http.MethodDelete,
		Path:          "/api/v1/reviews/{id}",
		Summary:       "Abandon review",
		Description:   "Discards a review without publishing",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleAbandonReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "attachAudiobook",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/audiobook",
		Summary:     "Attach audiobook",
		Description: "Adds the audiobook record; untouched fields are re-evaluated",
		Tags:        []string{"Reviews"},
	}, s.handleAttachAudiobook)

	huma.Register(s.api, huma.Operation{
		OperationID: "addEditions",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews/{id}/editions",
		Summary:     "Add editions",
		Description: "Appends alternate edition records; untouched fields are re-evaluated",
		Tags:        []string{"Reviews"},
	}, s.handleAddEditions)

	huma.Register(s.api, huma.Operation{
		OperationID: "selectFieldSource",
		Method:      http.MethodPut,
		Path:        "/api/v1/reviews/{id}/fields/{field}",
		Summary:     "Select field source",
		Description: "Chooses the source for a field and remembers it as the default for future reviews",
		Tags:        []string{"Reviews"},
	}, s.handleSelectSource)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPublishRecord",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews/{id}/record",
		Summary:     "Get publish record",
		Description: "Returns the finalized record built from the current selections",
		Tags:        []string{"Reviews"},
	}, s.handleGetRecord)
}

// === DTOs ===

type ReviewIDInput struct {
	ID string `path:"id" doc:"Review ID"`
}

type ReviewOutput struct {
	Body session.View
}

type CreateReviewInput struct {
	Body service.ReviewRecords
}

type AttachAudiobookInput struct {
	ID   string `path:"id" doc:"Review ID"`
	Body domain.AudiobookRecord
}

type AddEditionsRequest struct {
	Editions []domain.EditionRecord `json:"editions" minItems:"1" doc:"Edition records to append"`
}

type AddEditionsInput struct {
	ID   string `path:"id" doc:"Review ID"`
	Body AddEditionsRequest
}

type SelectSourceRequest struct {
	SourceID string `json:"source_id" minLength:"1" doc:"Source selector: original, audiobook, audiobook_summary, edition:<n>, first_published, copyright, audiobook_copyright"`
}

type SelectSourceInput struct {
	ID    string `path:"id" doc:"Review ID"`
	Field string `path:"field" enum:"title,description,publisher,release_date,page_count,thumbnail" doc:"Field name"`
	Body  SelectSourceRequest
}

type PublishRecordOutput struct {
	Body domain.PublishRecord
}

// === Handlers ===

func (s *Server) handleCreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	view, err := s.reviews.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleGetReview(ctx context.Context, input *ReviewIDInput) (*ReviewOutput, error) {
	view, err := s.reviews.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleAbandonReview(ctx context.Context, input *ReviewIDInput) (*struct{}, error) {
	if err := s.reviews.Abandon(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleAttachAudiobook(ctx context.Context, input *AttachAudiobookInput) (*ReviewOutput, error) {
	view, err := s.reviews.AttachAudiobook(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleAddEditions(ctx context.Context, input *AddEditionsInput) (*ReviewOutput, error) {
	view, err := s.reviews.AddEditions(ctx, input.ID, input.Body.Editions)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleSelectSource(ctx context.Context, input *SelectSourceInput) (*ReviewOutput, error) {
	field, source, err := parseFieldSource(input.Field, input.Body.SourceID)
	if err != nil {
		return nil, err
	}

	view, err := s.reviews.SelectSource(ctx, input.ID, field, source)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: view}, nil
}

func (s *Server) handleGetRecord(ctx context.Context, input *ReviewIDInput) (*PublishRecordOutput, error) {
	rec, err := s.reviews.Finalize(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PublishRecordOutput{Body: rec}, nil
}

func parseFieldSource(rawField, rawSource string) (domain.Field, domain.SourceID, error) {
	field, err := domain.ParseField(rawField)
	if err != nil {
		return "", domain.SourceID{}, domainerrors.ValidationWithDetails(err.Error(), map[string]string{"field": rawField})
	}
	source, err := domain.ParseSourceID(rawSource)
	if err != nil {
		return "", domain.SourceID{}, domainerrors.ValidationWithDetails(err.Error(), map[string]string{"source_id": rawSource})
	}
	return field, source, nil
}
