package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookpage/internal/domain"
	domainerrors "github.com/listenupapp/bookpage/internal/errors"
	"github.com/listenupapp/bookpage/internal/validation"
)

type selectRequest struct {
	Field  string `json:"field" validate:"required,field"`
	Source string `json:"source_id" validate:"required,source_id"`
}

type mapRequest struct {
	From string `json:"from" validate:"required,max=200"`
	To   string `json:"to" validate:"required,max=200,nefield=From"`
}

func TestValidator_Success(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(selectRequest{Field: "publisher", Source: "edition:1"}))
	assert.NoError(t, v.Validate(mapRequest{From: "Sci-Fi", To: "Science Fiction"}))
	assert.NoError(t, v.Validate(domain.EditionRecord{PageCount: 10}))
}

func TestValidator_DomainTags(t *testing.T) {
	v := validation.New()

	err := v.Validate(selectRequest{Field: "isbn", Source: "library"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details["selectRequest.field"], "title")
	assert.Contains(t, details["selectRequest.source_id"], "edition:<n>")
}

func TestValidator_Required(t *testing.T) {
	v := validation.New()

	err := v.Validate(mapRequest{From: "", To: "Fantasy"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestValidator_SelfMapRejected(t *testing.T) {
	v := validation.New()

	err := v.Validate(mapRequest{From: "Fantasy", To: "Fantasy"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must differ from From", details["mapRequest.to"])
}

func TestValidator_NegativePageCount(t *testing.T) {
	v := validation.New()

	err := v.Validate(domain.EditionRecord{PageCount: -1})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
