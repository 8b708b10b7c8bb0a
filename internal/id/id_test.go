package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	for range 500 {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "duplicate id %s", id)
		ids[id] = true
	}
}

func TestNewReviewID(t *testing.T) {
	id, err := NewReviewID()
	require.NoError(t, err)

	assert.True(t, HasPrefix(id, PrefixReview))
	// prefix + dash + 21 character nanoid
	assert.Len(t, id, len(PrefixReview)+1+21)
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("rev-abc", "rev"))
	assert.False(t, HasPrefix("rev-", "rev"))
	assert.False(t, HasPrefix("review-abc", "rev"))
	assert.False(t, HasPrefix("abc", "rev"))
}
