package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/listenupapp/bookpage/internal/domain"
)

func TestParseStoredSource(t *testing.T) {
	src, ok := ParseStoredSource("edition:3")
	assert.True(t, ok)
	assert.Equal(t, domain.Edition(3), src)

	_, ok = ParseStoredSource("goodreads")
	assert.False(t, ok)
}
