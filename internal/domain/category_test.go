package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRules_Reverses(t *testing.T) {
	rules := NewCategoryRules()
	rules.Mappings["Sci-Fi"] = "Science Fiction"

	assert.True(t, rules.Reverses("Science Fiction", "Sci-Fi"))
	assert.False(t, rules.Reverses("Sci-Fi", "Science Fiction"))
	assert.False(t, rules.Reverses("Science Fiction", "Fantasy"))

	var none *CategoryRules
	assert.False(t, none.Reverses("A", "B"))
}
