package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Tor   Books ", "Tor Books"},
		{"Dune\x00", "Dune"},
		{"line\none", "line one"},
		{"", ""},
		{" \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.input))
		})
	}
}

func TestContainsHTML(t *testing.T) {
	assert.True(t, ContainsHTML("<p>Hello</p>"))
	assert.True(t, ContainsHTML("A <B>bold</B> claim"))
	assert.True(t, ContainsHTML("one<br/>two"))
	assert.False(t, ContainsHTML("3 < 4 and 5 > 2"))
	assert.False(t, ContainsHTML("plain text"))
}

func TestDescription(t *testing.T) {
	t.Run("html becomes markdown", func(t *testing.T) {
		got := Description("<p>A <b>bold</b> story.</p><p>Second.</p>")
		assert.Contains(t, got, "**bold**")
		assert.Contains(t, got, "Second.")
		assert.NotContains(t, got, "<p>")
	})

	t.Run("plain text keeps paragraphs", func(t *testing.T) {
		assert.Equal(t, "First.\n\nSecond.", Description("  First.\n\nSecond.  "))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Description(" \x00 "))
	})
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Dune Messiah", PlainText("<i>Dune</i> <b>Messiah</b>"))
	assert.Equal(t, "one two", PlainText("<p>one</p><p>two</p>"))
	assert.Equal(t, "", PlainText(""))
}

func TestYear(t *testing.T) {
	y, ok := Year("©2015 Tor Books")
	assert.True(t, ok)
	assert.Equal(t, "2015", y)

	y, ok = Year("2019-11-15")
	assert.True(t, ok)
	assert.Equal(t, "2019", y)

	_, ok = Year("n.d.")
	assert.False(t, ok)
}

func TestIsYearOnly(t *testing.T) {
	assert.True(t, IsYearOnly("2015"))
	assert.False(t, IsYearOnly("2015-01-01"))
	assert.False(t, IsYearOnly(" 2015"))
}
