package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceID(t *testing.T) {
	tests := []struct {
		input string
		want  SourceID
	}{
		{"original", Original},
		{"audiobook", Audiobook},
		{"audiobook_summary", AudiobookSummary},
		{"edition:0", Edition(0)},
		{"edition:12", Edition(12)},
		{"first_published", DateSource(ProvenanceFirstPublished)},
		{"copyright", DateSource(ProvenanceCopyright)},
		{"audiobook_copyright", DateSource(ProvenanceAudiobookCopyright)},
		{"  original ", Original},
	}

	for _, tc := range tests {
		got, err := ParseSourceID(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestParseSourceID_Invalid(t *testing.T) {
	for _, input := range []string{"", "Original", "edition:", "edition:-1", "edition:x", "isbn"} {
		_, err := ParseSourceID(input)
		assert.Error(t, err, input)
	}
}

func TestSourceID_String(t *testing.T) {
	assert.Equal(t, "original", SourceID{}.String())
	assert.Equal(t, "edition:3", Edition(3).String())
	assert.Equal(t, "audiobook_copyright", DateSource(ProvenanceAudiobookCopyright).String())
}

func TestSourceID_JSON(t *testing.T) {
	fd := FieldDefault{Field: FieldPublisher, Source: Edition(2)}

	data, err := json.Marshal(fd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"publisher","source_id":"edition:2"}`, string(data))

	var back FieldDefault
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, fd, back)

	err = json.Unmarshal([]byte(`{"field":"publisher","source_id":"library"}`), &back)
	assert.Error(t, err)
}

func TestSourceID_IsAudiobookDerived(t *testing.T) {
	assert.True(t, Audiobook.IsAudiobookDerived())
	assert.True(t, AudiobookSummary.IsAudiobookDerived())
	assert.True(t, DateSource(ProvenanceAudiobookCopyright).IsAudiobookDerived())
	assert.False(t, DateSource(ProvenanceCopyright).IsAudiobookDerived())
	assert.False(t, Original.IsAudiobookDerived())
	assert.False(t, Edition(0).IsAudiobookDerived())
}

func TestCandidates_Find(t *testing.T) {
	c := Candidates{
		FieldTitle: {
			{Source: Original, Content: "Dune", Aliases: []SourceID{Edition(0)}},
			{Source: Edition(1), Content: "Dune (Deluxe)"},
		},
	}

	alias, ok := c.Find(FieldTitle, Edition(0))
	require.True(t, ok)
	assert.Equal(t, Original, alias.Source)

	got, ok := c.Find(FieldTitle, Edition(1))
	require.True(t, ok)
	assert.Equal(t, "Dune (Deluxe)", got.Content)

	assert.False(t, c.Has(FieldTitle, Edition(2)))
	assert.False(t, c.Has(FieldPublisher, Original))
}
