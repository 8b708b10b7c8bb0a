package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookpage/internal/domain"
)

func raw(values ...string) []domain.RawCategory {
	out := make([]domain.RawCategory, len(values))
	for i, v := range values {
		out[i] = domain.RawCategory{Value: v, Source: domain.Original}
	}
	return out
}

func find(t *testing.T, res Result, original string) domain.ProcessedCategory {
	t.Helper()
	for _, c := range res.Categories {
		if c.Original == original {
			return c
		}
	}
	require.Failf(t, "category not found", "%q", original)
	return domain.ProcessedCategory{}
}

func TestNormalize_FoldsAndKeepsProvenance(t *testing.T) {
	in := []domain.RawCategory{
		{Value: "science fiction", Source: domain.Audiobook},
		{Value: "  Science  Fiction", Source: domain.Edition(1)},
		{Value: "SCIENCE FICTION", Source: domain.Audiobook},
		{Value: "", Source: domain.Original},
		{Value: "???", Source: domain.Original},
	}

	res := New(0).Normalize(in, nil)

	require.Len(t, res.Categories, 1)
	cat := res.Categories[0]
	assert.Equal(t, "science fiction", cat.Original)
	assert.Equal(t, "Science Fiction", cat.Processed)
	assert.Equal(t, []domain.SourceID{domain.Audiobook, domain.Edition(1)}, cat.Sources)
	assert.Equal(t, "found via audiobook + edition 2", cat.Provenance)
}

func TestNormalize_FoldsCaseVariants(t *testing.T) {
	res := New(0).Normalize(raw("DRAMA", "Drama", "SCI FI", "sci fi", "YA Fiction", "ya fiction"), nil)

	require.Len(t, res.Categories, 3)
	assert.Equal(t, []string{"Drama", "Sci Fi", "YA Fiction"}, res.SelectableTags())
}

func TestNormalize_Mapping(t *testing.T) {
	rules := domain.NewCategoryRules()
	rules.Mappings["Sci-Fi"] = "Science Fiction"

	res := New(0).Normalize(raw("Sci-Fi", "Science Fiction", "Fantasy"), rules)

	sciFi := find(t, res, "Sci-Fi")
	assert.True(t, sciFi.IsMapped)
	assert.Equal(t, "Sci-Fi", sciFi.MappedFrom)
	assert.Equal(t, "Science Fiction", sciFi.Processed)

	target := find(t, res, "Science Fiction")
	assert.False(t, target.IsMapped)
	assert.Equal(t, []string{"Sci-Fi"}, target.MappedToThis)

	assert.Equal(t, []string{"Science Fiction", "Fantasy"}, res.SelectableTags())
}

func TestNormalize_MappingSynthesizesMissingTarget(t *testing.T) {
	rules := domain.NewCategoryRules()
	rules.Mappings["Sci-Fi"] = "Science Fiction"
	rules.Mappings["SF"] = "Science Fiction"

	res := New(0).Normalize([]domain.RawCategory{
		{Value: "Sci-Fi", Source: domain.Original},
		{Value: "SF", Source: domain.Audiobook},
	}, rules)

	require.Len(t, res.Categories, 3)
	target := res.Categories[2]
	assert.Equal(t, "Science Fiction", target.Processed)
	assert.Equal(t, []string{"Sci-Fi", "SF"}, target.MappedToThis)
	assert.Equal(t, []domain.SourceID{domain.Original, domain.Audiobook}, target.Sources)
}

func TestNormalize_MappingIsSingleHop(t *testing.T) {
	rules := domain.NewCategoryRules()
	rules.Mappings["A Tag"] = "B Tag"
	rules.Mappings["B Tag"] = "C Tag"

	res := New(0).Normalize(raw("A Tag", "B Tag"), rules)

	a := find(t, res, "A Tag")
	assert.Equal(t, "B Tag", a.Processed)

	b := find(t, res, "B Tag")
	assert.Equal(t, "C Tag", b.Processed)
	assert.True(t, b.IsMapped)
	assert.Equal(t, []string{"A Tag"}, b.MappedToThis)
}

func TestNormalize_MapThenUnmapRoundTrip(t *testing.T) {
	n := New(0)
	input := raw("Sci-Fi", "Science Fiction")
	rules := domain.NewCategoryRules()

	before := find(t, n.Normalize(input, rules), "Sci-Fi")

	rules.Mappings["Sci-Fi"] = "Science Fiction"
	mapped := find(t, n.Normalize(input, rules), "Sci-Fi")
	require.True(t, mapped.IsMapped)

	delete(rules.Mappings, "Sci-Fi")
	after := find(t, n.Normalize(input, rules), "Sci-Fi")

	assert.Equal(t, before, after)
	assert.False(t, after.IsMapped)
	assert.False(t, after.IsIgnored)
	assert.Empty(t, after.MappedFrom)
}

func TestNormalize_Ignore(t *testing.T) {
	rules := domain.NewCategoryRules()
	rules.Ignored["General"] = true

	res := New(0).Normalize(raw("general", "Fantasy"), rules)

	general := find(t, res, "general")
	assert.True(t, general.IsIgnored)
	assert.Equal(t, []string{"Fantasy"}, res.SelectableTags())
	assert.True(t, res.Has("General"))
	assert.False(t, res.Selectable("General"))
}

func TestNormalize_IgnoredTargetIgnoresMappedTag(t *testing.T) {
	rules := domain.NewCategoryRules()
	rules.Mappings["Audiobooks"] = "Audio"
	rules.Ignored["Audio"] = true

	res := New(0).Normalize(raw("Audiobooks"), rules)

	assert.True(t, find(t, res, "Audiobooks").IsIgnored)
	assert.Empty(t, res.SelectableTags())
}

func TestNormalize_SimilarBothDirections(t *testing.T) {
	for _, order := range [][]string{{"Science Fiction", "Sci-Fi"}, {"Sci-Fi", "Science Fiction"}} {
		res := New(0).Normalize(raw(order...), nil)

		require.Len(t, res.Suggestions, 1)
		pair := res.Suggestions[0]
		assert.ElementsMatch(t, []string{"Science Fiction", "Sci-Fi"}, []string{pair.A, pair.B})

		sf := find(t, res, "Science Fiction")
		sciFi := find(t, res, "Sci-Fi")
		require.Len(t, sf.Similar, 1)
		require.Len(t, sciFi.Similar, 1)
		assert.Equal(t, "Sci-Fi", sf.Similar[0].Tag)
		assert.Equal(t, "Science Fiction", sciFi.Similar[0].Tag)
	}
}

func TestNormalize_ProtectedAndMappedTagsGetNoSuggestions(t *testing.T) {
	rules := domain.NewCategoryRules()
	rules.Mappings["Romances"] = "Love Stories"

	res := New(0).Normalize(raw("France", "Frances", "Romance", "Romances", "1920s", "1930s"), rules)

	assert.True(t, find(t, res, "France").Geographical)
	assert.Empty(t, find(t, res, "France").Similar)
	assert.Empty(t, find(t, res, "1920s").Similar)
	assert.Empty(t, find(t, res, "Romances").Similar)
	assert.Empty(t, find(t, res, "Romance").Similar)
	assert.Empty(t, res.Suggestions)
}

func TestNormalize_ThresholdIsConfigurable(t *testing.T) {
	input := raw("Romance", "Romances")

	assert.Len(t, New(0.8).Normalize(input, nil).Suggestions, 1)
	assert.Empty(t, New(0.95).Normalize(input, nil).Suggestions)
	assert.InDelta(t, DefaultThreshold, New(7).Threshold(), 1e-12)
}

func TestNormalize_Idempotent(t *testing.T) {
	rules := domain.NewCategoryRules()
	rules.Mappings["Sci-Fi"] = "Science Fiction"
	rules.Mappings["Lit Fic"] = "Literary Fiction"
	rules.Ignored["General"] = true

	input := []domain.RawCategory{
		{Value: "Sci-Fi", Source: domain.Original},
		{Value: "science fiction", Source: domain.Audiobook},
		{Value: "Lit Fic", Source: domain.Edition(0)},
		{Value: "General", Source: domain.Edition(0)},
		{Value: "Space Opera", Source: domain.Audiobook},
		{Value: "Space Operas", Source: domain.Edition(2)},
		{Value: "Young Adult", Source: domain.Original},
		{Value: "YA", Source: domain.Original},
		{Value: "England", Source: domain.Original},
	}

	n := New(0)
	first := n.Normalize(input, rules)
	second := n.Normalize(input, rules)

	assert.Equal(t, first, second)
}
