// Package categories normalizes raw category strings from every source into
// a deduplicated, user-curated tag list.
//
// A normalization pass is a pure function of the raw tags and the current
// mapping graph and ignore set:
//
//  1. canonicalize and fold identical tags, keeping provenance
//  2. apply the mapping graph, one hop only
//  3. apply the ignore set
//  4. flag geographical and temporal tags
//  5. suggest merges between similar tags
//
// Suggestions are never applied; accepting one is a regular mapping edit.
package categories

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/normalize"
)

// Result is the output of one normalization pass.
type Result struct {
	Categories  []domain.ProcessedCategory `json:"categories"`
	Suggestions []domain.SimilarPair       `json:"suggestions"`
}

// Normalizer runs normalization passes.
type Normalizer struct {
	threshold float64
}

// New creates a Normalizer. A threshold outside (0, 1] uses DefaultThreshold.
func New(threshold float64) *Normalizer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Normalizer{threshold: threshold}
}

// Threshold returns the similarity threshold in use.
func (n *Normalizer) Threshold() float64 {
	return n.threshold
}

type entry struct {
	canonical string
	cat       domain.ProcessedCategory
}

// Normalize runs the full pipeline. rules may be nil.
func (n *Normalizer) Normalize(raw []domain.RawCategory, rules *domain.CategoryRules) Result {
	entries, byCanonical := fold(raw)
	entries = applyMappings(entries, byCanonical, rules)

	for _, e := range entries {
		e.cat.IsIgnored = rules.IsIgnored(e.canonical) || rules.IsIgnored(e.cat.Processed)
		e.cat.Geographical = IsGeographical(e.cat.Processed)
		e.cat.Temporal = IsTemporal(e.cat.Processed)
		e.cat.Provenance = provenance(e.cat.Sources)
	}

	suggestions := n.suggest(entries)

	out := make([]domain.ProcessedCategory, len(entries))
	for i, e := range entries {
		out[i] = e.cat
	}
	return Result{Categories: out, Suggestions: suggestions}
}

// fold canonicalizes raw tags and merges those with the same canonical form,
// in first-seen order.
func fold(raw []domain.RawCategory) ([]*entry, map[string]*entry) {
	var entries []*entry
	byCanonical := make(map[string]*entry)

	for _, r := range raw {
		canonical := Canonicalize(r.Value)
		if canonical == "" {
			continue
		}
		if e, ok := byCanonical[canonical]; ok {
			e.cat.Sources = addSource(e.cat.Sources, r.Source)
			continue
		}
		e := &entry{
			canonical: canonical,
			cat: domain.ProcessedCategory{
				Original:  normalize.Text(r.Value),
				Processed: canonical,
				Sources:   []domain.SourceID{r.Source},
			},
		}
		entries = append(entries, e)
		byCanonical[canonical] = e
	}
	return entries, byCanonical
}

// applyMappings follows each tag's outbound edge once. Targets that are not
// among the raw tags get a synthesized entry appended after the raw ones.
func applyMappings(entries []*entry, byCanonical map[string]*entry, rules *domain.CategoryRules) []*entry {
	var synthesized []*entry
	for _, e := range entries {
		to, ok := rules.Target(e.canonical)
		if !ok || to == "" || to == e.canonical {
			continue
		}

		e.cat.Processed = to
		e.cat.IsMapped = true
		e.cat.MappedFrom = e.canonical

		target, ok := byCanonical[to]
		if !ok {
			target = &entry{
				canonical: to,
				cat:       domain.ProcessedCategory{Original: to, Processed: to},
			}
			byCanonical[to] = target
			synthesized = append(synthesized, target)
		}
		target.cat.MappedToThis = append(target.cat.MappedToThis, e.canonical)
		if slices.Contains(synthesized, target) {
			for _, src := range e.cat.Sources {
				target.cat.Sources = addSource(target.cat.Sources, src)
			}
		}
	}
	return append(entries, synthesized...)
}

// suggest compares every eligible pair of distinct tags.
func (n *Normalizer) suggest(entries []*entry) []domain.SimilarPair {
	var pool []string
	eligible := func(e *entry) bool {
		return !e.cat.IsIgnored && !e.cat.IsMapped && !e.cat.Protected()
	}
	for _, e := range entries {
		if eligible(e) && !slices.Contains(pool, e.cat.Processed) {
			pool = append(pool, e.cat.Processed)
		}
	}

	var pairs []domain.SimilarPair
	similar := make(map[string][]domain.SimilarTag)
	for i := range pool {
		for j := i + 1; j < len(pool); j++ {
			score := Similarity(pool[i], pool[j])
			if score < n.threshold {
				continue
			}
			pairs = append(pairs, domain.SimilarPair{A: pool[i], B: pool[j], Score: score})
			similar[pool[i]] = append(similar[pool[i]], domain.SimilarTag{Tag: pool[j], Score: score})
			similar[pool[j]] = append(similar[pool[j]], domain.SimilarTag{Tag: pool[i], Score: score})
		}
	}

	for _, tags := range similar {
		slices.SortFunc(tags, func(a, b domain.SimilarTag) int {
			if c := cmp.Compare(b.Score, a.Score); c != 0 {
				return c
			}
			return strings.Compare(a.Tag, b.Tag)
		})
	}
	for _, e := range entries {
		if eligible(e) {
			e.cat.Similar = slices.Clone(similar[e.cat.Processed])
		}
	}
	return pairs
}

func addSource(sources []domain.SourceID, src domain.SourceID) []domain.SourceID {
	if slices.Contains(sources, src) {
		return sources
	}
	return append(sources, src)
}

// provenance renders the sources as "found via audiobook + edition 2".
func provenance(sources []domain.SourceID) string {
	if len(sources) == 0 {
		return ""
	}
	names := make([]string, len(sources))
	for i, src := range sources {
		switch src.Kind {
		case domain.KindEdition:
			names[i] = "edition " + strconv.Itoa(src.Edition+1)
		default:
			names[i] = strings.ReplaceAll(src.String(), "_", " ")
		}
	}
	return "found via " + strings.Join(names, " + ")
}

// Find returns the first category whose processed form is tag.
func (r Result) Find(tag string) (domain.ProcessedCategory, bool) {
	for _, c := range r.Categories {
		if c.Processed == tag {
			return c, true
		}
	}
	return domain.ProcessedCategory{}, false
}

// Has reports whether any category displays as tag.
func (r Result) Has(tag string) bool {
	_, ok := r.Find(tag)
	return ok
}

// Selectable reports whether tag belongs to at least one non-ignored category.
func (r Result) Selectable(tag string) bool {
	for _, c := range r.Categories {
		if c.Processed == tag && !c.IsIgnored {
			return true
		}
	}
	return false
}

// SelectableTags lists the distinct processed tags of non-ignored categories
// in display order.
func (r Result) SelectableTags() []string {
	var out []string
	for _, c := range r.Categories {
		if !c.IsIgnored && !slices.Contains(out, c.Processed) {
			out = append(out, c.Processed)
		}
	}
	return out
}
