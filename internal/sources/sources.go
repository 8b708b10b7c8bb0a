// Package sources turns the provider records for one work into ordered
// candidate lists per field.
package sources

import (
	"slices"
	"strconv"
	"strings"

	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/normalize"
)

// Input bundles the provider records for one logical work.
type Input struct {
	Primary   domain.BookRecord
	Audiobook *domain.AudiobookRecord // nil or empty when the work has no audiobook
	Editions  []domain.EditionRecord
}

// Result is the registry output for one session.
type Result struct {
	Candidates domain.Candidates
	Categories []domain.RawCategory
}

// Label returns the human label for a non-edition source.
func Label(id domain.SourceID) string {
	switch id.Kind {
	case domain.KindOriginal:
		return "Original"
	case domain.KindAudiobook:
		return "Audiobook"
	case domain.KindAudiobookSummary:
		return "Audiobook summary"
	case domain.KindEdition:
		return "Edition " + strconv.Itoa(id.Edition+1)
	case domain.KindDateProvenance:
		switch id.Provenance {
		case domain.ProvenanceFirstPublished:
			return "First published"
		case domain.ProvenanceCopyright:
			return "Copyright"
		case domain.ProvenanceAudiobookCopyright:
			return "Audiobook copyright"
		}
	}
	return id.String()
}

// EditionLabel synthesizes a label from the edition's own metadata:
// "Title (Publisher, 2004)". Editions with nothing to show fall back to
// "Edition N", counting from one.
func EditionLabel(index int, e domain.EditionRecord) string {
	title := normalize.PlainText(e.Title)

	var details []string
	if p := normalize.Text(e.Publisher); p != "" {
		details = append(details, p)
	}
	if y, ok := normalize.Year(e.PublishedDate); ok {
		details = append(details, y)
	}

	switch {
	case title != "" && len(details) > 0:
		return title + " (" + strings.Join(details, ", ") + ")"
	case title != "":
		return title
	case len(details) > 0:
		return strings.Join(details, ", ")
	default:
		return Label(domain.Edition(index))
	}
}

// Build produces the candidate lists for every field. It never fails: a field
// without any non-empty value is absent from the result.
func Build(in Input) Result {
	editionLabels := make([]string, len(in.Editions))
	for i, e := range in.Editions {
		editionLabels[i] = EditionLabel(i, e)
	}

	b := &builder{candidates: make(domain.Candidates)}
	ab := in.Audiobook
	if ab.IsEmpty() {
		ab = nil
	}

	// Title
	b.add(domain.FieldTitle, domain.Original, "", normalize.Text(in.Primary.Title))
	if ab != nil {
		b.add(domain.FieldTitle, domain.Audiobook, "", normalize.Text(ab.Title))
	}
	for i, e := range in.Editions {
		b.add(domain.FieldTitle, domain.Edition(i), editionLabels[i], normalize.Text(e.Title))
	}

	// Description
	b.add(domain.FieldDescription, domain.Original, "", normalize.Description(in.Primary.Description))
	if ab != nil {
		b.add(domain.FieldDescription, domain.Audiobook, "", normalize.Description(ab.Description))
		b.add(domain.FieldDescription, domain.AudiobookSummary, "", normalize.Description(ab.Summary))
	}
	for i, e := range in.Editions {
		b.add(domain.FieldDescription, domain.Edition(i), editionLabels[i], normalize.Description(e.Description))
	}

	// Publisher
	b.add(domain.FieldPublisher, domain.Original, "", normalize.Text(in.Primary.Publisher))
	if ab != nil {
		b.add(domain.FieldPublisher, domain.Audiobook, "", normalize.Text(ab.Publisher))
	}
	for i, e := range in.Editions {
		b.add(domain.FieldPublisher, domain.Edition(i), editionLabels[i], normalize.Text(e.Publisher))
	}

	// Release date
	b.addDate(domain.Original, "", in.Primary.PublishedDate)
	b.addDate(domain.DateSource(domain.ProvenanceFirstPublished), "", in.Primary.OriginalPublishedDate)
	b.addDate(domain.DateSource(domain.ProvenanceCopyright), "", copyrightYear(in.Primary.Copyright))
	if ab != nil {
		b.addDate(domain.Audiobook, "", ab.PublishedDate)
		b.addDate(domain.DateSource(domain.ProvenanceAudiobookCopyright), "", copyrightYear(ab.Copyright))
	}
	for i, e := range in.Editions {
		b.addDate(domain.Edition(i), editionLabels[i], e.PublishedDate)
	}

	// Page count
	b.add(domain.FieldPageCount, domain.Original, "", pageCount(in.Primary.PageCount))
	if ab != nil {
		b.add(domain.FieldPageCount, domain.Audiobook, "", pageCount(ab.PageCount))
	}
	for i, e := range in.Editions {
		b.add(domain.FieldPageCount, domain.Edition(i), editionLabels[i], pageCount(e.PageCount))
	}

	// Thumbnail
	b.add(domain.FieldThumbnail, domain.Original, "", normalize.Text(in.Primary.Thumbnail))
	if ab != nil {
		b.add(domain.FieldThumbnail, domain.Audiobook, "", normalize.Text(ab.Thumbnail))
	}
	for i, e := range in.Editions {
		b.add(domain.FieldThumbnail, domain.Edition(i), editionLabels[i], normalize.Text(e.Thumbnail))
	}

	return Result{
		Candidates: b.candidates,
		Categories: rawCategories(in),
	}
}

type builder struct {
	candidates domain.Candidates
}

// add appends a candidate unless content is empty. Content already offered by
// an earlier source is recorded as an alias of that candidate.
func (b *builder) add(field domain.Field, source domain.SourceID, label, content string) {
	if content == "" {
		return
	}
	for i, existing := range b.candidates[field] {
		if existing.Content != content {
			continue
		}
		if existing.Source != source && !slices.Contains(existing.Aliases, source) {
			b.candidates[field][i].Aliases = append(existing.Aliases, source)
		}
		return
	}
	if label == "" {
		label = Label(source)
	}
	b.candidates[field] = append(b.candidates[field], domain.CandidateValue{
		Source:     source,
		Label:      label,
		Content:    content,
		IsYearOnly: field == domain.FieldReleaseDate && normalize.IsYearOnly(content),
	})
}

func (b *builder) addDate(source domain.SourceID, label, raw string) {
	b.add(domain.FieldReleaseDate, source, label, normalize.Text(raw))
}

// copyrightYear reduces a copyright line ("©2015 Tor Books") to its year.
func copyrightYear(raw string) string {
	y, _ := normalize.Year(raw)
	return y
}

func pageCount(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func rawCategories(in Input) []domain.RawCategory {
	var out []domain.RawCategory
	appendAll := func(values []string, source domain.SourceID) {
		for _, v := range values {
			if v = normalize.Text(v); v != "" {
				out = append(out, domain.RawCategory{Value: v, Source: source})
			}
		}
	}

	appendAll(in.Primary.Categories, domain.Original)
	if !in.Audiobook.IsEmpty() {
		appendAll(in.Audiobook.Categories, domain.Audiobook)
	}
	for i, e := range in.Editions {
		appendAll(e.Categories, domain.Edition(i))
	}
	return out
}
