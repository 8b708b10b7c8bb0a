package reconcile

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/normalize"
)

// Year-only dates are dropped when a specific date exists unless they are
// more than this many years earlier than the earliest specific date.
const yearOnlyLead = 2

const displayDay = "Jan 2, 2006"

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts that carry a day.
var dayLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006/01/02",
	"01/02/2006",
}

// Layouts that stop at the month.
var monthLayouts = []string{
	"2006-01",
	"January 2006",
	"Jan 2006",
}

type datedCandidate struct {
	cand     domain.CandidateValue
	year     int
	date     time.Time
	specific bool
}

// PickReleaseDate chooses the release-date source among cands.
//
// Candidates are ranked by year. When the spread between the earliest and
// latest year is more than one, the earliest wins. A narrower spread is
// ambiguous: the audiobook date wins when present, else the earliest.
func PickReleaseDate(cands []domain.CandidateValue) (domain.SourceID, bool) {
	dated := make([]datedCandidate, 0, len(cands))
	earliestSpecific := 0
	for _, c := range cands {
		y, ok := normalize.Year(c.Content)
		if !ok {
			continue
		}
		year, _ := strconv.Atoi(y)
		d := datedCandidate{cand: c, year: year}
		if !c.IsYearOnly {
			d.date, d.specific = parseDay(c.Content)
		}
		if !d.specific {
			d.date = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
		if d.specific && (earliestSpecific == 0 || year < earliestSpecific) {
			earliestSpecific = year
		}
		dated = append(dated, d)
	}

	kept := dated[:0]
	for _, d := range dated {
		if d.cand.IsYearOnly && earliestSpecific != 0 && earliestSpecific-d.year <= yearOnlyLead {
			continue
		}
		kept = append(kept, d)
	}
	if len(kept) == 0 {
		return domain.SourceID{}, false
	}

	slices.SortStableFunc(kept, func(a, b datedCandidate) int {
		if c := cmp.Compare(a.year, b.year); c != 0 {
			return c
		}
		return a.date.Compare(b.date)
	})

	earliest, latest := kept[0], kept[len(kept)-1]
	if latest.year-earliest.year > 1 {
		return earliest.cand.Source, true
	}
	for _, d := range kept {
		if d.cand.Source == domain.Audiobook {
			return domain.Audiobook, true
		}
	}
	return earliest.cand.Source, true
}

// FormatDate renders a date for display. Four-digit years pass through,
// YYYY-MM-DD is read as a UTC calendar date, other layouts are tried in turn,
// and anything else degrades to its year or, failing that, the raw string.
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if normalize.IsYearOnly(s) {
		return s
	}

	if isoDateRegex.MatchString(s) {
		if t, err := time.ParseInLocation(time.DateOnly, s, time.UTC); err == nil {
			return t.Format(displayDay)
		}
	}

	if t, ok := parseDay(s); ok {
		return t.Format(displayDay)
	}

	for _, layout := range monthLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Format("Jan 2006")
		}
	}

	if y, ok := normalize.Year(s); ok {
		return y
	}
	return raw
}

// parseDay parses s with any layout that carries a day. Times keep their own
// offset so the calendar day is not shifted.
func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if isoDateRegex.MatchString(s) {
		t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
		return t, err == nil
	}
	for _, layout := range dayLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
