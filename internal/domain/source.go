package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SourceKind discriminates the variants of SourceID.
type SourceKind int

// Source kinds. The set is closed; switch statements over SourceKind are
// expected to be exhaustive.
const (
	KindOriginal SourceKind = iota
	KindAudiobook
	KindAudiobookSummary
	KindEdition
	KindDateProvenance
)

// DateProvenance names a date-bearing candidate that is not tied to a whole
// provider record (e.g. the copyright line of the primary record).
type DateProvenance string

// Known date provenances.
const (
	ProvenanceFirstPublished     DateProvenance = "first_published"
	ProvenanceCopyright          DateProvenance = "copyright"
	ProvenanceAudiobookCopyright DateProvenance = "audiobook_copyright"
)

// Valid reports whether p is one of the known provenances.
func (p DateProvenance) Valid() bool {
	switch p {
	case ProvenanceFirstPublished, ProvenanceCopyright, ProvenanceAudiobookCopyright:
		return true
	}
	return false
}

const editionPrefix = "edition:"

// SourceID identifies which provider value a candidate came from.
// The zero value is Original.
type SourceID struct {
	Kind       SourceKind
	Edition    int            // only meaningful for KindEdition
	Provenance DateProvenance // only meaningful for KindDateProvenance
}

// Convenience constructors.
var (
	Original         = SourceID{Kind: KindOriginal}
	Audiobook        = SourceID{Kind: KindAudiobook}
	AudiobookSummary = SourceID{Kind: KindAudiobookSummary}
)

// Edition returns the SourceID for the edition at index i.
func Edition(i int) SourceID {
	return SourceID{Kind: KindEdition, Edition: i}
}

// DateSource returns the SourceID for a date provenance.
func DateSource(p DateProvenance) SourceID {
	return SourceID{Kind: KindDateProvenance, Provenance: p}
}

// String renders the wire form: original, audiobook, audiobook_summary,
// edition:<i>, or the provenance name.
func (s SourceID) String() string {
	switch s.Kind {
	case KindOriginal:
		return "original"
	case KindAudiobook:
		return "audiobook"
	case KindAudiobookSummary:
		return "audiobook_summary"
	case KindEdition:
		return editionPrefix + strconv.Itoa(s.Edition)
	case KindDateProvenance:
		return string(s.Provenance)
	default:
		return fmt.Sprintf("unknown(%d)", int(s.Kind))
	}
}

// IsAudiobookDerived reports whether the value came from the audiobook record.
func (s SourceID) IsAudiobookDerived() bool {
	switch s.Kind {
	case KindAudiobook, KindAudiobookSummary:
		return true
	case KindDateProvenance:
		return s.Provenance == ProvenanceAudiobookCopyright
	case KindOriginal, KindEdition:
		return false
	}
	return false
}

// ParseSourceID parses the wire form produced by String.
func ParseSourceID(raw string) (SourceID, error) {
	s := strings.TrimSpace(raw)
	switch s {
	case "original":
		return Original, nil
	case "audiobook":
		return Audiobook, nil
	case "audiobook_summary":
		return AudiobookSummary, nil
	}

	if rest, ok := strings.CutPrefix(s, editionPrefix); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return SourceID{}, fmt.Errorf("invalid edition index in source %q", raw)
		}
		return Edition(n), nil
	}

	if p := DateProvenance(s); p.Valid() {
		return DateSource(p), nil
	}

	return SourceID{}, fmt.Errorf("unknown source %q", raw)
}

// MarshalText implements encoding.TextMarshaler.
func (s SourceID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SourceID) UnmarshalText(text []byte) error {
	parsed, err := ParseSourceID(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
