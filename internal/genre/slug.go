// Package genre knows how category names relate to each other: slug forms and
// a built-in table of common aliases ("Sci-Fi" is "Science Fiction").
package genre

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts a category name to its slug.
// "Science Fiction" -> "science-fiction".
// "Sci-Fi/Fantasy" -> "sci-fi-fantasy".
// "Réalisme magique" -> "realisme-magique".
func Slugify(s string) string {
	// Decompose accented characters so the base letter survives.
	s = norm.NFKD.String(s)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// Tokens splits a category name into its slug words.
// "Fiction / Science Fiction" -> [fiction science fiction].
func Tokens(s string) []string {
	slug := Slugify(s)
	if slug == "" {
		return nil
	}
	return strings.Split(slug, "-")
}
