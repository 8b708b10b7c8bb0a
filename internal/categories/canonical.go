package categories

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/listenupapp/bookpage/internal/normalize"
)

// Words kept lowercase unless they start the tag.
var minorWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "for": true, "from": true, "in": true, "into": true, "nor": true,
	"of": true, "on": true, "or": true, "the": true, "to": true, "vs": true,
	"with": true,
}

// Words with fixed casing, keyed by their lowercase form.
var fixedCase = map[string]string{
	"ya": "YA", "sf": "SF", "ai": "AI", "bdsm": "BDSM",
	"lgbt": "LGBT", "lgbtq": "LGBTQ", "lgbtq+": "LGBTQ+", "lgbtqia": "LGBTQIA", "lgbtqia+": "LGBTQIA+",
	"wwi": "WWI", "wwii": "WWII", "ww1": "WW1", "ww2": "WW2",
	"usa": "USA", "uk": "UK", "nyc": "NYC", "bbc": "BBC", "cia": "CIA", "fbi": "FBI", "nasa": "NASA",
	"rpg": "RPG", "jrpg": "JRPG", "litrpg": "LitRPG", "gamelit": "GameLit",
	"ii": "II", "iii": "III", "iv": "IV", "vi": "VI", "vii": "VII", "viii": "VIII", "ix": "IX",
}

// Canonicalize returns the display form of a raw tag: trimmed, whitespace
// collapsed, and title-cased with minor words lowercased. The result depends
// only on the lowercased input, so tags differing in case fold together.
// Known acronyms (YA, LGBTQ, WWII) get their fixed casing. Tags without any
// letter or digit canonicalize to "".
func Canonicalize(raw string) string {
	s := strings.ToLower(normalize.Text(raw))
	if !strings.ContainsFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) {
		return ""
	}

	// cases.Caser keeps state, so each call gets its own.
	caser := cases.Title(language.English)

	words := strings.Split(s, " ")
	for i, w := range words {
		if i > 0 && minorWords[w] {
			continue
		}
		parts := strings.Split(w, "-")
		for j, p := range parts {
			if fixed, ok := fixedCase[p]; ok {
				parts[j] = fixed
			} else {
				parts[j] = caser.String(p)
			}
		}
		words[i] = strings.Join(parts, "-")
	}
	return strings.Join(words, " ")
}
