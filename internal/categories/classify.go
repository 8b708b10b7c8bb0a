package categories

import (
	"regexp"
	"strings"
)

// Place names matched as whole words, lowercase.
var places = []string{
	"africa", "asia", "europe", "oceania", "antarctica", "arctic",
	"north america", "south america", "central america", "latin america",
	"middle east", "caribbean", "scandinavia", "balkans", "mediterranean",
	"united states", "usa", "america", "canada", "mexico", "brazil", "argentina",
	"united kingdom", "uk", "great britain", "britain", "england", "scotland",
	"wales", "ireland", "france", "germany", "italy", "spain", "portugal",
	"netherlands", "greece", "russia", "soviet union", "ukraine", "poland",
	"china", "japan", "korea", "india", "pakistan", "vietnam", "israel",
	"egypt", "iran", "iraq", "turkey", "australia", "new zealand",
	"new york", "london", "paris", "berlin", "rome", "tokyo", "chicago",
	"boston", "los angeles", "san francisco", "california", "texas",
	"florida", "alaska", "hawaii", "new england", "the west", "the south",
}

var placeRegex = regexp.MustCompile(`\b(` + strings.Join(places, "|") + `)\b`)

var temporalRegexes = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{2,4}s\b`),                        // 1920s, 80s
	regexp.MustCompile(`\b\d{1,2}(st|nd|rd|th)[ -]century\b`), // 19th century
	regexp.MustCompile(`\b(twentieth|nineteenth|eighteenth|twenty-first) century\b`),
	regexp.MustCompile(`\b\d{3,4}\s*-\s*\d{2,4}\b`), // 1939-1945
	regexp.MustCompile(`\b(medieval|middle ages|renaissance|victorian|edwardian|regency|elizabethan|tudor|georgian era|ancient|antiquity|prehistoric|prehistory)\b`),
	regexp.MustCompile(`\b(bronze|iron|stone|viking|gilded|jazz|space) age\b`),
	regexp.MustCompile(`\b(world war (i|ii|1|2|one|two)|wwi|wwii|ww1|ww2|civil war|cold war|great depression|industrial revolution|enlightenment|reconstruction)\b`),
}

// IsGeographical reports whether a tag names a place.
func IsGeographical(tag string) bool {
	return placeRegex.MatchString(strings.ToLower(tag))
}

// IsTemporal reports whether a tag names an era, decade, or century.
func IsTemporal(tag string) bool {
	lower := strings.ToLower(tag)
	for _, re := range temporalRegexes {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}
