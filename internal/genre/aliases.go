package genre

// CanonicalAliases maps common category spellings (by slug) to the slug of
// the canonical category.
var CanonicalAliases = map[string]string{
	// Science fiction
	"sci-fi":          "science-fiction",
	"scifi":           "science-fiction",
	"sf":              "science-fiction",
	"science-fiction": "science-fiction",

	// Fantasy
	"high-fantasy":            "epic-fantasy",
	"epic-fantasy":            "epic-fantasy",
	"sword-and-sorcery":       "sword-and-sorcery",
	"s-and-s":                 "sword-and-sorcery",
	"romantic-fantasy":        "romantasy",
	"fantasy-romance":         "romantasy",
	"urban-fantasy":           "urban-fantasy",
	"contemporary-fantasy":    "urban-fantasy",
	"progression":             "progression-fantasy",
	"cultivation":             "progression-fantasy",
	"progression-fantasy":     "progression-fantasy",
	"litrpg":                  "litrpg",
	"lit-rpg":                 "litrpg",
	"gamelit":                 "litrpg",
	"science-fiction-fantasy": "speculative-fiction",
	"sci-fi-fantasy":          "speculative-fiction",
	"speculative-fiction":     "speculative-fiction",

	// Young adult
	"ya":                "young-adult",
	"young-adult":       "young-adult",
	"teen":              "young-adult",
	"teens-young-adult": "young-adult",
	"juvenile-fiction":  "childrens",
	"children-s":        "childrens",
	"childrens":         "childrens",
	"children":          "childrens",

	// Mystery and thriller
	"suspense":               "thriller",
	"thriller":               "thriller",
	"thrillers":              "thriller",
	"thrillers-and-suspense": "thriller",
	"mystery":                "mystery",
	"mysteries":              "mystery",
	"detective":              "mystery",
	"detective-and-mystery":  "mystery",
	"crime-fiction":          "crime",
	"crime":                  "crime",

	// Non-fiction
	"nonfiction":                  "non-fiction",
	"non-fiction":                 "non-fiction",
	"self-help":                   "self-help",
	"selfhelp":                    "self-help",
	"personal-development":        "self-help",
	"biography":                   "biography-memoir",
	"biographies":                 "biography-memoir",
	"memoir":                      "biography-memoir",
	"biography-and-autobiography": "biography-memoir",
	"biographies-and-memoirs":     "biography-memoir",
	"autobiography":               "biography-memoir",

	// Broad buckets
	"literature-and-fiction":    "fiction",
	"general-fiction":           "fiction",
	"fiction":                   "fiction",
	"lit-fic":                   "literary-fiction",
	"literary":                  "literary-fiction",
	"literary-fiction":          "literary-fiction",
	"historical":                "historical-fiction",
	"historical-fiction":        "historical-fiction",
	"horror":                    "horror",
	"scary":                     "horror",
	"humour":                    "humor",
	"humor":                     "humor",
	"comedy-and-humor":          "humor",
	"pnr":                       "paranormal-romance",
	"paranormal-romance":        "paranormal-romance",
	"graphic-novels":            "comics",
	"comics-and-graphic-novels": "comics",
	"comics":                    "comics",
}

// CanonicalSlug returns the canonical slug for a raw category name. Names
// without a known alias return their own slug.
func CanonicalSlug(raw string) string {
	slug := Slugify(raw)
	if canonical, ok := CanonicalAliases[slug]; ok {
		return canonical
	}
	return slug
}

// Equivalent reports whether two category names refer to the same canonical
// category through the alias table or an identical slug.
func Equivalent(a, b string) bool {
	sa, sb := CanonicalSlug(a), CanonicalSlug(b)
	return sa != "" && sa == sb
}
