package categories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"science fiction", "Science Fiction"},
		{"  SCIENCE   FICTION ", "Science Fiction"},
		{"sci-fi", "Sci-Fi"},
		{"history of the world", "History of the World"},
		{"the lord of the rings", "The Lord of the Rings"},
		{"HISTORY OF ART", "History of Art"},
		{"YA fantasy", "YA Fantasy"},
		{"LGBTQ+ fiction", "LGBTQ+ Fiction"},
		{"children's books", "Children's Books"},
		{"Fiction / General", "Fiction / General"},
		{"WWII", "WWII"},
		{"world war ii", "World War II"},
		{"litrpg", "LitRPG"},
		{"DRAMA", "Drama"},
		{"SCI FI", "Sci Fi"},
		{"ya fiction", "YA Fiction"},
		{"lgbtq-friendly", "LGBTQ-Friendly"},
		{"   ", ""},
		{"--", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.in))
		})
	}
}

func TestCanonicalize_Stable(t *testing.T) {
	for _, in := range []string{"sci-fi", "YA fantasy", "History of Art", "Fiction / General"} {
		once := Canonicalize(in)
		assert.Equal(t, once, Canonicalize(once), in)
	}
}

func TestCanonicalize_IgnoresInputCase(t *testing.T) {
	tests := []string{
		"DRAMA", "Drama", "SCI FI", "sci fi", "YA Fiction", "ya fiction",
		"HISTORY OF ART", "LGBTQ+ Fiction", "World War II", "LitRPG", "SF",
		"Children's Books", "Fiction / General", "McCarthy Era", "AI Ethics",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, Canonicalize(strings.ToLower(in)), Canonicalize(in))
			assert.Equal(t, Canonicalize(strings.ToUpper(in)), Canonicalize(in))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		tag      string
		geo      bool
		temporal bool
	}{
		{"France", true, false},
		{"History / Europe / General", true, false},
		{"New York (N.Y.)", true, false},
		{"American Literature", false, false},
		{"1920s", false, true},
		{"19th Century", false, true},
		{"World War II", false, true},
		{"Victorian England", true, true},
		{"Medieval", false, true},
		{"Science Fiction", false, false},
		{"Space Opera", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.geo, IsGeographical(tt.tag), "geographical")
			assert.Equal(t, tt.temporal, IsTemporal(tt.tag), "temporal")
		})
	}
}
