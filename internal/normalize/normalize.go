// Package normalize cleans provider strings before they become candidates.
package normalize

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	yearRegex       = regexp.MustCompile(`\d{4}`)
	yearOnlyRegex   = regexp.MustCompile(`^\d{4}$`)

	// Looks for opening tags like <p>, <br>, <div>, <b>, etc.
	htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)
)

// Text strips NUL bytes, trims, and collapses internal whitespace.
// Some providers return padded or NUL-terminated strings.
func Text(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ContainsHTML reports whether s appears to contain HTML markup.
func ContainsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// Description converts an HTML blurb to Markdown. Plain text is only trimmed
// so that paragraph breaks survive.
func Description(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
	if s == "" || !ContainsHTML(s) {
		return s
	}

	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return PlainText(s)
	}
	return strings.TrimSpace(markdown)
}

// PlainText removes all markup and returns the text content on one line.
func PlainText(s string) string {
	if s == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return Text(s)
	}

	var buf strings.Builder
	extractText(doc, &buf)
	return Text(buf.String())
}

func extractText(n *html.Node, buf *strings.Builder) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			buf.WriteString(" ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, buf)
	}
}

// Year returns the first run of four digits in s.
func Year(s string) (string, bool) {
	y := yearRegex.FindString(s)
	return y, y != ""
}

// IsYearOnly reports whether s is exactly a four-digit year.
func IsYearOnly(s string) bool {
	return yearOnlyRegex.MatchString(s)
}
