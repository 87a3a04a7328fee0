package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var nonSlugRegex = regexp.MustCompile(`[^a-z0-9-]`)

// Slugify matches the slug format leetcode uses in problem urls:
// lowercase words joined by single hyphens, everything else stripped.
// Titles differing only in stripped characters collide silently.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = whitespaceRegex.ReplaceAllString(slug, "-")
	return nonSlugRegex.ReplaceAllString(slug, "")
}

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// single pass, so "&amp;lt;" decodes to "&lt;" and stops there
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
)

// HTMLToText strips tags with a regex rather than a real parser.
// good enough for the problem statements the site serves, malformed
// markup can strip incorrectly. unrecognized entities pass through.
func HTMLToText(html string) string {
	text := tagRegex.ReplaceAllString(html, "")
	text = entityReplacer.Replace(text)
	return strings.Trim(text, " \n\t")
}
