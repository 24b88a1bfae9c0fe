// Package htmlsanitize sanitizes user-supplied HTML before it is rendered.
//
// Report descriptions and other user-entered text may arrive as plain text or
// as rich HTML. This package strips anything dangerous (scripts, event
// handlers, iframes, forms) while keeping common formatting, links, images,
// and tables.
package htmlsanitize

import (
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the shared sanitization policy. bluemonday policies are safe for
// concurrent use once built.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Tables with presentational attributes are allowed; UGC alone strips
	// class and style.
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("style").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")

	p.AllowElements("mark")

	return p
}

// tagPattern matches anything that looks like an HTML tag.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Sanitize returns the input with all disallowed HTML removed.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// SanitizeToHTML sanitizes the input and returns it as template.HTML, ready
// to render without further escaping.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(policy.Sanitize(s))
}

// IsPlainText reports whether the input contains no HTML tags.
func IsPlainText(s string) bool {
	return !tagPattern.MatchString(s)
}

// PlainTextToHTML converts plain text to simple HTML: entities are escaped,
// newlines become <br>, and the result is wrapped in a paragraph.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay converts user-entered text to safe HTML for rendering.
// Plain text is escaped and paragraph-wrapped; HTML is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
