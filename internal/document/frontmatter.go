// Package document separates a leading front-matter block from the body of a
// Markdown document and puts the two back together.
package document

import (
	"regexp"
	"strings"
)

// frontMatterPattern matches a block that starts the text with a "---" line,
// runs lazily to the next "---" line, and includes the newline after it.
var frontMatterPattern = regexp.MustCompile(`^---\n([\s\S]*?)\n---\n`)

// Split returns the front-matter header (empty if there is none) and the
// remaining body. header+body is always equal to text.
func Split(text string) (header, body string) {
	loc := frontMatterPattern.FindStringIndex(text)
	if loc == nil {
		return "", text
	}
	return text[:loc[1]], text[loc[1]:]
}

// Join reattaches a header produced by Split to a body. The header already
// carries its trailing newline so nothing is inserted between them.
func Join(header, body string) string {
	return header + body
}

// IsBlank reports whether body has nothing but whitespace.
func IsBlank(body string) bool {
	return strings.TrimSpace(body) == ""
}
