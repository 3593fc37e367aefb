package searcher

import (
	"regexp"
	"strings"
)

var (
	// Everything except word characters, whitespace, double quotes,
	// hyphens, and apostrophes is stripped before tokenizing.
	stripPattern = regexp.MustCompile(`[^\w\s"'-]+`)
	// Double-quoted substrings become exact phrase terms.
	phrasePattern = regexp.MustCompile(`"([^"]*)"`)
)

// BuildMatchQuery converts free-text user input into an FTS5 MATCH
// expression. Quoted substrings become exact phrases; remaining terms of
// length two or more get a prefix wildcard so type-ahead queries match;
// single-character terms pass through as exact tokens. All terms are
// combined with AND, trading recall for precision on a corpus full of
// near-duplicate entries.
//
// Empty or punctuation-only input returns "", which callers treat as
// match-all.
func BuildMatchQuery(input string) string {
	cleaned := stripPattern.ReplaceAllString(input, " ")

	var terms []string
	rest := phrasePattern.ReplaceAllStringFunc(cleaned, func(m string) string {
		phrase := strings.TrimSpace(strings.Trim(m, `"`))
		if phrase != "" {
			terms = append(terms, `"`+phrase+`"`)
		}
		return " "
	})

	for _, tok := range strings.Fields(rest) {
		// A stray unpaired quote is punctuation, not a token.
		tok = strings.Trim(tok, `"`)
		if tok == "" {
			continue
		}
		// Tokens are quoted so hyphens and apostrophes survive FTS5
		// parsing.
		if len([]rune(tok)) >= 2 {
			terms = append(terms, `"`+tok+`"*`)
		} else {
			terms = append(terms, `"`+tok+`"`)
		}
	}

	return strings.Join(terms, " AND ")
}
