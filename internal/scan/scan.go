// Package scan finds color literals in the property values of a stylesheet.
//
// The scanner is a small explicit-state machine rather than a CSS parser: it
// tracks comments, quoted strings and brace depth, splits blocks into
// declarations and looks for color literals after the first colon of each
// declaration. Selectors, comments, quoted strings and url() bodies never
// produce sites.
package scan

import (
	"strings"

	"github.com/jsvensson/recolor/internal/color"
)

// Span is a half-open byte range [Start, End) in the scanned text.
type Span struct {
	Start, End int
}

// Site is one color literal found in the value of a declaration. A literal
// that occurs several times in the same declaration yields one Site with
// several Spans.
type Site struct {
	Literal     string
	Selector    string
	Declaration string
	Spans       []Span
}

type state int

const (
	stateNormal state = iota
	stateSingleQuote
	stateDoubleQuote
	stateComment
)

// nameValuedProperties hold identifiers that are not colors even when they
// spell a color keyword ("font-family: Red Hat").
var nameValuedProperties = map[string]bool{
	"font":                  true,
	"font-family":           true,
	"animation":             true,
	"animation-name":        true,
	"grid-area":             true,
	"grid-template-areas":   true,
	"counter-reset":         true,
	"counter-increment":     true,
	"transition":            true,
	"transition-property":   true,
	"will-change":           true,
	"view-transition-name":  true,
	"container-name":        true,
	"list-style-type":       true,
	"font-feature-settings": true,
}

// Scan returns the color sites of css in source order.
func Scan(css string) []Site {
	var (
		sites     []Site
		selectors []string
		segStart  int
		st        = stateNormal
	)

	for i := 0; i < len(css); i++ {
		ch := css[i]
		switch st {
		case stateComment:
			if ch == '*' && i+1 < len(css) && css[i+1] == '/' {
				st = stateNormal
				i++
			}
			continue
		case stateSingleQuote, stateDoubleQuote:
			if ch == '\\' {
				i++
			} else if (ch == '\'' && st == stateSingleQuote) || (ch == '"' && st == stateDoubleQuote) {
				st = stateNormal
			}
			continue
		}

		switch ch {
		case '/':
			if i+1 < len(css) && css[i+1] == '*' {
				st = stateComment
				i++
			}
		case '\'':
			st = stateSingleQuote
		case '"':
			st = stateDoubleQuote
		case '{':
			selectors = append(selectors, StripComments(css[segStart:i]))
			segStart = i + 1
		case '}':
			if n := len(selectors); n > 0 {
				sites = appendDeclaration(sites, css, segStart, i, selectors[n-1])
				selectors = selectors[:n-1]
			}
			segStart = i + 1
		case ';':
			if n := len(selectors); n > 0 {
				sites = appendDeclaration(sites, css, segStart, i, selectors[n-1])
			}
			segStart = i + 1
		}
	}

	// Unterminated block at end of input.
	if n := len(selectors); n > 0 {
		sites = appendDeclaration(sites, css, segStart, len(css), selectors[n-1])
	}

	return sites
}

// Literals returns the distinct literal texts of sites in first-seen order.
func Literals(sites []Site) []string {
	seen := make(map[string]bool, len(sites))
	var out []string
	for _, s := range sites {
		if !seen[s.Literal] {
			seen[s.Literal] = true
			out = append(out, s.Literal)
		}
	}
	return out
}

// appendDeclaration scans css[start:end] as one "property: value" declaration
// and appends a Site per distinct literal in its value.
func appendDeclaration(sites []Site, css string, start, end int, selector string) []Site {
	colon := findColon(css, start, end)
	if colon < 0 {
		return sites
	}
	property := strings.ToLower(strings.TrimSpace(StripComments(css[start:colon])))
	if property == "" {
		return sites
	}

	spans := valueLiterals(css, colon+1, end, !nameValuedProperties[property])
	if len(spans) == 0 {
		return sites
	}

	decl := strings.TrimSpace(css[start:end])
	index := make(map[string]int, len(spans))
	for _, sp := range spans {
		lit := css[sp.Start:sp.End]
		if i, ok := index[lit]; ok {
			sites[i].Spans = append(sites[i].Spans, sp)
			continue
		}
		index[lit] = len(sites)
		sites = append(sites, Site{
			Literal:     lit,
			Selector:    selector,
			Declaration: decl,
			Spans:       []Span{sp},
		})
	}
	return sites
}

// findColon returns the offset of the first colon in css[start:end] outside
// strings and comments, or -1.
func findColon(css string, start, end int) int {
	for i := start; i < end; i++ {
		switch css[i] {
		case ':':
			return i
		case '\'', '"':
			i = skipString(css, i, end) - 1
		case '/':
			if i+1 < end && css[i+1] == '*' {
				i = skipComment(css, i, end) - 1
			}
		}
	}
	return -1
}

// valueLiterals returns the spans of color literals in css[start:end].
func valueLiterals(css string, start, end int, keywords bool) []Span {
	var spans []Span
	i := start
	for i < end {
		ch := css[i]
		switch {
		case ch == '/' && i+1 < end && css[i+1] == '*':
			i = skipComment(css, i, end)

		case ch == '\'' || ch == '"':
			i = skipString(css, i, end)

		case ch == '#':
			j := i + 1
			for j < end && isHex(css[j]) {
				j++
			}
			if n := j - i - 1; (n == 3 || n == 4 || n == 6 || n == 8) && (j == end || !isWordChar(css[j])) {
				spans = append(spans, Span{i, j})
				i = j
				continue
			}
			// Not a color: skip the rest of the token (#main, #12345).
			for j < end && isIdentChar(css[j]) {
				j++
			}
			i = j

		case isDigit(ch) || ch == '.':
			j := i + 1
			for j < end && (isIdentChar(css[j]) || css[j] == '.' || css[j] == '%') {
				j++
			}
			i = j

		case isIdentStart(ch):
			j := i + 1
			for j < end && isIdentChar(css[j]) {
				j++
			}
			name := css[i:j]
			if j < end && css[j] == '(' {
				i = scanFunction(css, i, j, end, &spans)
				continue
			}
			if keywords && color.IsKeyword(name) {
				spans = append(spans, Span{i, j})
			}
			i = j

		default:
			i++
		}
	}
	return spans
}

// scanFunction handles an identifier at css[start:open] followed by '(' at
// open. Color functions with flat arguments become a span; url() bodies are
// skipped; any other function is entered so its arguments get scanned.
func scanFunction(css string, start, open, end int, spans *[]Span) int {
	switch strings.ToLower(css[start:open]) {
	case "rgb", "rgba", "hsl", "hsla":
		for k := open + 1; k < end; k++ {
			switch css[k] {
			case ')':
				*spans = append(*spans, Span{start, k + 1})
				return k + 1
			case '(', ';', '{', '}':
				return open + 1
			}
		}
		return open + 1
	case "url":
		for k := open + 1; k < end; k++ {
			switch css[k] {
			case '\'', '"':
				k = skipString(css, k, end) - 1
			case ')':
				return k + 1
			}
		}
		return end
	}
	return open + 1
}

// skipString returns the offset just past the quoted string starting at i.
func skipString(css string, i, end int) int {
	quote := css[i]
	for j := i + 1; j < end; j++ {
		switch css[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return end
}

// skipComment returns the offset just past the comment starting at i.
func skipComment(css string, i, end int) int {
	if k := strings.Index(css[i+2:end], "*/"); k >= 0 {
		return i + 2 + k + 2
	}
	return end
}

// StripComments removes block comments from s, leaving quoted strings intact,
// and trims surrounding whitespace.
func StripComments(s string) string {
	if !strings.Contains(s, "/*") {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		switch {
		case s[i] == '/' && i+1 < len(s) && s[i+1] == '*':
			i = skipComment(s, i, len(s))
		case s[i] == '\'' || s[i] == '"':
			j := skipString(s, i, len(s))
			b.WriteString(s[i:j])
			i = j
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return strings.TrimSpace(b.String())
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isWordChar matches the regexp \w class.
func isWordChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isIdentStart(c byte) bool {
	return isLetter(c) || c == '_' || c == '-' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
