// Package rewrite turns scanned color literals into replacement rules and
// applies them to stylesheet text.
package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsvensson/recolor/internal/color"
	"github.com/jsvensson/recolor/internal/palette"
	"github.com/jsvensson/recolor/internal/scan"
)

// Rule replaces one literal text with its serialized palette match.
type Rule struct {
	From string
	To   string
}

func (r Rule) String() string {
	return r.From + " -> " + r.To
}

// Mode selects how rules are applied to text.
type Mode string

const (
	// ModeRanges replaces only the byte ranges recorded by the scanner.
	ModeRanges Mode = "ranges"
	// ModeSubstring replaces every occurrence of each From text, rule by
	// rule, over the output of the previous rule. Text outside color sites
	// and text produced by an earlier rule are rewritten too.
	ModeSubstring Mode = "substring"
)

// ParseMode resolves a mode name. The empty string selects ModeRanges.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(name)) {
	case "", ModeRanges:
		return ModeRanges, nil
	case ModeSubstring:
		return ModeSubstring, nil
	}
	return "", fmt.Errorf("unknown rewrite mode %q (valid: ranges, substring)", name)
}

// Plan builds one rule per distinct literal: the literal is parsed, matched
// against the palette, passed through the optional inversion table and
// serialized. Rules are ordered by descending From length so that a literal
// contained in a longer one is applied after it; equal lengths keep
// first-seen order.
func Plan(literals []string, m *palette.Matcher, inv *palette.Inversion) []Rule {
	seen := make(map[string]bool, len(literals))
	rules := make([]Rule, 0, len(literals))
	for _, lit := range literals {
		if seen[lit] {
			continue
		}
		seen[lit] = true
		match := inv.Apply(m.Nearest(color.Parse(lit)))
		rules = append(rules, Rule{From: lit, To: match.String()})
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].From) > len(rules[j].From)
	})
	return rules
}

// PlanSites is Plan over the distinct literals of sites.
func PlanSites(sites []scan.Site, m *palette.Matcher, inv *palette.Inversion) []Rule {
	return Plan(scan.Literals(sites), m, inv)
}

// Apply performs literal substring replacement of each rule, in order, over
// the result of the previous replacements.
func Apply(text string, rules []Rule) string {
	for _, r := range rules {
		if r.From == "" || r.From == r.To {
			continue
		}
		text = strings.ReplaceAll(text, r.From, r.To)
	}
	return text
}

// ApplySites replaces the recorded spans of sites with the To text of the
// rule for their literal. Bytes outside the spans are copied unchanged.
func ApplySites(text string, sites []scan.Site, rules []Rule) string {
	to := make(map[string]string, len(rules))
	for _, r := range rules {
		to[r.From] = r.To
	}

	type edit struct {
		span scan.Span
		text string
	}
	var edits []edit
	for _, s := range sites {
		repl, ok := to[s.Literal]
		if !ok {
			continue
		}
		for _, sp := range s.Spans {
			edits = append(edits, edit{span: sp, text: repl})
		}
	}
	if len(edits) == 0 {
		return text
	}
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].span.Start < edits[j].span.Start
	})

	var b strings.Builder
	b.Grow(len(text))
	cursor := 0
	for _, e := range edits {
		if e.span.Start < cursor || e.span.End > len(text) {
			continue
		}
		b.WriteString(text[cursor:e.span.Start])
		b.WriteString(e.text)
		cursor = e.span.End
	}
	b.WriteString(text[cursor:])
	return b.String()
}

// Run applies rules to text using mode.
func Run(text string, sites []scan.Site, rules []Rule, mode Mode) string {
	if mode == ModeSubstring {
		return Apply(text, rules)
	}
	return ApplySites(text, sites, rules)
}
