// Package names converts the uppercase driver names found in timing exports
// to display case.
//
// The rules are locale dependent and live in a Policy so a championship with
// different naming conventions can swap the particle and suffix tables
// without touching the parser.
package names

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policy holds the casing rules for one locale.
type Policy struct {
	// Tag selects the case mapping rules.
	Tag language.Tag

	// Particles stay lowercase unless they are the first word.
	Particles map[string]bool

	// Suffixes replace whole lowercase words verbatim (e.g. "jr" -> "Jr").
	Suffixes map[string]string
}

// DefaultPolicy applies Brazilian Portuguese conventions.
var DefaultPolicy = Policy{
	Tag: language.BrazilianPortuguese,
	Particles: map[string]bool{
		"da": true, "de": true, "do": true,
		"das": true, "dos": true, "e": true,
	},
	Suffixes: map[string]string{
		"jr": "Jr",
	},
}

// Normalize applies DefaultPolicy to raw.
func Normalize(raw string) string {
	return DefaultPolicy.Normalize(raw)
}

// Normalize lowercases raw with the policy locale, then capitalizes each
// whitespace-separated word:
//
//   - Words with an apostrophe capitalize the part before it and every
//     hyphen segment after it ("o'brien-smith" -> "O'Brien-Smith").
//   - Hyphenated words capitalize every segment.
//   - Particles after the first word stay lowercase.
//   - Suffix words are replaced from the suffix table.
//   - Anything else gets its first letter uppercased.
//
// Words are joined with single spaces; leading and trailing whitespace is
// dropped. Empty input returns "".
func (p Policy) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	// Casers are stateful and must not be shared across goroutines.
	lower := cases.Lower(p.Tag)
	c := capitalizer{upper: cases.Upper(p.Tag)}

	words := strings.Fields(lower.String(raw))
	for idx, word := range words {
		words[idx] = p.word(c, word, idx)
	}
	return strings.Join(words, " ")
}

func (p Policy) word(c capitalizer, word string, idx int) string {
	if strings.ContainsAny(word, "'’") {
		word = strings.ReplaceAll(word, "’", "'")
		pre, post, _ := strings.Cut(word, "'")
		left := c.first(pre)
		right := c.compound(post, "-")
		if right == "" {
			return left
		}
		return left + "'" + right
	}

	if strings.Contains(word, "-") {
		return c.compound(word, "-")
	}

	if idx > 0 && p.Particles[word] {
		return word
	}

	if s, ok := p.Suffixes[word]; ok {
		return s
	}

	return c.first(word)
}

type capitalizer struct {
	upper cases.Caser
}

// first uppercases the first rune of s and keeps the rest as is.
func (c capitalizer) first(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return c.upper.String(s[:size]) + s[size:]
}

// compound capitalizes every sep-separated segment of s.
func (c capitalizer) compound(s, sep string) string {
	parts := strings.Split(s, sep)
	for i, part := range parts {
		parts[i] = c.first(part)
	}
	return strings.Join(parts, sep)
}
