package parser

import (
	"fmt"
	"strings"

	"github.com/TFMV/codemetrics/types"
)

// Mode selects how complexity indicators are counted.
type Mode string

const (
	// ModeSubstring counts raw substring occurrences. Keywords inside
	// identifiers, strings and comments are counted too ("notify" holds
	// an "if", "format" holds a "for"). Worked numbers depend on this
	// behaviour, so it stays the default.
	ModeSubstring Mode = "substring"
	// ModeStrict counts whole-word tokens outside comments, string and
	// character literals and Java text blocks. A """ inside a comment or
	// an ordinary string literal is still read as a text block opener.
	ModeStrict Mode = "strict"
)

// ParseMode converts a mode name. An empty name selects ModeSubstring.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSubstring:
		return ModeSubstring, nil
	case ModeStrict:
		return ModeStrict, nil
	}
	return "", fmt.Errorf("unknown counting mode %q", s)
}

// keyword binds a counted keyword to its RawCounts field.
type keyword struct {
	word  string
	field func(*types.RawCounts) *int
}

// keywords lists the counted keywords in RawCounts field order.
var keywords = []keyword{
	{"if", func(c *types.RawCounts) *int { return &c.If }},
	{"for", func(c *types.RawCounts) *int { return &c.For }},
	{"while", func(c *types.RawCounts) *int { return &c.While }},
	{"switch", func(c *types.RawCounts) *int { return &c.Switch }},
	{"catch", func(c *types.RawCounts) *int { return &c.Catch }},
}

// methodModifiers mark a method declaration. The trailing space is part
// of the substring match.
var methodModifiers = []string{"public ", "private ", "protected "}

// CountRaw counts non-overlapping literal occurrences of each keyword
// and of the access modifier markers. Any text is valid input.
func CountRaw(source string) types.RawCounts {
	var counts types.RawCounts
	for _, k := range keywords {
		*k.field(&counts) = strings.Count(source, k.word)
	}
	for _, m := range methodModifiers {
		counts.Methods += strings.Count(source, m)
	}
	return counts
}

// Count dispatches to the counter for mode.
func Count(mode Mode, source string) types.RawCounts {
	if mode == ModeStrict {
		return CountStrict(source)
	}
	return CountRaw(source)
}
