package parser

import (
	"strings"
	"text/scanner"
	"unicode"

	"github.com/TFMV/codemetrics/types"
)

const textBlockDelim = `"""`

// CountStrict counts keywords and access modifiers as whole identifier
// tokens, skipping comments, string and character literals and text
// blocks. Malformed input is tokenized as far as possible and never fails.
func CountStrict(source string) types.RawCounts {
	var counts types.RawCounts

	var s scanner.Scanner
	s.Init(strings.NewReader(stripTextBlocks(source)))
	s.Mode = scanner.GoTokens
	s.Error = func(*scanner.Scanner, string) {}
	s.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || ch == '$' || unicode.IsLetter(ch) || (unicode.IsDigit(ch) && i > 0)
	}

	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		if tok != scanner.Ident {
			continue
		}
		word := s.TokenText()
		if isMethodModifier(word) {
			counts.Methods++
			continue
		}
		for _, k := range keywords {
			if k.word == word {
				*k.field(&counts)++
				break
			}
		}
	}

	return counts
}

func isMethodModifier(word string) bool {
	for _, m := range methodModifiers {
		if strings.TrimSpace(m) == word {
			return true
		}
	}
	return false
}

// stripTextBlocks replaces each """...""" text block with an empty string
// literal. An unterminated block runs to the end of the input.
func stripTextBlocks(source string) string {
	if !strings.Contains(source, textBlockDelim) {
		return source
	}

	var b strings.Builder
	for {
		start := strings.Index(source, textBlockDelim)
		if start < 0 {
			b.WriteString(source)
			return b.String()
		}
		b.WriteString(source[:start])
		b.WriteString(`""`)

		rest := source[start+len(textBlockDelim):]
		end := closingDelim(rest)
		if end < 0 {
			return b.String()
		}
		source = rest[end+len(textBlockDelim):]
	}
}

// closingDelim returns the offset of the first unescaped """ in s, or -1.
func closingDelim(s string) int {
	for i := 0; i+len(textBlockDelim) <= len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if strings.HasPrefix(s[i:], textBlockDelim) {
			return i
		}
	}
	return -1
}
