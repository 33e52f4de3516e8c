// Package normalize pads and collapses delimiter whitespace so keyword
// matching on SQL and command text is reliable.
//
// Both passes copy quoted regions ('text' and "identifier") verbatim;
// the guarantees below hold for everything outside them. Quote characters
// inside -- and /* */ comments are ordinary text.
package normalize

import "strings"

// Pad inserts a single space on both sides of every line break, tab and
// comma. The result is meant for pattern matching, not for output; run
// Clean before handing text back to a caller.
func Pad(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	plain := 0 // end of the comment being copied
	for i := 0; i < len(s); {
		ch := s[i]
		if i >= plain {
			plain = commentEnd(s, i)
			if isQuote(ch) {
				i = copyQuoted(&b, s, i)
				continue
			}
		}
		switch ch {
		case '\n', '\r', '\t', ',':
			b.WriteByte(' ')
			b.WriteByte(ch)
			b.WriteByte(' ')
		default:
			b.WriteByte(ch)
		}
		i++
	}
	return b.String()
}

// Clean collapses runs of spaces to one, removes spaces adjacent to line
// breaks and tabs, removes a space directly before a comma and trims
// leading and trailing spaces. Clean is idempotent.
func Clean(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	pending := false   // a space is owed before the next visible byte
	afterBreak := true // previous byte was a break (or start of text)
	plain := 0         // end of the comment being copied

	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == ' ':
			pending = true
			i++
		case isBreak(ch):
			pending = false
			b.WriteByte(ch)
			afterBreak = true
			i++
		case ch == ',':
			pending = false
			b.WriteByte(ch)
			afterBreak = false
			i++
		default:
			if pending && !afterBreak {
				b.WriteByte(' ')
			}
			pending = false
			afterBreak = false
			if i >= plain {
				plain = commentEnd(s, i)
				if isQuote(ch) {
					i = copyQuoted(&b, s, i)
					continue
				}
			}
			b.WriteByte(ch)
			i++
		}
	}
	return b.String()
}

// Normalize is Clean(Pad(s)): the form handed back to callers.
func Normalize(s string) string {
	return Clean(Pad(s))
}

func isBreak(ch byte) bool {
	return ch == '\n' || ch == '\r' || ch == '\t'
}

func isQuote(ch byte) bool {
	return ch == '\'' || ch == '"'
}

// commentEnd returns the index just past a -- or /* */ comment starting at
// pos, or pos when none starts there. A line comment stops before its line
// break; an unterminated comment runs to the end of s.
func commentEnd(s string, pos int) int {
	switch {
	case strings.HasPrefix(s[pos:], "--"):
		if n := strings.IndexByte(s[pos:], '\n'); n >= 0 {
			return pos + n
		}
		return len(s)
	case strings.HasPrefix(s[pos:], "/*"):
		if n := strings.Index(s[pos+2:], "*/"); n >= 0 {
			return pos + 2 + n + 2
		}
		return len(s)
	}
	return pos
}

// copyQuoted writes the quoted region starting at pos and returns the index
// after its closing quote. A doubled quote inside the region is an escape.
// A quote with no closing partner is written alone and the text after it
// is not treated as quoted.
func copyQuoted(b *strings.Builder, s string, pos int) int {
	q := s[pos]
	end := -1
	for j := pos + 1; j < len(s); j++ {
		if s[j] != q {
			continue
		}
		if j+1 < len(s) && s[j+1] == q {
			j++
			continue
		}
		end = j + 1
		break
	}
	if end < 0 {
		b.WriteByte(q)
		return pos + 1
	}
	b.WriteString(s[pos:end])
	return end
}
