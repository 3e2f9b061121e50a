// Package shellquote builds command strings for `sh -c` style consumers:
// the editor command and the picker preview.
package shellquote

import "strings"

const special = " \t\n#[](){}|&;<>*?$`\\!\"'~"

// Quote wraps s in single quotes. An embedded quote closes the string,
// emits an escaped quote and reopens it.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\'' {
			b.WriteString(`'\''`)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

// QuoteIfNeeded leaves plain words alone and quotes anything a shell would
// split or expand. The empty string is quoted so it survives as an argument.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, special) {
		return Quote(s)
	}
	return s
}

// Join quotes each word as needed and joins them with spaces. Words listed
// in raw are emitted verbatim, for placeholders another program substitutes.
func Join(words []string, raw ...string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = QuoteIfNeeded(w)
		for _, r := range raw {
			if w == r {
				out[i] = w
				break
			}
		}
	}
	return strings.Join(out, " ")
}
