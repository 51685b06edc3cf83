package grammar

import (
	"strings"
	"unicode/utf8"

	"github.com/zostay/go-mailhdr/header/field"
)

// Unstructured is free text, decoded from any RFC 2047 encoded words it holds.
type Unstructured struct {
	node
	raw  string
	text string
}

// Raw returns the value the tree was parsed from.
func (u *Unstructured) Raw() string {
	return u.raw
}

// String returns the decoded text.
func (u *Unstructured) String() string {
	return u.text
}

func isEncodedWord(w string) bool {
	return len(w) >= 8 && strings.HasPrefix(w, "=?") && strings.HasSuffix(w, "?=") && strings.Count(w, "?") >= 4
}

// ParseUnstructured parses any value as unstructured text. It never fails.
// Line breaks are removed and the whitespace of folds is kept. Encoded words
// are decoded, dropping the whitespace between adjacent encoded words as RFC
// 2047 requires. An encoded word that cannot be decoded is kept as-is with an
// UndecodableWordDefect. Control characters and invalid UTF-8 are recorded as
// defects, but left in the text.
func ParseUnstructured(value string) *Unstructured {
	u := &Unstructured{raw: value}
	unfolded := string(field.Unfold([]byte(value)))

	var (
		buf         strings.Builder
		pendingWSP  string
		prevDecoded bool
		rest        = unfolded
	)
	for len(rest) > 0 {
		if isWSP(rest[0]) {
			n := 0
			for n < len(rest) && isWSP(rest[n]) {
				n++
			}
			pendingWSP, rest = rest[:n], rest[n:]
			continue
		}

		n := 0
		for n < len(rest) && !isWSP(rest[n]) {
			n++
		}
		word := rest[:n]
		rest = rest[n:]

		decoded := false
		if isEncodedWord(word) {
			dw, err := field.DecodeWord(word)
			if err != nil {
				u.addDefect(newDefect(UndecodableWordDefect, "encoded word %q could not be decoded: %v", word, err))
			} else {
				word = dw
				decoded = true
			}
		}

		if !(decoded && prevDecoded) {
			buf.WriteString(pendingWSP)
		}
		pendingWSP = ""
		buf.WriteString(word)
		prevDecoded = decoded
	}
	buf.WriteString(pendingWSP)
	u.text = buf.String()

	if !utf8.ValidString(unfolded) {
		u.addDefect(newDefect(UndecodableBytesDefect, "value contains bytes that are not valid UTF-8"))
	}

	var np []string
	for _, r := range unfolded {
		if (r < 0x20 && r != '\t') || r == 0x7f {
			np = append(np, string(r))
		}
	}
	if len(np) > 0 {
		u.addDefect(newDefect(NonPrintableDefect, "non-printable characters found: %q", strings.Join(np, "")))
	}

	return u
}
