package grammar

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/zostay/go-mailhdr/internal/scanner"
)

type tokenKind int

const (
	atomToken    tokenKind = iota + 1 // dot-atom-text, more or less
	quotedToken                       // "quoted string"
	commentToken                      // (comment)
	literalToken                      // [domain literal]
	specialToken                      // one of the specials
)

// token is a lexical element of a structured header field body. Quoted
// strings, comments, and literals are kept with their delimiters. A token is
// unterminated when the input ended before its closing delimiter.
type token struct {
	kind         tokenKind
	text         string
	unterminated bool
}

func (t token) is(special byte) bool {
	return t.kind == specialToken && t.text == string(special)
}

const specials = "<>@,;:\\)]"

func isWSP(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isAtomByte(c byte) bool {
	return !isWSP(c) && !strings.ContainsRune(specials, rune(c)) && c != '(' && c != '"' && c != '['
}

// delimited scans a quoted string, comment, or literal starting at data[0].
// Comments nest. It returns the length of the token and whether it was closed.
func delimited(data []byte, open, close byte) (int, bool) {
	depth := 0
	for i := 0; i < len(data); i++ {
		switch c := data[i]; {
		case c == '\\':
			i++
		case i > 0 && c == close:
			depth--
			if depth < 0 || open == close {
				return i + 1, true
			}
		case c == open && (i == 0 || open == '('):
			if i > 0 {
				depth++
			}
		}
	}
	return len(data), false
}

// lex breaks a structured field body into tokens. Whitespace is dropped. The
// scan buffer may grow to the size of the whole value, so no token is ever too
// long. An error is only returned if the split function fails.
func lex(value string) ([]token, error) {
	var (
		toks         []token
		unterminated bool
	)

	split := func(data []byte, atEOF bool) (int, []byte, error) {
		unterminated = false
		if len(data) == 0 {
			return 0, nil, nil
		}

		var (
			n      int
			closed = true
		)

		switch c := data[0]; {
		case isWSP(c):
			for n < len(data) && isWSP(data[n]) {
				n++
			}
			if n == len(data) && !atEOF {
				return 0, nil, nil
			}
			return n, nil, nil
		case c == '(':
			n, closed = delimited(data, '(', ')')
		case c == '"':
			n, closed = delimited(data, '"', '"')
		case c == '[':
			n, closed = delimited(data, '[', ']')
		case strings.IndexByte(specials, c) >= 0:
			return 1, data[:1], nil
		default:
			for n < len(data) && isAtomByte(data[n]) {
				n++
			}
			if n == len(data) && !atEOF {
				return 0, nil, nil
			}
			return n, data[:n], nil
		}

		if !closed {
			if !atEOF {
				return 0, nil, nil
			}
			unterminated = true
		}
		return n, data[:n], nil
	}

	sc := bufio.NewScanner(strings.NewReader(value))
	sc.Buffer(make([]byte, 0, 4096), len(value)+1)
	sc.Split(scanner.MakeSplitFuncExitByAdvance(split))
	for sc.Scan() {
		text := sc.Text()
		t := token{text: text, unterminated: unterminated}
		switch text[0] {
		case '(':
			t.kind = commentToken
		case '"':
			t.kind = quotedToken
		case '[':
			t.kind = literalToken
		default:
			if strings.IndexByte(specials, text[0]) >= 0 {
				t.kind = specialToken
			} else {
				t.kind = atomToken
			}
		}
		toks = append(toks, t)
	}

	if err := sc.Err(); err != nil {
		return toks, fmt.Errorf("unable to tokenize header field body: %w", err)
	}

	return toks, nil
}

// unquote removes the delimiters and backslash escapes from a quoted string,
// comment, or literal token.
func unquote(t token) string {
	s := t.text[1:]
	if !t.unterminated && len(s) > 0 {
		s = s[:len(s)-1]
	}

	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		buf.WriteByte(s[i])
	}
	return buf.String()
}
