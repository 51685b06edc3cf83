package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTruncated is wrapped by every StructuralError.
var ErrTruncated = errors.New("msg-id token stream ended early")

// StructuralError is returned by ParseMessageID when the token stream ends
// while a msg-id is still open, after the "<" and before the ">". This happens
// when an unterminated comment, quoted string, or domain literal swallows the
// rest of the value, or when the value just stops. The MessageID tree has no
// way to represent such a value, so rather than guessing the parser reports
// it. Callers can recover with ParseUnstructured.
type StructuralError struct {
	Value string // the field body being parsed
	Want  string // what the parser needed next
}

// Error returns the error message.
func (err *StructuralError) Error() string {
	return fmt.Sprintf("msg-id %q ended while expecting %s", err.Value, err.Want)
}

// Unwrap returns ErrTruncated.
func (err *StructuralError) Unwrap() error {
	return ErrTruncated
}

// MessageID is a well-formed (or nearly so) msg-id.
type MessageID struct {
	node
	left     string
	right    string
	comments []string
}

// IDLeft returns the part before the "@".
func (m *MessageID) IDLeft() string {
	return m.left
}

// IDRight returns the part after the "@". It is empty if the msg-id has none,
// which is recorded as a MissingValueDefect.
func (m *MessageID) IDRight() string {
	return m.right
}

// Comments returns the text of any comments found around the msg-id.
func (m *MessageID) Comments() []string {
	return m.comments
}

// String returns the msg-id in canonical form, with angle brackets and
// without comments or folding whitespace.
func (m *MessageID) String() string {
	if m.right == "" {
		return "<" + m.left + ">"
	}
	return "<" + m.left + "@" + m.right + ">"
}

// InvalidMessageID holds a value that could not be read as a msg-id. The
// value is kept as some other Node, usually *Unstructured.
type InvalidMessageID struct {
	node
	value Node
}

// NewInvalidMessageID wraps value as an invalid msg-id with the given defects.
func NewInvalidMessageID(value Node, defects ...Defect) *InvalidMessageID {
	m := &InvalidMessageID{value: value}
	m.addDefect(defects...)
	return m
}

// Value returns the wrapped tree.
func (m *InvalidMessageID) Value() Node {
	return m.value
}

// String returns the rendering of the wrapped tree.
func (m *InvalidMessageID) String() string {
	return m.value.String()
}

// Children returns the wrapped tree.
func (m *InvalidMessageID) Children() []Node {
	return []Node{m.value}
}

type msgIDParser struct {
	value string
	toks  []token
	pos   int
	m     *MessageID
}

// need returns the next token, skipping comments, which are obsolete inside
// the angle brackets. Running out of tokens is the StructuralError.
func (p *msgIDParser) need(want string) (token, error) {
	for {
		if p.pos >= len(p.toks) {
			return token{}, &StructuralError{Value: p.value, Want: want}
		}

		t := p.toks[p.pos]
		p.pos++
		if t.kind != commentToken {
			return t, nil
		}

		p.m.addDefect(newDefect(ObsoleteHeaderDefect, "comment %s inside msg-id", t.text))
		p.m.comments = append(p.m.comments, unquote(t))
	}
}

func (p *msgIDParser) invalid(format string, args ...any) (Node, error) {
	return NewInvalidMessageID(
		ParseUnstructured(p.value),
		newDefect(InvalidMessageIDDefect, format, args...),
	), nil
}

// ParseMessageID parses a Message-ID field body:
//
//	msg-id   = [CFWS] "<" id-left "@" id-right ">" [CFWS]
//	id-left  = dot-atom-text / obs-id-left
//	id-right = dot-atom-text / no-fold-literal / obs-id-right
//
// Values that do not start with "<" or that have unexpected tokens in place of
// id-left, id-right, or the closing ">" are returned as an *InvalidMessageID
// around the unstructured parse of the value. Text after the ">" is tolerated
// with an InvalidHeaderDefect.
//
// A *StructuralError is returned when the value ends inside the brackets. Any
// other error is a failure of the tokenizer itself and does not happen for any
// input.
func ParseMessageID(value string) (Node, error) {
	toks, err := lex(value)
	if err != nil {
		return nil, err
	}

	p := &msgIDParser{value: value, toks: toks, m: &MessageID{}}

	// leading CFWS
	for p.pos < len(toks) && toks[p.pos].kind == commentToken {
		p.m.comments = append(p.m.comments, unquote(toks[p.pos]))
		p.pos++
	}

	if p.pos >= len(toks) {
		return NewInvalidMessageID(
			ParseUnstructured(value),
			newDefect(MissingValueDefect, "expected msg-id but found nothing"),
		), nil
	}

	if t := toks[p.pos]; !t.is('<') {
		return p.invalid("expected %q but found %q", "<", t.text)
	}
	p.pos++

	t, err := p.need("id-left")
	if err != nil {
		return nil, err
	}

	switch t.kind {
	case atomToken:
		p.m.left = t.text
	case quotedToken:
		p.m.addDefect(newDefect(ObsoleteHeaderDefect, "quoted id-left %s", t.text))
		p.m.left = unquote(t)
	default:
		return p.invalid("expected id-left but found %q", t.text)
	}

	if strings.HasPrefix(p.m.left, ".") || strings.HasSuffix(p.m.left, ".") || strings.Contains(p.m.left, "..") {
		p.m.addDefect(newDefect(InvalidHeaderDefect, "id-left %q is not a valid dot-atom", p.m.left))
	}

	t, err = p.need(`"@" or ">"`)
	if err != nil {
		return nil, err
	}

	switch {
	case t.is('>'):
		p.m.addDefect(newDefect(MissingValueDefect, "msg-id with no id-right"))
	case t.is('@'):
		t, err = p.need("id-right")
		if err != nil {
			return nil, err
		}

		switch t.kind {
		case atomToken, literalToken:
			p.m.right = t.text
		default:
			return p.invalid("expected id-right but found %q", t.text)
		}

		t, err = p.need(`">"`)
		if err != nil {
			return nil, err
		}

		if !t.is('>') {
			return p.invalid("expected %q but found %q", ">", t.text)
		}
	default:
		return p.invalid("expected %q but found %q", "@", t.text)
	}

	// trailing CFWS
	var extra []string
	for _, t := range toks[p.pos:] {
		if t.kind == commentToken {
			p.m.comments = append(p.m.comments, unquote(t))
			continue
		}
		extra = append(extra, t.text)
	}
	if len(extra) > 0 {
		p.m.addDefect(newDefect(InvalidHeaderDefect, "unexpected %q after msg-id", strings.Join(extra, " ")))
	}

	return p.m, nil
}
