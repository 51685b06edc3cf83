package grammar

import (
	"strconv"
	"strings"

	"github.com/zostay/go-mailhdr/header/param"
)

// MIMEVersion is the value of the MIME-Version field.
type MIMEVersion struct {
	node
	raw          string
	major, minor int
	valid        bool
}

// Version returns the major and minor version numbers. Both are 0 unless
// Valid is true.
func (v *MIMEVersion) Version() (major, minor int) {
	return v.major, v.minor
}

// Valid reports whether a version number was found.
func (v *MIMEVersion) Valid() bool {
	return v.valid
}

// String returns "major.minor" or the trimmed value when no version number
// could be parsed.
func (v *MIMEVersion) String() string {
	if !v.valid {
		return strings.TrimSpace(v.raw)
	}
	return strconv.Itoa(v.major) + "." + strconv.Itoa(v.minor)
}

// atoms returns the non-comment tokens of a value or records an
// InvalidHeaderDefect on n if the value cannot be tokenized.
func atoms(n *node, value string) []token {
	toks, err := lex(value)
	if err != nil {
		n.addDefect(newDefect(InvalidHeaderDefect, "%v", err))
	}

	out := make([]token, 0, len(toks))
	for _, t := range toks {
		if t.kind != commentToken {
			out = append(out, t)
		}
	}
	return out
}

// ParseMIMEVersion parses a MIME-Version field body, which is two numbers
// separated by a dot with optional comments around them.
func ParseMIMEVersion(value string) *MIMEVersion {
	v := &MIMEVersion{raw: value}
	toks := atoms(&v.node, value)
	if len(toks) == 0 {
		v.addDefect(newDefect(MissingValueDefect, "expected MIME version but found nothing"))
		return v
	}

	if len(toks) > 1 || toks[0].kind != atomToken {
		v.addDefect(newDefect(InvalidHeaderDefect, "expected MIME version but found %q", strings.TrimSpace(value)))
		return v
	}

	majStr, minStr, found := strings.Cut(toks[0].text, ".")
	major, err1 := strconv.Atoi(majStr)
	minor, err2 := strconv.Atoi(minStr)
	if !found || err1 != nil || err2 != nil {
		v.addDefect(newDefect(InvalidHeaderDefect, "expected MIME version but found %q", toks[0].text))
		return v
	}

	v.major, v.minor, v.valid = major, minor, true
	return v
}

// ParamValue is the value of a parameterized field like Content-type or
// Content-disposition.
type ParamValue struct {
	node
	raw string
	v   *param.Value
}

// Value returns the parsed value or nil if it could not be parsed.
func (p *ParamValue) Value() *param.Value {
	return p.v
}

// String returns the value with its parameters or the trimmed value if it
// could not be parsed.
func (p *ParamValue) String() string {
	if p.v == nil {
		return strings.TrimSpace(p.raw)
	}
	return p.v.String()
}

// ParseParamValue parses a parameterized field body per RFC 2045 and RFC 2231.
// A failure is recorded as an InvalidHeaderDefect and leaves Value nil.
func ParseParamValue(value string) *ParamValue {
	p := &ParamValue{raw: value}
	if strings.TrimSpace(value) == "" {
		p.addDefect(newDefect(MissingValueDefect, "expected parameterized value but found nothing"))
		return p
	}

	pv, err := param.Parse(value)
	if err != nil {
		p.addDefect(newDefect(InvalidHeaderDefect, "parameterized value %q could not be parsed: %v", strings.TrimSpace(value), err))
		return p
	}

	p.v = pv
	return p
}

// Token is a field body holding a single token, like
// Content-transfer-encoding.
type Token struct {
	node
	raw string
	tok string
}

// Value returns the token lower-cased.
func (t *Token) Value() string {
	return strings.ToLower(t.tok)
}

// String returns the token as it was found or the trimmed value if there was
// no single token.
func (t *Token) String() string {
	if t.tok == "" {
		return strings.TrimSpace(t.raw)
	}
	return t.tok
}

// ParseToken parses a field body expected to hold exactly one token.
func ParseToken(value string) *Token {
	t := &Token{raw: value}
	toks := atoms(&t.node, value)
	switch {
	case len(toks) == 0:
		t.addDefect(newDefect(MissingValueDefect, "expected token but found nothing"))
	case len(toks) > 1 || toks[0].kind != atomToken:
		t.addDefect(newDefect(InvalidHeaderDefect, "expected a single token but found %q", strings.TrimSpace(value)))
	default:
		t.tok = toks[0].text
	}
	return t
}
