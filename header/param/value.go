package param

import (
	"mime"
	"sort"
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in the
	// Content-type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in the
	// Content-disposition header.
	Filename = "filename"
)

// Value represents a parsed parameterized header field. A Value is immutable.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body, parses it as a Value and returns it. The
// primary value is lower-cased as is done by mime.ParseMediaType.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, err
	}

	return &Value{mt, ps}, nil
}

// New creates a new parameterized value with the given parameters. The map is
// copied.
func New(v string, ps map[string]string) *Value {
	pv := &Value{v: v, ps: make(map[string]string, len(ps))}
	for k, p := range ps {
		pv.ps[strings.ToLower(k)] = p
	}
	return pv
}

// Value returns the primary value, the part before the first semi-colon.
func (pv *Value) Value() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-type value, e.g.,
// "text/html", "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Disposition is a synonym for Value() and returns the Content-disposition,
// usually "inline" or "attachment".
func (pv *Value) Disposition() string {
	return pv.v
}

// Type returns the part of MediaType() before the slash or an empty string if
// there is no slash.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the part of MediaType() after the slash or an empty string if
// there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns a copy of the parameters.
func (pv *Value) Parameters() map[string]string {
	ps := make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		ps[k] = v
	}
	return ps
}

// Parameter returns the value of the named parameter.
func (pv *Value) Parameter(k string) string {
	return pv.ps[strings.ToLower(k)]
}

// Charset returns the value of the "charset" parameter.
func (pv *Value) Charset() string {
	return pv.ps[Charset]
}

// Boundary returns the value of the "boundary" parameter.
func (pv *Value) Boundary() string {
	return pv.ps[Boundary]
}

// Filename returns the value of the "filename" parameter.
func (pv *Value) Filename() string {
	return pv.ps[Filename]
}

// String returns the serialized value including the primary value and all
// parameters, quoting parameter values where required.
func (pv *Value) String() string {
	if s := mime.FormatMediaType(pv.v, pv.ps); s != "" {
		return s
	}

	// FormatMediaType refuses values that are not tokens, so fall back to a
	// plain join
	pks := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		pks = append(pks, k)
	}
	sort.Strings(pks)

	parts := make([]string, 0, len(pv.ps)+1)
	parts = append(parts, pv.v)
	for _, k := range pks {
		parts = append(parts, k+"="+pv.ps[k])
	}

	return strings.Join(parts, "; ")
}
