package header

import (
	"bytes"
	"errors"
	"strings"

	"github.com/zostay/go-mailhdr/header/field"
)

// Break is the line break used between header fields.
type Break string

// The line breaks found in the wild. When creating a header from scratch, CRLF
// is the one to pick.
const (
	CRLF Break = "\x0d\x0a" // \r\n
	LF   Break = "\x0a"     // \n
	CR   Break = "\x0d"     // \r
	LFCR Break = "\x0a\x0d" // \n\r
)

func (b Break) String() string { return string(b) }
func (b Break) Bytes() []byte  { return []byte(b) }

// ErrIndexOutOfRange is returned when a field index is past either end of the
// header.
var ErrIndexOutOfRange = errors.New("header field index is out of range")

// Base is the ordered list of fields in a header. The zero value is an empty
// header using LF breaks.
type Base struct {
	lbr    Break
	fields []*field.Field
}

// Break returns the line break used to render the header.
func (h *Base) Break() Break {
	if h.lbr == "" {
		return LF
	}
	return h.lbr
}

// SetBreak changes the line break used to render the header.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// Len returns the number of fields.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetField returns the nth field or nil.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// GetFieldNamed returns the nth (0-indexed) field with the given name, or nil.
// Names are matched case-insensitively.
func (h *Base) GetFieldNamed(name string, n int) *field.Field {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			if n == 0 {
				return f
			}
			n--
		}
	}
	return nil
}

// GetAllFieldsNamed returns every field with the given name in header order.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	var fs []*field.Field
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// GetIndexesNamed returns the indexes of the fields with the given name.
func (h *Base) GetIndexesNamed(name string) []int {
	var is []int
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// ListFields returns a copy of the field list.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// InsertBeforeField inserts a new field at index n. An index out of range is
// clamped, so n >= Len appends.
func (h *Base) InsertBeforeField(n int, name, body string) {
	if n < 0 {
		n = 0
	}
	if n > len(h.fields) {
		n = len(h.fields)
	}

	h.fields = append(h.fields, nil)
	copy(h.fields[n+1:], h.fields[n:])
	h.fields[n] = field.New(name, body)
}

// DeleteField removes the nth field.
func (h *Base) DeleteField(n int) error {
	if n < 0 || n >= len(h.fields) {
		return ErrIndexOutOfRange
	}

	copy(h.fields[n:], h.fields[n+1:])
	h.fields[len(h.fields)-1] = nil
	h.fields = h.fields[:len(h.fields)-1]
	return nil
}

// ClearFields removes every field.
func (h *Base) ClearFields() {
	h.fields = h.fields[:0]
}

// Clone returns a copy of the header. Fields are immutable and are shared.
func (h *Base) Clone() *Base {
	return &Base{
		lbr:    h.lbr,
		fields: h.ListFields(),
	}
}

// Bytes renders the header, including the blank line that ends it. Parsed
// fields are written exactly as they were read.
func (h *Base) Bytes() []byte {
	lbr := h.Break().Bytes()

	var buf bytes.Buffer
	for _, f := range h.fields {
		buf.Write(f.Bytes())
		buf.Write(lbr)
	}
	buf.Write(lbr)
	return buf.Bytes()
}

func (h *Base) String() string {
	return string(h.Bytes())
}
