package field

import (
	"fmt"
)

// Field is a single header field as found in a message header. It keeps both
// the unfolded, decoded name and body and the Raw bytes the field was parsed
// from, when it came from a parse.
type Field struct {
	name string
	body string

	// Raw holds the original bytes of the field. It is nil for fields that
	// were constructed rather than parsed.
	Raw *Raw
}

// New constructs a new field with the given name and body. The field has no
// Raw value.
func New(name, body string) *Field {
	return &Field{name: name, body: body}
}

// Name returns the name of the header field.
func (f *Field) Name() string {
	return f.name
}

// Body returns the unfolded value of the header field. This is the value
// handed to a registry for structured parsing.
func (f *Field) Body() string {
	return f.body
}

// String returns the complete header field as a string. If the field was
// parsed, the original text is returned.
func (f *Field) String() string {
	if f.Raw != nil {
		return f.Raw.String()
	}
	return fmt.Sprintf("%s: %s", f.name, f.body)
}

// Bytes returns the complete header field as a slice of bytes.
func (f *Field) Bytes() []byte {
	return []byte(f.String())
}
