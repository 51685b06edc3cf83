// Package encoding replaces the charset hooks of the field package with
// codecs for every charset known to golang.org/x/text/encoding/ianaindex.
//
// Importing it makes binaries considerably larger. In exchange, encoded words
// in pretty much any charset seen in the wild can be decoded, which keeps
// undecodable-word defects for things like iso-2022-jp or koi8-r subjects to
// a minimum.
package encoding

import (
	"fmt"

	"golang.org/x/text/encoding"
	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/go-mailhdr/header/field"
)

func init() {
	field.CharsetEncoder = CharsetEncoder
	field.CharsetDecoder = CharsetDecoder
}

// lookup finds the codec for a MIME charset name. Names the index knows about
// but has no codec for are an error too.
func lookup(charset string) (encoding.Encoding, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("no codec available for charset %q", charset)
	}
	return e, nil
}

// CharsetEncoder encodes s into any charset in the IANA index.
func CharsetEncoder(charset, s string) ([]byte, error) {
	e, err := lookup(charset)
	if err != nil {
		return nil, err
	}
	return e.NewEncoder().Bytes([]byte(s))
}

// CharsetDecoder decodes b from any charset in the IANA index.
func CharsetDecoder(charset string, b []byte) (string, error) {
	e, err := lookup(charset)
	if err != nil {
		return "", err
	}

	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
