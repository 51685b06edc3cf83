package field

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// CharsetDecoderFunc turns bytes in the named charset into a UTF-8 string.
type CharsetDecoderFunc func(charset string, b []byte) (string, error)

// CharsetEncoderFunc turns a UTF-8 string into bytes in the named charset.
type CharsetEncoderFunc func(charset, s string) ([]byte, error)

var (
	// CharsetDecoder is used to decode the charsets named in encoded words. It
	// only understands UTF-8 and US-ASCII unless the header/encoding package is
	// imported, which replaces it.
	CharsetDecoder CharsetDecoderFunc = DefaultCharsetDecoder

	// CharsetEncoder is the encoding counterpart of CharsetDecoder.
	CharsetEncoder CharsetEncoderFunc = DefaultCharsetEncoder
)

func isUTF8(charset string) bool {
	return strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8")
}

func isASCII(charset string) bool {
	return charset == "" || strings.EqualFold(charset, "us-ascii") || strings.EqualFold(charset, "ascii")
}

// DefaultCharsetDecoder decodes UTF-8 and US-ASCII. Bytes outside of ASCII are
// replaced with utf8.RuneError when decoding ASCII.
func DefaultCharsetDecoder(charset string, b []byte) (string, error) {
	switch {
	case isUTF8(charset):
		return string(b), nil
	case isASCII(charset):
		var buf strings.Builder
		for _, c := range b {
			if c > 127 {
				buf.WriteRune(utf8.RuneError)
				continue
			}
			buf.WriteByte(c)
		}
		return buf.String(), nil
	}
	return "", fmt.Errorf("unsupported byte encoding %q", charset)
}

// DefaultCharsetEncoder encodes UTF-8 and US-ASCII. Runes outside of ASCII are
// replaced with the ASCII substitute character when encoding ASCII.
func DefaultCharsetEncoder(charset, s string) ([]byte, error) {
	switch {
	case isUTF8(charset):
		return []byte(s), nil
	case isASCII(charset):
		buf := make([]byte, 0, len(s))
		for _, c := range s {
			if c > 127 {
				buf = append(buf, '\x1a')
				continue
			}
			buf = append(buf, byte(c))
		}
		return buf, nil
	}
	return nil, fmt.Errorf("unsupported byte encoding %q", charset)
}

// CharsetDecoderToCharsetReader adapts a CharsetDecoderFunc to the
// CharsetReader hook of mime.WordDecoder.
func CharsetDecoderToCharsetReader(decoder CharsetDecoderFunc) func(string, io.Reader) (io.Reader, error) {
	return func(charset string, input io.Reader) (io.Reader, error) {
		b, err := io.ReadAll(input)
		if err != nil {
			return nil, err
		}

		s, err := decoder(charset, b)
		if err != nil {
			return nil, err
		}

		return bytes.NewReader([]byte(s)), nil
	}
}
