package field

import (
	"mime"
	"strings"
)

// Encode transforms a single header field body by looking for any characters
// allowed for header encoding and turning them into encode body values using
// word encoder. It will always output b-type (Base-64) encoding using UTF-8 as
// the character set.
func Encode(body string) string {
	return mime.BEncoding.Encode("utf-8", body)
}

// Decode transforms a single header field body and looks for MIME word encoded
// field values. When they are found, these are decoded into native unicode
// using CharsetDecoder.
func Decode(body string) (string, error) {
	if !strings.Contains(body, "=?") {
		return body, nil
	}

	dec := &mime.WordDecoder{
		CharsetReader: CharsetDecoderToCharsetReader(CharsetDecoder),
	}
	return dec.DecodeHeader(body)
}

// DecodeWord decodes exactly one encoded word, such as
// "=?utf-8?q?caf=C3=A9?=". It fails if the input is not a single well-formed
// encoded word or its charset cannot be decoded.
func DecodeWord(word string) (string, error) {
	dec := &mime.WordDecoder{
		CharsetReader: CharsetDecoderToCharsetReader(CharsetDecoder),
	}
	return dec.Decode(word)
}
