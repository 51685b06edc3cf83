package header

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/zostay/go-mailhdr/header/field"
	"github.com/zostay/go-mailhdr/header/registry"
)

const (
	// DefaultChunkSize is how much ParseMessage reads at a time while looking
	// for the end of the header.
	DefaultChunkSize = 16_384

	// DefaultMaxHeaderLength is the longest header ParseMessage accepts before
	// failing with ErrLargeHeader.
	DefaultMaxHeaderLength = bufio.MaxScanTokenSize
)

// ErrLargeHeader is returned by ParseMessage when no end of header is found
// within the maximum header length.
var ErrLargeHeader = errors.New("the header exceeds the maximum parse length")

// splits are the blank lines that can end a header, most likely first.
var splits = [][]byte{
	[]byte("\x0d\x0a\x0d\x0a"),
	[]byte("\x0a\x0d\x0a\x0d"),
	[]byte("\x0a\x0a"),
	[]byte("\x0d\x0d"),
}

type parser struct {
	reg          *registry.Registry
	maxHeaderLen int
	chunkSize    int
}

// tooLong reports whether a header of n bytes is over the limit.
func (pr *parser) tooLong(n int) bool {
	return pr.maxHeaderLen > 0 && n > pr.maxHeaderLen
}

// ParseOption changes how ParseMessage works.
type ParseOption func(pr *parser)

// WithRegistry sets the registry used by the returned Header.
func WithRegistry(reg *registry.Registry) ParseOption {
	return func(pr *parser) { pr.reg = reg }
}

// WithMaxHeaderLength sets the longest header, in bytes and not counting the
// blank line that ends it, that ParseMessage accepts. A value of 0 or less
// means no limit.
func WithMaxHeaderLength(n int) ParseOption {
	return func(pr *parser) { pr.maxHeaderLen = n }
}

// WithChunkSize sets the size of each read from the input.
func WithChunkSize(n int) ParseOption {
	return func(pr *parser) {
		if n > 0 {
			pr.chunkSize = n
		}
	}
}

// Parse parses m, which must hold only the header, into a Header using the
// given line break. Fields are kept byte for byte so the header renders back
// exactly as it was read. With a nil reg, the Header makes its own
// registry.New() when first needed.
//
// If the input starts with lines that are not fields, they are skipped and a
// *field.BadStartError is returned along with the Header.
func Parse(m []byte, lb Break, reg *registry.Registry) (*Header, error) {
	lines, err := field.ParseLines(m, lb.Bytes())

	var badStartErr *field.BadStartError
	var finalErr error
	if errors.As(err, &badStartErr) {
		finalErr = badStartErr
	} else if err != nil {
		return nil, err
	}

	fields := make([]*field.Field, len(lines))
	for i, line := range lines {
		fields[i] = field.Parse(line, lb.Bytes())
	}

	h := &Header{
		Base: Base{
			lbr:    lb,
			fields: fields,
		},
		reg: reg,
	}

	return h, finalErr
}

// searchForSplit returns the position just past the first blank line in buf
// and the line break it uses, or -1.
func searchForSplit(buf []byte) (pos int, lb []byte) {
	first := -1
	for _, s := range splits {
		ix := bytes.Index(buf, s)
		if ix > -1 && (first < 0 || ix < first) {
			first = ix
			pos, lb = ix+len(s), s[:len(s)/2]
		}
	}
	if first < 0 {
		return -1, nil
	}
	return pos, lb
}

// guessBreak picks the line break for a header with no blank line after it.
func guessBreak(buf []byte) Break {
	for _, s := range splits {
		if lb := s[:len(s)/2]; bytes.Contains(buf, lb) {
			return Break(lb)
		}
	}
	return LF
}

// ParseMessage reads a message header from r, returning it along with a reader
// positioned at the start of the body. The line break is detected from the
// blank line that ends the header. When there is no blank line, the entire
// input is treated as header and the body is empty.
//
// Any *field.BadStartError from Parse is returned with the Header and body.
func ParseMessage(r io.Reader, opts ...ParseOption) (*Header, io.Reader, error) {
	pr := &parser{
		maxHeaderLen: DefaultMaxHeaderLength,
		chunkSize:    DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(pr)
	}

	p := make([]byte, pr.chunkSize)
	buf := &bytes.Buffer{}
	searched := 0
	for {
		n, err := r.Read(p)
		isEOF := errors.Is(err, io.EOF)
		if err != nil && !isEOF {
			return nil, nil, err
		}

		buf.Write(p[:n])

		if pos, lb := searchForSplit(buf.Bytes()[searched:]); pos >= 0 {
			pos += searched
			data := buf.Bytes()
			hdr := data[:pos-len(lb)]
			if pr.tooLong(len(hdr)) {
				return nil, nil, ErrLargeHeader
			}
			body := io.MultiReader(bytes.NewReader(data[pos:]), r)

			h, err := Parse(hdr, Break(lb), pr.reg)
			if h == nil {
				return nil, nil, err
			}
			return h, body, err
		}

		if isEOF {
			break
		}

		// no end in sight and already too long; the last 3 bytes may still
		// start the blank line
		if pr.tooLong(buf.Len() - 3) {
			return nil, nil, ErrLargeHeader
		}

		// the split may straddle two reads
		searched = buf.Len() - 3
		if searched < 0 {
			searched = 0
		}
	}

	data := buf.Bytes()
	if pr.tooLong(len(data)) {
		return nil, nil, ErrLargeHeader
	}

	h, err := Parse(data, guessBreak(data), pr.reg)
	if h == nil {
		return nil, nil, err
	}
	return h, bytes.NewReader(nil), err
}
