package scanner_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mailhdr/internal/scanner"
)

// skipSpaces returns words, consuming runs of spaces without a token.
func skipSpaces(data []byte, atEOF bool) (int, []byte, error) {
	if len(data) == 0 {
		return 0, nil, nil
	}

	if data[0] == ' ' {
		n := len(data) - len(bytes.TrimLeft(data, " "))
		return n, nil, nil
	}

	if ix := bytes.IndexByte(data, ' '); ix >= 0 {
		return ix, data[:ix], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}

func TestMakeSplitFuncExitByAdvance(t *testing.T) {
	t.Parallel()

	sc := bufio.NewScanner(strings.NewReader("  one   two three  "))
	sc.Split(scanner.MakeSplitFuncExitByAdvance(skipSpaces))

	var words []string
	for sc.Scan() {
		words = append(words, sc.Text())
	}

	assert.NoError(t, sc.Err())
	assert.Equal(t, []string{"one", "two", "three"}, words)
}
