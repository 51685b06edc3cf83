// Package scanner holds helpers for bufio.Scanner.
package scanner

import (
	"bufio"
)

// MakeSplitFuncExitByAdvance wraps a bufio.SplitFunc so that it may consume
// input without producing a token and still be called again, even at EOF.
//
// A plain bufio.SplitFunc that returns a nil token at EOF stops the scan, so a
// split function that wants to skip over something (whitespace, say) has to
// run its own inner loop until it finds a token worth returning. The wrapper
// provides that loop instead. It keeps calling split on the remaining data
// until one of these is true:
//
//   - a token is returned
//   - split asks for more data by advancing 0
//   - all the data has been consumed
//   - split returns an error
//
// The advances of every call are summed so the outer scanner moves by the
// right amount.
func MakeSplitFuncExitByAdvance(split bufio.SplitFunc) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		totalAdvance := 0
		for {
			advance, token, err := split(data, atEOF)

			// len(data)-advance <= 0 rather than == 0 so a split func that
			// over-advances is reported by bufio.Scanner instead of hidden
			if token != nil || advance == 0 || len(data)-advance <= 0 || err != nil {
				return totalAdvance + advance, token, err
			}

			data = data[advance:]
			totalAdvance += advance
		}
	}
}
