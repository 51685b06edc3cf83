package registry

import (
	"errors"
	"fmt"

	"github.com/zostay/go-mailhdr/header/grammar"
)

// MessageIDParser parses a Message-ID field body. grammar.ParseMessageID is
// the usual one.
type MessageIDParser func(value string) (grammar.Node, error)

// resilientMessageID is the Kind returned by NewResilientMessageID.
type resilientMessageID struct {
	parse MessageIDParser
}

// NewResilientMessageID returns a Kind named "resilient-message-id" that
// parses with the given parser. When the parser returns a
// *grammar.StructuralError, the value is parsed as unstructured text instead,
// wrapped in a *grammar.InvalidMessageID, and an InvalidHeaderDefect naming
// the value is added. Any other error is returned as-is.
func NewResilientMessageID(parse MessageIDParser) Kind {
	return &resilientMessageID{parse}
}

func (k *resilientMessageID) Name() string  { return "resilient-message-id" }
func (k *resilientMessageID) MaxCount() int { return 1 }

// Parse parses the value as a msg-id, recovering from structural failures.
func (k *resilientMessageID) Parse(value string) (Result, error) {
	tree, err := k.parse(value)

	var serr *grammar.StructuralError
	switch {
	case errors.As(err, &serr):
		tree = grammar.NewInvalidMessageID(
			grammar.ParseUnstructured(value),
			grammar.Defect{
				Kind:    grammar.InvalidHeaderDefect,
				Message: fmt.Sprintf("structural failure for invalid msg-id in %q", value),
			},
		)
	case err != nil:
		return Result{}, err
	}

	return newResult(tree), nil
}
