package registry

import (
	"sort"

	"github.com/zostay/go-mailhdr/header/grammar"
)

// Result is the outcome of parsing a field body with a Kind.
type Result struct {
	// Tree is the parse tree.
	Tree grammar.Node

	// Decoded is the string rendering of Tree.
	Decoded string

	// Defects holds all the defects recorded anywhere in Tree.
	Defects []grammar.Defect
}

// newResult builds a Result from a tree.
func newResult(tree grammar.Node) Result {
	return Result{
		Tree:    tree,
		Decoded: tree.String(),
		Defects: grammar.AllDefects(tree),
	}
}

// Kind knows how to parse the body of a particular kind of header field.
type Kind interface {
	// Name identifies the kind, e.g., "unstructured" or "message-id".
	Name() string

	// MaxCount is the number of times a field of this kind may appear in a
	// header. Zero means there is no limit.
	MaxCount() int

	// Parse parses the field body. Grammar violations are recorded as
	// defects in the Result. An error means the value could not be parsed at
	// all.
	Parse(value string) (Result, error)
}

// kind is a Kind built from a grammar parse function.
type kind struct {
	name     string
	maxCount int
	parse    func(string) (grammar.Node, error)
}

func (k *kind) Name() string  { return k.name }
func (k *kind) MaxCount() int { return k.maxCount }

// Parse runs the grammar.
func (k *kind) Parse(value string) (Result, error) {
	tree, err := k.parse(value)
	if err != nil {
		return Result{}, err
	}
	return newResult(tree), nil
}

// total adapts a parser that cannot fail.
func total[N grammar.Node](parse func(string) N) func(string) (grammar.Node, error) {
	return func(value string) (grammar.Node, error) {
		return parse(value), nil
	}
}

// NewKind returns a Kind with the given name and MaxCount backed by parse.
func NewKind(name string, maxCount int, parse func(string) (grammar.Node, error)) Kind {
	return &kind{name, maxCount, parse}
}

// These are the built-in kinds.
var (
	Unstructured            = NewKind("unstructured", 0, total(grammar.ParseUnstructured))
	UniqueUnstructured      = NewKind("unique-unstructured", 1, total(grammar.ParseUnstructured))
	Date                    = NewKind("date", 0, total(grammar.ParseDateTime))
	UniqueDate              = NewKind("unique-date", 1, total(grammar.ParseDateTime))
	Address                 = NewKind("address", 0, total(grammar.ParseAddressList))
	UniqueAddress           = NewKind("unique-address", 1, total(grammar.ParseAddressList))
	SingleAddress           = NewKind("single-address", 0, total(grammar.ParseSingleAddress))
	UniqueSingleAddress     = NewKind("unique-single-address", 1, total(grammar.ParseSingleAddress))
	MIMEVersion             = NewKind("mime-version", 1, total(grammar.ParseMIMEVersion))
	ContentType             = NewKind("content-type", 1, total(grammar.ParseParamValue))
	ContentDisposition      = NewKind("content-disposition", 1, total(grammar.ParseParamValue))
	ContentTransferEncoding = NewKind("content-transfer-encoding", 1, total(grammar.ParseToken))

	// MessageID is the plain msg-id grammar. A grammar.StructuralError is
	// returned from Parse like any other error.
	MessageID = NewKind("message-id", 1, grammar.ParseMessageID)

	// ResilientMessageID recovers from grammar.StructuralError.
	ResilientMessageID = NewResilientMessageID(grammar.ParseMessageID)
)

var builtinKinds = map[string]Kind{}

func init() {
	for _, k := range []Kind{
		Unstructured, UniqueUnstructured,
		Date, UniqueDate,
		Address, UniqueAddress, SingleAddress, UniqueSingleAddress,
		MIMEVersion, ContentType, ContentDisposition, ContentTransferEncoding,
		MessageID, ResilientMessageID,
	} {
		builtinKinds[k.Name()] = k
	}
}

// KindByName returns the built-in Kind with the given name.
func KindByName(name string) (Kind, bool) {
	k, ok := builtinKinds[name]
	return k, ok
}

// KindNames returns the names of the built-in kinds, sorted.
func KindNames() []string {
	ns := make([]string, 0, len(builtinKinds))
	for n := range builtinKinds {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}
