package grammar

import "fmt"

// DefectKind classifies a Defect.
type DefectKind int

// These are the kinds of defects the parsers record.
const (
	InvalidHeaderDefect DefectKind = iota + 1
	MissingValueDefect
	NonPrintableDefect
	UndecodableBytesDefect
	UndecodableWordDefect
	ObsoleteHeaderDefect
	InvalidDateDefect
	InvalidMessageIDDefect
)

var defectKindNames = map[DefectKind]string{
	InvalidHeaderDefect:    "invalid header",
	MissingValueDefect:     "missing required value",
	NonPrintableDefect:     "non-printable",
	UndecodableBytesDefect: "undecodable bytes",
	UndecodableWordDefect:  "undecodable encoded word",
	ObsoleteHeaderDefect:   "obsolete syntax",
	InvalidDateDefect:      "invalid date",
	InvalidMessageIDDefect: "invalid msg-id",
}

// String returns a short description of the kind.
func (k DefectKind) String() string {
	if s, ok := defectKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("defect(%d)", int(k))
}

// Defect records a single non-fatal violation of a header grammar.
type Defect struct {
	Kind    DefectKind
	Message string
}

// String returns the kind and message together.
func (d Defect) String() string {
	return d.Kind.String() + ": " + d.Message
}

// newDefect is a helper for building a Defect with a formatted message.
func newDefect(k DefectKind, format string, args ...any) Defect {
	return Defect{Kind: k, Message: fmt.Sprintf(format, args...)}
}
