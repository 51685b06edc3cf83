package registry

import (
	"github.com/zostay/go-mailhdr/header/grammar"
)

// Representation is one rendering of a header field. It is either an
// *Instance, the structured parse of the field, or an *UnstructuredView.
type Representation interface {
	Name() string
	Decoded() string
	Defects() []grammar.Defect
	Tree() grammar.Node

	representation()
}

// Instance is a header field parsed by a Registry. It is immutable.
type Instance struct {
	name         string
	kind         Kind
	result       Result
	unstructured *UnstructuredView
}

func (*Instance) representation() {}

// Name returns the field name as given to Construct.
func (i *Instance) Name() string {
	return i.name
}

// Kind returns the Kind that parsed the field.
func (i *Instance) Kind() Kind {
	return i.kind
}

// Decoded returns the decoded value of the field.
func (i *Instance) Decoded() string {
	return i.result.Decoded
}

// Tree returns the parse tree.
func (i *Instance) Tree() grammar.Node {
	return i.result.Tree
}

// Defects returns the defects of the structured parse.
func (i *Instance) Defects() []grammar.Defect {
	return copyDefects(i.result.Defects)
}

// AllDefects returns the defects of the structured parse followed by those of
// the unstructured view.
func (i *Instance) AllDefects() []grammar.Defect {
	return append(i.Defects(), i.unstructured.defects...)
}

// AsUnstructured returns the unstructured view of the field. It is never nil.
func (i *Instance) AsUnstructured() *UnstructuredView {
	return i.unstructured
}

// String returns the field name and decoded value.
func (i *Instance) String() string {
	return i.name + ": " + i.result.Decoded
}

// UnstructuredView is the field body parsed as plain unstructured text,
// whatever kind of field it is.
type UnstructuredView struct {
	name    string
	tree    *grammar.Unstructured
	defects []grammar.Defect
}

func (*UnstructuredView) representation() {}

func newUnstructuredView(name, value string) *UnstructuredView {
	u := grammar.ParseUnstructured(value)
	return &UnstructuredView{name, u, grammar.AllDefects(u)}
}

// Name returns the field name.
func (v *UnstructuredView) Name() string {
	return v.name
}

// Decoded returns the decoded text.
func (v *UnstructuredView) Decoded() string {
	return v.tree.String()
}

// Tree returns the unstructured parse tree as a grammar.Node.
func (v *UnstructuredView) Tree() grammar.Node {
	return v.tree
}

// Unstructured returns the unstructured parse tree.
func (v *UnstructuredView) Unstructured() *grammar.Unstructured {
	return v.tree
}

// Defects returns the defects of the unstructured parse.
func (v *UnstructuredView) Defects() []grammar.Defect {
	return copyDefects(v.defects)
}

func copyDefects(ds []grammar.Defect) []grammar.Defect {
	if len(ds) == 0 {
		return nil
	}
	out := make([]grammar.Defect, len(ds))
	copy(out, ds)
	return out
}
