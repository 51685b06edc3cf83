package grammar

// Node is a parse tree produced by one of the parsers. String returns the
// decoded rendering of the tree. Defects returns the defects recorded on this
// node only. Use AllDefects to collect the defects of a whole tree.
type Node interface {
	String() string
	Defects() []Defect
	Children() []Node
}

// node carries the defects common to every Node implementation.
type node struct {
	defects []Defect
}

// Defects returns a copy of the defects recorded on the node.
func (n *node) Defects() []Defect {
	if len(n.defects) == 0 {
		return nil
	}
	ds := make([]Defect, len(n.defects))
	copy(ds, n.defects)
	return ds
}

// Children returns nil. Nodes with children override it.
func (n *node) Children() []Node {
	return nil
}

func (n *node) addDefect(d ...Defect) {
	n.defects = append(n.defects, d...)
}

// AllDefects collects the defects of n and all of its children, depth-first,
// the node's own defects before those of its children.
func AllDefects(n Node) []Defect {
	if n == nil {
		return nil
	}

	ds := n.Defects()
	for _, c := range n.Children() {
		ds = append(ds, AllDefects(c)...)
	}
	return ds
}
