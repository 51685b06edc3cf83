// Package grammar provides the header field grammars. Each parser turns a raw
// header field body into a parse tree, a Node, and records every violation of
// the grammar it tolerates as a Defect on the tree rather than failing.
//
// Parsers here are total with one documented exception. ParseMessageID returns
// a *StructuralError when the token stream runs out while the msg-id is still
// open, which is a shape the MessageID tree cannot hold. Everything else it
// cannot make sense of becomes an *InvalidMessageID with a defect.
//
// The registry package builds on these parsers to construct header field
// instances.
package grammar
