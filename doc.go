// Package mailhdr parses and interprets email message header fields.
//
// The work is split across a few packages under header/:
//
//   - header/field splits a raw header into fields and unfolds them.
//   - header/grammar holds the RFC 5322 and MIME grammars. Each parser
//     returns a tree of nodes carrying the defects found while parsing.
//   - header/registry maps field names to the kind of parser used for them
//     and constructs an Instance holding the structured result alongside an
//     unstructured view of the same field.
//   - header ties these together into a Header with typed getters.
//
// Parsing is lenient. Bad values produce defects rather than errors wherever
// the grammar can recover, and the Message-ID kind used by default recovers
// even when the msg-id grammar gives up on the value entirely.
//
// The hdrinspect command in cmd/hdrinspect prints what the registry makes of
// every field in a message or mbox file.
package mailhdr
