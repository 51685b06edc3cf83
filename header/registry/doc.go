// Package registry turns header fields into structured header instances.
//
// A Registry maps header field names to a Kind, which knows the grammar for
// that field. Construct parses a raw field body with the Kind registered for
// the name, or with Unstructured when nothing is registered. Every Instance
// it returns also carries an unstructured view of the same body, parsed
// independently, so there is always a plain text rendering of the field to
// fall back on no matter how badly the structured parse went.
//
// The default registrations bind Message-ID to ResilientMessageID. It
// tolerates the values that the msg-id grammar cannot represent structurally
// (see grammar.StructuralError) by falling back to an unstructured parse and
// recording a defect. Every other parse error is returned from Construct.
//
// Registrations are safe to make concurrently with Construct, but the
// intended use is to configure a Registry once at startup and share it.
package registry
