// Package header holds a parsed message header: an ordered list of fields kept
// exactly as read, plus accessors that hand each field body to a
// registry.Registry and return the structured result.
//
// Low-level access goes through the field.Field objects managed by Base. The
// high-level getters on Header cache the registry.Instance built for each
// field, so a field is only parsed once.
package header
