// Package param provides a tool for dealing with parameterized header field
// values, such as those of the Content-type and Content-disposition fields. In
// addition, it provides helpers for breaking down MIME types.
package param
