// Package response provides the in-memory Body and Response values produced by
// template renders. A Body is created from a string and carries one mutable
// attribute, its MIME type. A Response pairs a status code with an optional
// Body and can be written to any http.ResponseWriter.
package response
