// Package server hosts template-rendering endpoints on net/http.
//
// An Endpoint is a request callback that returns a rendered
// *response.Response or an error. Errors become status-text responses: the
// status comes from an HTTPError in the error chain and defaults to 500, and
// the error itself is only logged. RequestLogger tags every request with an
// X-Request-ID and a request-scoped logger, and Server runs the handler with a
// graceful shutdown bound to a context.
package server
