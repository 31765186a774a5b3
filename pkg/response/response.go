package response

import (
	"fmt"
	"net/http"
	"strconv"
)

// Response is a status code, headers and an optional Body.
type Response struct {
	status int
	header http.Header
	body   *Body
}

// New builds an empty Response with the given status. Like
// http.ResponseWriter.WriteHeader it panics when status is outside 100-999.
func New(status int) *Response {
	if status < 100 || status > 999 {
		panic(fmt.Sprintf("response: invalid status code %d", status))
	}
	return &Response{
		status: status,
		header: make(http.Header),
	}
}

// Status returns the response status code.
func (r *Response) Status() int {
	return r.status
}

// Header exposes the headers written alongside the body.
func (r *Response) Header() http.Header {
	return r.header
}

// SetBody attaches body to the response, replacing any previous one.
func (r *Response) SetBody(body *Body) {
	r.body = body
}

// Body returns the attached body, or nil.
func (r *Response) Body() *Body {
	return r.body
}

// ContentType returns the Content-Type the response will be written with: an
// explicit header wins, otherwise the body's MIME type. It is empty when
// neither is set.
func (r *Response) ContentType() string {
	if ct := r.header.Get("Content-Type"); ct != "" {
		return ct
	}
	if r.body == nil {
		return ""
	}
	return r.body.Mime()
}

// WriteTo copies headers, status and body bytes into w.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	if w == nil {
		return fmt.Errorf("response: nil writer")
	}

	dst := w.Header()
	for key, values := range r.header {
		dst[key] = append([]string(nil), values...)
	}
	if r.body == nil {
		w.WriteHeader(r.status)
		return nil
	}

	if dst.Get("Content-Type") == "" {
		dst.Set("Content-Type", r.body.Mime())
	}
	dst.Set("Content-Length", strconv.Itoa(r.body.Len()))
	w.WriteHeader(r.status)

	if _, err := w.Write(r.body.data); err != nil {
		return fmt.Errorf("response: write body: %w", err)
	}
	return nil
}
