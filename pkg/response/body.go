package response

import (
	"bytes"
	"io"

	"github.com/goliatone/go-tplhttp/pkg/mimetype"
)

// Body is a rendered payload plus its MIME type.
type Body struct {
	data []byte
	mime string
}

// NewBody builds a Body from s. The MIME type defaults to plain text.
func NewBody(s string) *Body {
	return &Body{
		data: []byte(s),
		mime: mimetype.Plain,
	}
}

// Mime returns the full MIME value, parameters included.
func (b *Body) Mime() string {
	if b == nil || b.mime == "" {
		return mimetype.Plain
	}
	return b.mime
}

// SetMime replaces the MIME type. Empty values reset it to plain text.
func (b *Body) SetMime(mime string) {
	if b == nil {
		return
	}
	if mime == "" {
		mime = mimetype.Plain
	}
	b.mime = mime
}

// MediaType returns the MIME essence without parameters ("text/html").
func (b *Body) MediaType() string {
	return mimetype.Essence(b.Mime())
}

// Len reports the payload size in bytes.
func (b *Body) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Bytes returns a copy of the payload.
func (b *Body) Bytes() []byte {
	if b == nil {
		return nil
	}
	return bytes.Clone(b.data)
}

func (b *Body) String() string {
	if b == nil {
		return ""
	}
	return string(b.data)
}

// Reader returns a fresh reader over the payload.
func (b *Body) Reader() io.Reader {
	if b == nil {
		return bytes.NewReader(nil)
	}
	return bytes.NewReader(b.data)
}
