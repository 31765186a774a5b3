package mimetype

import (
	"path"
	"strings"
)

// Common MIME values. Textual types carry an explicit utf-8 charset.
const (
	HTML       = "text/html; charset=utf-8"
	Plain      = "text/plain; charset=utf-8"
	CSS        = "text/css; charset=utf-8"
	JavaScript = "text/javascript; charset=utf-8"
	JSON       = "application/json"
	SVG        = "image/svg+xml"
	XML        = "application/xml"
	Markdown   = "text/markdown; charset=utf-8"
)

var byExtension = map[string]string{
	"html":  HTML,
	"htm":   HTML,
	"xhtml": "application/xhtml+xml",
	"css":   CSS,
	"js":    JavaScript,
	"mjs":   JavaScript,
	"jsonp": JavaScript,
	"json":  JSON,
	"svg":   SVG,
	"xml":   XML,
	"rss":   "application/rss+xml",
	"atom":  "application/atom+xml",
	"txt":   Plain,
	"md":    Markdown,
	"csv":   "text/csv; charset=utf-8",
	"ics":   "text/calendar; charset=utf-8",
	"ico":   "image/x-icon",
	"png":   "image/png",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"gif":   "image/gif",
	"webp":  "image/webp",
	"wasm":  "application/wasm",
	"pdf":   "application/pdf",
}

// Extension returns the filename extension of a slash-separated name: the text
// after the last "." of the final path segment. Dot-files without a second dot
// (".env") have no extension; a trailing dot yields an empty extension.
func Extension(name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." {
		return "", false
	}
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return "", false
	}
	return base[idx+1:], true
}

// FromExtension looks up ext (with or without a leading dot) in the table.
// Keys are lowercase and matching is case sensitive, so "HTML" is unknown.
func FromExtension(ext string) (string, bool) {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return "", false
	}
	mime, ok := byExtension[ext]
	return mime, ok
}

// FromName infers the MIME type of a template name from its extension.
func FromName(name string) (string, bool) {
	ext, ok := Extension(name)
	if !ok {
		return "", false
	}
	return FromExtension(ext)
}

// Essence strips parameters from a MIME value, e.g. "text/html; charset=utf-8"
// becomes "text/html".
func Essence(mime string) string {
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
