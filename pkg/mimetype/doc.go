// Package mimetype maps template names to response MIME types using a fixed
// extension table. The table is intentionally closed: results never depend on
// the host's mime.types files, so the same template name always produces the
// same Content-Type on every machine.
package mimetype
