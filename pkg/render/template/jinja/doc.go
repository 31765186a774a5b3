// Package jinja implements template.TemplateRenderer on top of gonja, a
// Jinja2 engine.
//
// Templates are loaded from a base directory or an fs.FS by slash-separated
// names relative to the template root. Output is HTML-escaped only for names
// ending in one of the autoescape suffixes (.html, .htm and .xml by default).
// Printing or evaluating a name that is not in the render context, the global
// data or a template binding fails the render; the conditions of if/elif
// tags are the exception and treat undefined names as false.
package jinja
