// Package render turns template renders into HTTP payloads.
//
// RenderBody executes a named template through a template.TemplateRenderer and
// wraps the output in a response.Body whose MIME type is inferred from the
// template name's extension ("page.html" becomes text/html, unknown or missing
// extensions stay text/plain). RenderResponse does the same and wraps the body
// in a 200 response. Renderer errors are returned exactly as the renderer
// produced them.
//
// NewContext and KV build the variable map handed to the renderer:
//
//	res, err := render.RenderResponse(engine, "hello.html",
//		render.NewContext(render.KV("name", name)))
package render
