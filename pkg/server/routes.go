package server

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath joins basePath and routePath into a single absolute path.
func MountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}

// Handle registers handler for method (optional) on basePath+routePath and
// returns the pattern it used.
func Handle(mux Mux, method, basePath, routePath string, handler http.Handler) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("server: missing mux")
	}
	if handler == nil {
		return "", fmt.Errorf("server: missing handler")
	}

	pattern := MountPath(basePath, routePath)
	if method = strings.ToUpper(strings.TrimSpace(method)); method != "" {
		pattern = method + " " + pattern
	}
	mux.Handle(pattern, handler)
	return pattern, nil
}
