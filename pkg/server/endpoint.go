package server

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-tplhttp/pkg/response"
)

// Endpoint handles a request by returning a response or an error.
type Endpoint func(r *http.Request) (*response.Response, error)

// ServeHTTP runs the endpoint and writes its outcome.
func (e Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFrom(r.Context())

	var writer http.ResponseWriter = w
	if r.Method == http.MethodHead {
		writer = headWriter{ResponseWriter: w}
	}

	res, err := e(r)
	if err != nil {
		code := StatusCode(err)
		if code >= http.StatusInternalServerError {
			logger.Error("endpoint failed", "path", r.URL.Path, "status", code, "error", err)
		} else {
			logger.Debug("endpoint rejected request", "path", r.URL.Path, "status", code, "error", err)
		}
		writeStatus(writer, code)
		return
	}
	if res == nil {
		writer.WriteHeader(http.StatusNoContent)
		return
	}

	if err := res.WriteTo(writer); err != nil {
		logger.Warn("write response", "path", r.URL.Path, "error", err)
	}
}

// Param returns the trimmed path value bound to name by a ServeMux pattern
// such as "/{name}". Missing values yield a 400 StatusError.
func Param(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.PathValue(name))
	if value == "" {
		return "", StatusError{Code: http.StatusBadRequest}
	}
	return value, nil
}

func writeStatus(w http.ResponseWriter, code int) {
	http.Error(w, http.StatusText(code), code)
}

// headWriter drops body bytes so HEAD responses keep their headers only.
type headWriter struct {
	http.ResponseWriter
}

func (w headWriter) Write(p []byte) (int, error) {
	return len(p), nil
}
