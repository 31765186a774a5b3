package jinja

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// fsLoader resolves template names against an ordered list of file systems.
// The first file system holding a name wins.
type fsLoader struct {
	sources []fs.FS
}

// Get implements loaders.Loader.
func (l *fsLoader) Get(name string) (io.Reader, error) {
	data, err := l.read(name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Path implements loaders.Loader. Names are already root relative.
func (l *fsLoader) Path(name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return clean, nil
}

func (l *fsLoader) read(name string) ([]byte, error) {
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	lastErr := fs.ErrNotExist
	for _, fsys := range l.sources {
		data, err := fs.ReadFile(fsys, clean)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("template %q: %w", name, lastErr)
}

func cleanName(name string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(name)), "/")
	if clean == "" || clean == "." {
		return "", errors.New("empty template name")
	}
	return clean, nil
}
