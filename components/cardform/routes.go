package cardform

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

// MountPath returns the normalized mount prefix for basePath.
func MountPath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}

// RegisterRoutes mounts the component handler under basePath on mux and
// returns the registered pattern.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("cardform: missing mux")
	}
	if c == nil {
		return "", fmt.Errorf("cardform: missing component")
	}
	prefix := MountPath(basePath)
	pattern := prefix + "/"
	handler := c.Handler()
	if prefix != "" {
		handler = http.StripPrefix(prefix, handler)
	}
	mux.Handle(pattern, handler)
	return pattern, nil
}
