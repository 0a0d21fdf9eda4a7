package cardform

import (
	"io/fs"

	"github.com/goliatone/go-cardform/pkg/renderers/vanilla"
)

// AssetsFS exposes the preview stylesheet and network logos so Go
// applications can serve them directly.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(cardform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// EmbeddedTemplates exposes the built-in preview templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
