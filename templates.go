package orderform

import (
	"io/fs"

	"github.com/goliatone/go-orderform/pkg/web"
)

// EmbeddedTemplates exposes the built-in form page templates so callers can
// reuse or extend them without importing the web package directly.
func EmbeddedTemplates() fs.FS {
	return web.TemplatesFS()
}
