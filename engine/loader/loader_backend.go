package loader

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-solar/engine/model"
)

// loaderBackend loads one model file format.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load imports the model at name inside fsys.
	//
	// Parameters:
	//   - fsys: the asset filesystem
	//   - name: the slash-separated model path
	//
	// Returns:
	//   - model.Model: the imported model
	//   - error: error if loading fails
	Load(fsys fs.FS, name string) (model.Model, error)

	// Extensions lists the lower-case file extensions the backend accepts.
	Extensions() []string
}
