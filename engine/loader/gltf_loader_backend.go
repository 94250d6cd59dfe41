package loader

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-solar/engine/model"
)

// gltfLoaderBackendImpl is a loaderBackend for glTF/GLB files.
// It delegates to the gltfImporter for parsing and extraction.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

var _ loaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(),
	}
}

func (b *gltfLoaderBackendImpl) Load(fsys fs.FS, name string) (model.Model, error) {
	return b.importer.Import(fsys, name)
}

func (b *gltfLoaderBackendImpl) Extensions() []string {
	return []string{".gltf", ".glb"}
}
