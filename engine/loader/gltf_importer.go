package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/Carmen-Shannon/oxy-solar/engine/model"
)

var errUnsupportedExtension = errors.New("unsupported required extension")

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter combines the parser with the mesh and material extractors to
// produce a model.Model with one Part per triangle primitive.
type gltfImporter interface {
	// Import loads a glTF or GLB file from fsys.
	//
	// Parameters:
	//   - fsys: the filesystem holding the file and its external resources
	//   - name: the slash-separated path of the file
	//
	// Returns:
	//   - model.Model: the imported model
	//   - error: error if import fails
	Import(fsys fs.FS, name string) (model.Model, error)

}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(fsys fs.FS, name string) (model.Model, error) {
	parser := newGLTFParser(fsys)
	if err := parser.Parse(name); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return imp.build(parser, name)
}

func (imp *gltfImporterImpl) build(parser gltfParser, name string) (model.Model, error) {
	doc := parser.Document()
	if len(doc.ExtensionsRequired) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", name, errUnsupportedExtension, strings.Join(doc.ExtensionsRequired, ", "))
	}

	prims, err := newGLTFMeshExtractor(parser).ExtractScene()
	if err != nil {
		return nil, fmt.Errorf("mesh extraction failed: %w", err)
	}

	materials := newGLTFMaterialExtractor(parser)
	parts := make([]model.Part, 0, len(prims))
	for _, p := range prims {
		mat, err := materials.ExtractMaterial(p.MaterialIndex)
		if err != nil {
			return nil, fmt.Errorf("material extraction failed: %w", err)
		}
		parts = append(parts, model.Part{Mesh: p.Mesh, Material: mat})
	}

	return model.NewModel(
		model.WithName(gltfModelName(doc, name)),
		model.WithParts(parts...),
	), nil
}

// gltfModelName prefers the first scene's name, falling back to the file stem.
func gltfModelName(doc *gltfDocument, name string) string {
	if len(doc.Scenes) > 0 && doc.Scenes[0].Name != "" {
		return doc.Scenes[0].Name
	}
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
