package loader

import (
	"bytes"
	"fmt"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/model"
)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	parser gltfParser
	images map[int]*common.TextureStagingData
}

// gltfMaterialExtractor converts glTF materials into base-color model.Materials.
type gltfMaterialExtractor interface {
	// ExtractMaterial extracts a single material, decoding its base color image.
	// Index -1 yields the glTF default material (opaque white).
	//
	// Parameters:
	//   - materialIndex: the index of the material in the document, or -1
	//
	// Returns:
	//   - model.Material: the extracted material
	//   - error: error if the index is invalid or the image cannot be decoded
	ExtractMaterial(materialIndex int) (model.Material, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a material extractor for a parsed document.
// Images shared by several materials are decoded once.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfMaterialExtractor: the material extractor
func newGLTFMaterialExtractor(parser gltfParser) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{
		parser: parser,
		images: make(map[int]*common.TextureStagingData),
	}
}

func (e *gltfMaterialExtractorImpl) ExtractMaterial(materialIndex int) (model.Material, error) {
	result := model.Material{Color: [4]float32{1, 1, 1, 1}}
	if materialIndex < 0 {
		return result, nil
	}
	doc := e.parser.Document()
	if materialIndex >= len(doc.Materials) {
		return model.Material{}, fmt.Errorf("material index %d out of range", materialIndex)
	}

	mat := &doc.Materials[materialIndex]
	pbr := mat.PbrMetallicRoughness
	if pbr == nil {
		return result, nil
	}
	if pbr.BaseColorFactor != nil {
		result.Color = *pbr.BaseColorFactor
	}
	if pbr.BaseColorTexture != nil {
		tex, err := e.loadTexture(pbr.BaseColorTexture.Index)
		if err != nil {
			return model.Material{}, fmt.Errorf("material %q: base color texture: %w", mat.Name, err)
		}
		result.BaseColor = tex
	}
	return result, nil
}

// loadTexture decodes the image behind a texture index, caching by image index.
func (e *gltfMaterialExtractorImpl) loadTexture(textureIndex int) (*common.TextureStagingData, error) {
	doc := e.parser.Document()
	if textureIndex < 0 || textureIndex >= len(doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", textureIndex)
	}
	src := doc.Textures[textureIndex].Source
	if src == nil {
		return nil, nil
	}
	if tex, ok := e.images[*src]; ok {
		return tex, nil
	}

	data, err := e.parser.ReadImage(*src)
	if err != nil {
		return nil, err
	}
	decoded, err := common.DecodeImage(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", *src, err)
	}
	e.images[*src] = &decoded
	return &decoded, nil
}
