package loader

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"
)

// Errors returned by the parser.
var (
	errInvalidGLTFVersion  = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic     = errors.New("invalid GLB magic number")
	errInvalidGLBVersion   = errors.New("invalid GLB version: must be 2")
	errTruncatedGLB        = errors.New("truncated GLB data")
	errMissingJSONChunk    = errors.New("GLB file missing JSON chunk")
	errInvalidDataURI      = errors.New("invalid data URI")
	errBufferSizeMismatch  = errors.New("buffer size mismatch")
	errAccessorOutOfBounds = errors.New("accessor reads past the end of its buffer")
	errUnsupportedAccessor = errors.New("unsupported accessor layout")
)

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	fsys     fs.FS
	baseDir  string
	document *gltfDocument
	binChunk []byte
}

// gltfParser loads glTF JSON or GLB containers from an fs.FS, resolves their
// buffers and reads typed accessor data.
type gltfParser interface {
	// Parse reads and parses the file at name. GLB is detected by extension or magic.
	//
	// Parameters:
	//   - name: slash-separated path inside the parser's filesystem
	//
	// Returns:
	//   - error: error if reading or parsing fails
	Parse(name string) error

	// ParseBytes parses an in-memory document. External URIs resolve against baseDir.
	//
	// Parameters:
	//   - data: glTF JSON or GLB bytes
	//   - baseDir: directory for relative URIs
	//
	// Returns:
	//   - error: error if parsing fails
	ParseBytes(data []byte, baseDir string) error

	// Document returns the parsed document, nil before a successful parse.
	Document() *gltfDocument

	// ReadFloats reads an accessor as float32 tuples of its declared width.
	// Normalized integer components are mapped into [0,1] or [-1,1].
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - []float32: count*width values
	//   - int: the tuple width
	//   - error: error if reading fails
	ReadFloats(accessorIndex int) ([]float32, int, error)

	// ReadIndices reads a SCALAR unsigned accessor as uint32.
	ReadIndices(accessorIndex int) ([]uint32, error)

	// ReadImage returns the encoded bytes of an image from its bufferView, data URI or file.
	//
	// Parameters:
	//   - imageIndex: the index of the image
	//
	// Returns:
	//   - []byte: the encoded image
	//   - error: error if the image cannot be resolved
	ReadImage(imageIndex int) ([]byte, error)
}

var _ gltfParser = &gltfParserImpl{}

// newGLTFParser creates a parser that resolves files inside fsys.
//
// Parameters:
//   - fsys: the filesystem holding the document and its external resources
//
// Returns:
//   - gltfParser: a new parser instance
func newGLTFParser(fsys fs.FS) gltfParser {
	return &gltfParserImpl{fsys: fsys}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) Parse(name string) error {
	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return p.ParseBytes(data, path.Dir(name))
}

func (p *gltfParserImpl) ParseBytes(data []byte, baseDir string) error {
	p.baseDir = baseDir
	jsonData := data
	if len(data) >= 4 && binary.LittleEndian.Uint32(data) == glbMagic {
		var err error
		if jsonData, p.binChunk, err = splitGLB(data); err != nil {
			return err
		}
	}

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}
	if err := p.loadBuffers(&doc); err != nil {
		return fmt.Errorf("failed to load buffers: %w", err)
	}
	p.document = &doc
	return nil
}

// splitGLB walks the GLB chunk list and returns the JSON and BIN payloads.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func splitGLB(data []byte) (jsonChunk, binChunk []byte, err error) {
	if len(data) < glbHeaderSize {
		return nil, nil, errTruncatedGLB
	}
	if binary.LittleEndian.Uint32(data[0:]) != glbMagic {
		return nil, nil, errInvalidGLBMagic
	}
	if binary.LittleEndian.Uint32(data[4:]) != glbVersion {
		return nil, nil, errInvalidGLBVersion
	}
	total := int(binary.LittleEndian.Uint32(data[8:]))
	if total > len(data) {
		return nil, nil, errTruncatedGLB
	}

	for off := glbHeaderSize; off+glbChunkHeader <= total; {
		length := int(binary.LittleEndian.Uint32(data[off:]))
		kind := binary.LittleEndian.Uint32(data[off+4:])
		start := off + glbChunkHeader
		if start+length > total {
			return nil, nil, errTruncatedGLB
		}
		switch kind {
		case glbChunkJSON:
			jsonChunk = data[start : start+length]
		case glbChunkBIN:
			binChunk = data[start : start+length]
		}
		off = start + length
	}
	if jsonChunk == nil {
		return nil, nil, errMissingJSONChunk
	}
	return jsonChunk, binChunk, nil
}

// loadBuffers resolves buffer bytes from the GLB BIN chunk, data URIs or files.
func (p *gltfParserImpl) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]
		switch {
		case buf.URI == "" && i == 0 && p.binChunk != nil:
			buf.Data = p.binChunk
		case buf.URI == "":
			return fmt.Errorf("buffer %d has no URI and no GLB binary chunk", i)
		default:
			data, err := p.loadURI(buf.URI)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			buf.Data = data
		}
		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w", i, errBufferSizeMismatch)
		}
	}
	return nil
}

// loadURI loads a data: URI or a file relative to the document.
func (p *gltfParserImpl) loadURI(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		return decodeDataURI(uri)
	}
	name := path.Join(p.baseDir, uri)
	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", uri, err)
	}
	return data, nil
}

// decodeDataURI decodes data:[<mediatype>];base64,<data>.
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, errInvalidDataURI
	}
	if !strings.HasSuffix(uri[5:comma], ";base64") {
		return nil, fmt.Errorf("%w: only base64 is supported", errInvalidDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidDataURI, err)
	}
	return data, nil
}

// bufferViewBytes returns the bytes covered by a buffer view.
func (p *gltfParserImpl) bufferViewBytes(index int) ([]byte, *gltfBufferView, error) {
	if index < 0 || index >= len(p.document.BufferViews) {
		return nil, nil, fmt.Errorf("bufferView index %d out of range", index)
	}
	bv := &p.document.BufferViews[index]
	if bv.Buffer < 0 || bv.Buffer >= len(p.document.Buffers) {
		return nil, nil, fmt.Errorf("buffer index %d out of range", bv.Buffer)
	}
	data := p.document.Buffers[bv.Buffer].Data
	if bv.ByteOffset+bv.ByteLength > len(data) {
		return nil, nil, errAccessorOutOfBounds
	}
	return data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength], bv, nil
}

// accessor validates an accessor index and returns the accessor.
func (p *gltfParserImpl) accessor(index int) (*gltfAccessor, error) {
	if p.document == nil {
		return nil, errors.New("no document loaded")
	}
	if index < 0 || index >= len(p.document.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", index)
	}
	return &p.document.Accessors[index], nil
}

// eachElement calls fn with the raw bytes of every element of acc, honoring the view stride.
func (p *gltfParserImpl) eachElement(acc *gltfAccessor, fn func(i int, elem []byte)) error {
	if acc.BufferView == nil {
		return fmt.Errorf("%w: no bufferView", errUnsupportedAccessor)
	}
	view, bv, err := p.bufferViewBytes(*acc.BufferView)
	if err != nil {
		return err
	}

	elemSize := gltfComponentTypeSize(acc.ComponentType) * gltfAccessorTypeComponentCount(acc.Type)
	if elemSize == 0 {
		return fmt.Errorf("%w: %s/%d", errUnsupportedAccessor, acc.Type, acc.ComponentType)
	}
	stride := elemSize
	if bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}
	if acc.Count > 0 && acc.ByteOffset+(acc.Count-1)*stride+elemSize > len(view) {
		return errAccessorOutOfBounds
	}
	for i := 0; i < acc.Count; i++ {
		off := acc.ByteOffset + i*stride
		fn(i, view[off:off+elemSize])
	}
	return nil
}

func (p *gltfParserImpl) ReadFloats(accessorIndex int) ([]float32, int, error) {
	acc, err := p.accessor(accessorIndex)
	if err != nil {
		return nil, 0, err
	}
	width := gltfAccessorTypeComponentCount(acc.Type)
	size := gltfComponentTypeSize(acc.ComponentType)
	out := make([]float32, 0, acc.Count*width)
	err = p.eachElement(acc, func(_ int, elem []byte) {
		for c := 0; c < width; c++ {
			out = append(out, readComponent(elem[c*size:], acc.ComponentType, acc.Normalized))
		}
	})
	if err != nil {
		return nil, 0, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}
	return out, width, nil
}

// readComponent decodes one little-endian component as float32.
func readComponent(b []byte, componentType int, normalized bool) float32 {
	switch componentType {
	case gltfComponentTypeFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	case gltfComponentTypeUnsignedByte:
		if normalized {
			return float32(b[0]) / 255
		}
		return float32(b[0])
	case gltfComponentTypeByte:
		if normalized {
			return max(float32(int8(b[0]))/127, -1)
		}
		return float32(int8(b[0]))
	case gltfComponentTypeUnsignedShort:
		v := binary.LittleEndian.Uint16(b)
		if normalized {
			return float32(v) / 65535
		}
		return float32(v)
	case gltfComponentTypeShort:
		v := int16(binary.LittleEndian.Uint16(b))
		if normalized {
			return max(float32(v)/32767, -1)
		}
		return float32(v)
	case gltfComponentTypeUnsignedInt:
		return float32(binary.LittleEndian.Uint32(b))
	}
	return 0
}

func (p *gltfParserImpl) ReadIndices(accessorIndex int) ([]uint32, error) {
	acc, err := p.accessor(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltfAccessorTypeScalar {
		return nil, fmt.Errorf("index accessor is not SCALAR: type=%s", acc.Type)
	}

	out := make([]uint32, acc.Count)
	var read func([]byte) uint32
	switch acc.ComponentType {
	case gltfComponentTypeUnsignedByte:
		read = func(b []byte) uint32 { return uint32(b[0]) }
	case gltfComponentTypeUnsignedShort:
		read = func(b []byte) uint32 { return uint32(binary.LittleEndian.Uint16(b)) }
	case gltfComponentTypeUnsignedInt:
		read = binary.LittleEndian.Uint32
	default:
		return nil, fmt.Errorf("unsupported index component type: %d", acc.ComponentType)
	}
	err = p.eachElement(acc, func(i int, elem []byte) {
		out[i] = read(elem)
	})
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}
	return out, nil
}

func (p *gltfParserImpl) ReadImage(imageIndex int) ([]byte, error) {
	if p.document == nil || imageIndex < 0 || imageIndex >= len(p.document.Images) {
		return nil, fmt.Errorf("image index %d out of range", imageIndex)
	}
	img := &p.document.Images[imageIndex]
	switch {
	case img.BufferView != nil:
		data, _, err := p.bufferViewBytes(*img.BufferView)
		return data, err
	case img.URI != "":
		return p.loadURI(img.URI)
	default:
		return nil, fmt.Errorf("image %d has neither uri nor bufferView", imageIndex)
	}
}

// gltfComponentTypeSize returns the byte size of a component type.
func gltfComponentTypeSize(componentType int) int {
	switch componentType {
	case gltfComponentTypeByte, gltfComponentTypeUnsignedByte:
		return 1
	case gltfComponentTypeShort, gltfComponentTypeUnsignedShort:
		return 2
	case gltfComponentTypeUnsignedInt, gltfComponentTypeFloat:
		return 4
	default:
		return 0
	}
}

// gltfAccessorTypeComponentCount returns the number of components for an accessor type.
func gltfAccessorTypeComponentCount(accessorType string) int {
	switch accessorType {
	case gltfAccessorTypeScalar:
		return 1
	case gltfAccessorTypeVec2:
		return 2
	case gltfAccessorTypeVec3:
		return 3
	case gltfAccessorTypeVec4:
		return 4
	case gltfAccessorTypeMat4:
		return 16
	default:
		return 0
	}
}
