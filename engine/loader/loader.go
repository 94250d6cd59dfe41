package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/model"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// ErrUnsupportedFormat is returned for a model path no backend accepts.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Kind identifies what an asynchronous Request loads.
type Kind int

const (
	// KindModel loads a model through a format backend.
	KindModel Kind = iota
	// KindTexture decodes an image into TextureStagingData.
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindTexture:
		return "texture"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Request is an asynchronous load submitted with Submit.
type Request struct {
	Kind Kind
	// Path is slash-separated and relative to the loader's filesystem.
	Path string
	// Tag is an opaque caller key carried through to the Result.
	Tag string
}

// Result is a completed Request. Exactly one of Model, Texture or Err is meaningful.
type Result struct {
	Request Request
	Model   model.Model
	Texture common.TextureStagingData
	Err     error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	fsys     fs.FS
	backends []loaderBackend
	workers  int
	logger   *slog.Logger

	modelCache   map[string]model.Model
	textureCache map[string]common.TextureStagingData

	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
	nextID   atomic.Int64
	pending  atomic.Int64
	results  chan Result
}

// Loader loads and caches models and textures from an asset filesystem.
// Synchronous loads return directly. Submit runs a load on a worker pool and
// queues its Result until the owning loop calls Drain, so callers that must
// mutate state on a single thread can splice results in at a point they choose.
type Loader interface {
	// LoadModel imports a model and caches it by path.
	// The backend is selected by file extension (.gltf/.glb → glTF backend).
	//
	// Parameters:
	//   - path: the slash-separated model path
	//
	// Returns:
	//   - model.Model: the loaded or cached model
	//   - error: error if loading fails
	LoadModel(path string) (model.Model, error)

	// LoadTexture decodes an image and caches it by path.
	//
	// Parameters:
	//   - path: the slash-separated image path
	//
	// Returns:
	//   - common.TextureStagingData: the decoded RGBA pixels
	//   - error: error if loading fails
	LoadTexture(path string) (common.TextureStagingData, error)

	// Submit schedules req on the worker pool and returns immediately.
	//
	// Parameters:
	//   - req: the load to perform
	Submit(req Request)

	// Drain hands every completed Result to fn without blocking and returns how many were delivered.
	//
	// Parameters:
	//   - fn: called once per completed request on the caller's goroutine
	//
	// Returns:
	//   - int: the number of results delivered
	Drain(fn func(Result)) int

	// Pending returns the number of submitted requests whose results have not been drained.
	Pending() int

	// Get retrieves a cached model by path. Returns nil if not found.
	Get(path string) model.Model
}

var _ Loader = &loader{}

// NewLoader creates a Loader with the glTF backend.
// Without WithFS or WithRoot the loader reads from the working directory.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the configured loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		backends:     []loaderBackend{newGLTFLoaderBackend()},
		workers:      2,
		logger:       slog.Default(),
		modelCache:   make(map[string]model.Model),
		textureCache: make(map[string]common.TextureStagingData),
	}
	for _, option := range options {
		option(l)
	}
	if l.fsys == nil {
		l.fsys = os.DirFS(".")
	}
	l.results = make(chan Result, 64)
	return l
}

func (l *loader) LoadModel(p string) (model.Model, error) {
	p = path.Clean(p)
	l.mu.RLock()
	if cached, ok := l.modelCache[p]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(p)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	m, err := backend.Load(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", p, err)
	}
	l.logger.Debug("model loaded", "path", p, "parts", len(m.Parts()), "vertices", m.VertexCount(), "took", time.Since(start))

	l.mu.Lock()
	l.modelCache[p] = m
	l.mu.Unlock()
	return m, nil
}

func (l *loader) LoadTexture(p string) (common.TextureStagingData, error) {
	p = path.Clean(p)
	l.mu.RLock()
	if cached, ok := l.textureCache[p]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	f, err := l.fsys.Open(p)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to open texture %s: %w", p, err)
	}
	defer f.Close()
	tex, err := common.DecodeImage(f)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("texture %s: %w", p, err)
	}

	l.mu.Lock()
	l.textureCache[p] = tex
	l.mu.Unlock()
	return tex, nil
}

func (l *loader) Submit(req Request) {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 256, time.Second)
	})
	l.pending.Add(1)
	l.pool.SubmitTask(worker.Task{
		ID: int(l.nextID.Add(1)),
		Do: func() (any, error) {
			res := Result{Request: req}
			switch req.Kind {
			case KindModel:
				res.Model, res.Err = l.LoadModel(req.Path)
			case KindTexture:
				res.Texture, res.Err = l.LoadTexture(req.Path)
			default:
				res.Err = fmt.Errorf("unknown request kind %s", req.Kind)
			}
			if res.Err != nil {
				l.logger.Warn("asset load failed", "kind", req.Kind, "path", req.Path, "err", res.Err)
			}
			l.results <- res
			return nil, nil
		},
	})
}

func (l *loader) Drain(fn func(Result)) int {
	n := 0
	for {
		select {
		case res := <-l.results:
			l.pending.Add(-1)
			n++
			fn(res)
		default:
			return n
		}
	}
}

func (l *loader) Pending() int {
	return int(l.pending.Load())
}

func (l *loader) Get(p string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[path.Clean(p)]
}

// resolveBackend selects the backend that accepts the path's extension.
func (l *loader) resolveBackend(p string) (loaderBackend, error) {
	ext := strings.ToLower(path.Ext(p))
	for _, b := range l.backends {
		for _, e := range b.Extensions() {
			if e == ext {
				return b, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}
