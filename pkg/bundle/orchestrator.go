// Package bundle drives the bundling pipeline: concatenate the ordered
// resources, minify the combined buffer, build the source map, and write
// both artifacts atomically under a per-output-path lock.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danspam/bundlemap/pkg/concat"
	"github.com/danspam/bundlemap/pkg/fsutil"
	"github.com/danspam/bundlemap/pkg/minify"
	"github.com/danspam/bundlemap/pkg/sourcemap"
)

// ErrMissingConfiguration indicates a required request field is absent.
// A caller configuration error, not a build failure.
var ErrMissingConfiguration = errors.New("missing configuration")

// State names the pipeline stage a build is in. A failed build keeps
// StateFailed; every earlier stage name appears in the wrapped error.
type State int

const (
	StateIdle State = iota
	StateConcatenating
	StateMinifying
	StateEncoding
	StateWritingArtifacts
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:             "idle",
	StateConcatenating:    "concatenating",
	StateMinifying:        "minifying",
	StateEncoding:         "encoding",
	StateWritingArtifacts: "writing-artifacts",
	StateDone:             "done",
	StateFailed:           "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Resource names one input file of a bundle, in order.
type Resource struct {
	// Name identifies the resource in the source map's sources list.
	// Defaults to the path's base name.
	Name string

	// Path locates the resource on disk.
	Path string

	// Dynamic marks request-time generated content, which cannot be
	// bundled with a map.
	Dynamic bool
}

// Request describes one bundle build.
type Request struct {
	// Name is the bundle's logical name; artifacts are <Name>.js and
	// <Name>.js.map.
	Name string

	// Resources are the bundle's inputs, in concatenation order.
	Resources []Resource

	// OutputDir receives both artifacts. Required unless Debug.
	OutputDir string

	// BaseURL is the externally reachable URL prefix under which the
	// host serves OutputDir; it forms the sourceMappingURL reference.
	BaseURL string

	// SourceRoot optionally prefixes every source in the emitted map.
	SourceRoot string

	// Debug skips minification bookkeeping and artifact writes entirely
	// and returns plainly concatenated, minified text.
	Debug bool

	// Options configures the minifier.
	Options minify.Options
}

// Artifact is the result of one build.
type Artifact struct {
	Name  string
	State State

	// Code is the minified text, including the trailing
	// sourceMappingURL comment in non-debug builds.
	Code []byte

	// Map is the finalized source map document; nil in debug builds.
	Map *sourcemap.Document

	// CodePath, MapPath, and MapURL are empty in debug builds.
	CodePath string
	MapPath  string
	MapURL   string

	InputBytes  int
	OutputBytes int
}

// Orchestrator builds bundles. Safe for concurrent use; builds naming
// the same output path serialize on a per-path lock while unrelated
// builds proceed in parallel.
type Orchestrator struct {
	minifier minify.Minifier
	locks    *fsutil.PathLocker
}

// New returns an orchestrator using the given minifier, or the native
// token minifier when m is nil.
func New(m minify.Minifier) *Orchestrator {
	if m == nil {
		m = minify.NewSimple()
	}
	return &Orchestrator{
		minifier: m,
		locks:    fsutil.NewPathLocker(),
	}
}

// Build runs the pipeline for one request. Fatal errors abort the build
// and leave any previously written artifacts for the bundle untouched;
// the returned artifact is always non-nil and carries StateFailed
// alongside a non-nil error.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*Artifact, error) {
	art := &Artifact{Name: req.Name, State: StateIdle}

	if req.Name == "" {
		return fail(art, fmt.Errorf("%w: bundle name is required", ErrMissingConfiguration))
	}
	if len(req.Resources) == 0 {
		return fail(art, fmt.Errorf("%w: bundle %s has no resources", ErrMissingConfiguration, req.Name))
	}

	if req.Debug {
		if err := o.buildDebug(ctx, req, art); err != nil {
			return fail(art, err)
		}
		return art, nil
	}

	if req.OutputDir == "" {
		return fail(art, fmt.Errorf("%w: bundle %s has no output directory", ErrMissingConfiguration, req.Name))
	}

	art.CodePath = filepath.Join(req.OutputDir, req.Name+".js")
	art.MapPath = filepath.Join(req.OutputDir, req.Name+".js.map")
	art.MapURL = joinURL(req.BaseURL, req.Name+".js.map")

	// Serialize same-output builds from buffer construction through the
	// artifact writes.
	unlock := o.locks.Lock(art.MapPath)
	defer unlock()

	if err := o.buildMapped(ctx, req, art); err != nil {
		return fail(art, err)
	}
	return art, nil
}

func (o *Orchestrator) buildMapped(ctx context.Context, req Request, art *Artifact) error {
	art.State = StateConcatenating
	files, err := loadResources(req.Resources)
	if err != nil {
		return fmt.Errorf("concatenate %s: %w", req.Name, err)
	}
	for _, f := range files {
		art.InputBytes += len(f.Content)
	}

	combined, err := concat.Combine(files)
	if err != nil {
		return fmt.Errorf("concatenate %s: %w", req.Name, err)
	}

	art.State = StateMinifying
	builder := sourcemap.NewBuilder()
	minified, err := minifyAndMap(ctx, o.minifier, combined, req.Options, builder)
	if err != nil {
		return fmt.Errorf("minify %s: %w", req.Name, err)
	}

	art.State = StateEncoding
	doc, err := builder.Build(req.Name+".js", req.SourceRoot)
	if err != nil {
		return fmt.Errorf("encode map for %s: %w", req.Name, err)
	}
	mapJSON, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("encode map for %s: %w", req.Name, err)
	}

	code := make([]byte, 0, len(minified)+len(art.MapURL)+32)
	code = append(code, minified...)
	code = append(code, "\n//# sourceMappingURL="...)
	code = append(code, art.MapURL...)
	code = append(code, '\n')

	art.State = StateWritingArtifacts
	if err := fsutil.EnsureDir(req.OutputDir); err != nil {
		return fmt.Errorf("write artifacts for %s: %w", req.Name, err)
	}
	if err := fsutil.WriteAtomic(ctx, art.CodePath, code, 0); err != nil {
		return fmt.Errorf("write artifacts for %s: %w", req.Name, err)
	}
	if err := fsutil.WriteAtomic(ctx, art.MapPath, mapJSON, 0); err != nil {
		return fmt.Errorf("write artifacts for %s: %w", req.Name, err)
	}

	art.State = StateDone
	art.Code = code
	art.Map = doc
	art.OutputBytes = len(code)
	return nil
}

// buildDebug concatenates without directive markers, minifies without
// correlation bookkeeping, and writes nothing.
func (o *Orchestrator) buildDebug(ctx context.Context, req Request, art *Artifact) error {
	art.State = StateConcatenating
	files, err := loadResources(req.Resources)
	if err != nil {
		return fmt.Errorf("concatenate %s: %w", req.Name, err)
	}

	var plain []byte
	for _, f := range files {
		art.InputBytes += len(f.Content)
		plain = append(plain, f.Content...)
		if len(f.Content) == 0 || f.Content[len(f.Content)-1] != '\n' {
			plain = append(plain, '\n')
		}
	}

	art.State = StateMinifying
	code, err := o.minifier.Minify(ctx, plain, req.Options)
	if err != nil {
		return fmt.Errorf("minify %s: %w", req.Name, err)
	}

	art.State = StateDone
	art.Code = code
	art.OutputBytes = len(code)
	return nil
}

// loadResources reads the bundle inputs. Dynamic resources are rejected
// before anything is read or written.
func loadResources(resources []Resource) ([]concat.SourceFile, error) {
	for _, r := range resources {
		if r.Dynamic {
			name := r.Name
			if name == "" {
				name = r.Path
			}
			return nil, fmt.Errorf("%w: %s is dynamically generated", concat.ErrUnsupportedResource, name)
		}
	}

	files := make([]concat.SourceFile, 0, len(resources))
	for _, r := range resources {
		name := r.Name
		if name == "" {
			name = filepath.Base(r.Path)
		}
		sf, err := concat.ReadSourceFile(name, r.Path)
		if err != nil {
			return nil, err
		}
		files = append(files, sf)
	}
	return files, nil
}

func fail(art *Artifact, err error) (*Artifact, error) {
	art.State = StateFailed
	return art, err
}

func joinURL(base, name string) string {
	if base == "" {
		return name
	}
	return strings.TrimSuffix(base, "/") + "/" + name
}
