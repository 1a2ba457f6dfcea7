package runner

import (
	"path/filepath"

	"github.com/danspam/bundlemap/pkg/bundle"
	"github.com/danspam/bundlemap/pkg/config"
)

// Options controls a multi-bundle run.
type Options struct {
	// Requests are the bundle builds to perform, in order.
	Requests []bundle.Request

	// Jobs caps concurrent workers. 0 or negative means NumCPU.
	Jobs int
}

// RequestsFromConfig expands a configuration into build requests.
// Resource paths are resolved relative to baseDir, normally the config
// file's directory.
func RequestsFromConfig(cfg *config.Config, baseDir string) []bundle.Request {
	opts, _ := cfg.Minify.Options()

	requests := make([]bundle.Request, 0, len(cfg.Bundles))
	for _, b := range cfg.Bundles {
		req := bundle.Request{
			Name:       b.Name,
			OutputDir:  resolve(baseDir, cfg.OutputDir),
			BaseURL:    cfg.BaseURL,
			SourceRoot: cfg.SourceRoot,
			Debug:      cfg.Debug,
			Options:    opts,
		}
		for _, r := range b.Resources {
			req.Resources = append(req.Resources, bundle.Resource{
				Name:    r.Name,
				Path:    resolve(baseDir, r.Path),
				Dynamic: r.Dynamic,
			})
		}
		requests = append(requests, req)
	}
	return requests
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
