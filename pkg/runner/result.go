package runner

import "github.com/danspam/bundlemap/pkg/bundle"

// Outcome is the result of building one bundle.
type Outcome struct {
	// Name is the bundle's logical name.
	Name string

	// Artifact is the build result; carries StateFailed when Error is set.
	Artifact *bundle.Artifact

	// Error is set if the bundle could not be built.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// BundlesRequested is the number of bundles in the configuration.
	BundlesRequested int

	// BundlesBuilt is the number of bundles built successfully.
	BundlesBuilt int

	// BundlesFailed is the number of bundles that failed to build.
	BundlesFailed int

	// InputBytes is the total size of all resources read.
	InputBytes int

	// OutputBytes is the total size of all written code artifacts.
	OutputBytes int
}

// Result is the overall runner result. Bundles are ordered as requested.
type Result struct {
	Bundles []Outcome
	Stats   Stats
}

// HasFailures reports whether any bundle failed to build.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.BundlesFailed > 0
}

func (r *Result) accumulate(o Outcome) {
	r.Bundles = append(r.Bundles, o)

	if o.Error != nil {
		r.Stats.BundlesFailed++
	} else {
		r.Stats.BundlesBuilt++
	}
	if o.Artifact != nil {
		r.Stats.InputBytes += o.Artifact.InputBytes
		r.Stats.OutputBytes += o.Artifact.OutputBytes
	}
}
