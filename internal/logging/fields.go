// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldEngine = "engine"
	FieldDebug  = "debug"
	FieldJobs   = "jobs"

	// Bundle fields.
	FieldBundle    = "bundle"
	FieldResource  = "resource"
	FieldResources = "resources"
	FieldState     = "state"
	FieldMapURL    = "map_url"

	// Statistics fields.
	FieldBundlesBuilt  = "bundles_built"
	FieldBundlesFailed = "bundles_failed"
	FieldInputBytes    = "input_bytes"
	FieldOutputBytes   = "output_bytes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
