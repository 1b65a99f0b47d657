package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldFiles  = "files"
	FieldOutput = "output"

	// Configuration fields.
	FieldFlavor = "flavor"
	FieldFormat = "format"
	FieldTheme  = "theme"
	FieldJobs   = "jobs"

	// Rendering fields.
	FieldRange     = "range"
	FieldComponent = "component"
	FieldLanguage  = "language"
	FieldSelector  = "selector"
	FieldMatches   = "matches"
	FieldBytes     = "bytes"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesFailed     = "files_failed"
	FieldOutdated        = "outdated"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
