package types

import "errors"

// Configuration errors. Parse failures are never cached by the config store;
// read failures cover everything else that keeps the file from loading
// (permissions, the config path resolving to a directory, and so on).
var (
	ErrConfigParse = errors.New("project configuration is malformed")
	ErrConfigRead  = errors.New("project configuration is unreadable")
)

// Lookup errors. The wording of ErrUnknownContextType and ErrUnknownBaseType
// is part of the client contract and is reported verbatim. Both are returned
// as ordinary error values: the original system raised them as hard faults,
// but every operation here shares one result-style error contract.
var (
	ErrUnknownContextType = errors.New("Unknown context type")
	ErrUnknownBaseType    = errors.New("Unknown base type")
)

// Identity errors, surfaced before any I/O happens.
var (
	ErrContextNameRequired = errors.New("Context name is required")
	ErrInvalidName         = errors.New("invalid name")
)

// Operation errors.
var (
	// ErrContextNotFound marks a single requested document that does not
	// exist. Batch reads aggregate one wrapped instance per missing name.
	ErrContextNotFound = errors.New("context does not exist")

	// ErrContentRequired rejects update operations with empty content.
	ErrContentRequired = errors.New("Content is required")

	// ErrTemplateNotFound means neither a project-local template nor a
	// built-in default exists for the requested template name.
	ErrTemplateNotFound = errors.New("no template available")

	// ErrProjectExists is the explicit, retry-safe outcome of initializing
	// a project whose directory already exists.
	ErrProjectExists = errors.New("project already exists")

	// ErrArchive marks a failure to move a document into the archive.
	// A missing document during clear is not an archive error.
	ErrArchive = errors.New("archive failed")
)

// ErrValidationNoTemplate is returned when a type enables validation without
// naming a template. The message is part of the client contract; validation
// in this state must fail loudly rather than silently reporting valid.
var ErrValidationNoTemplate = errors.New("Validation enabled but no template specified in configuration")
