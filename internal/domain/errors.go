package domain

import (
	"errors"
	"fmt"

	m "smashers.dev/pkg/sitegen/internal/model"
)

var (
	// ErrTemplateMissing means the compiled HTML shell was not found.
	ErrTemplateMissing = errors.New("compiled html template not found")
	// ErrPagesMissing means the configured page template directory was not found.
	ErrPagesMissing = errors.New("page template directory not found")
	// ErrBuildDirMissing means the client build output was not found.
	ErrBuildDirMissing = errors.New("build directory not found")
	// ErrMountNotFound means a document has no mount element.
	ErrMountNotFound = errors.New("mount point not found")
	// ErrEmptyMount means a generated document would boot with a fresh client render.
	ErrEmptyMount = errors.New("mount point is empty")
	// ErrUnknownStrategy means no strategy is registered for the requested kind.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrInvalidRoute means a route cannot be mapped to an output file.
	ErrInvalidRoute = errors.New("invalid route")
)

// PreconditionError reports a build artifact missing before any route runs.
type PreconditionError struct {
	Artifact string
	Path     m.Path
	Hint     string
	Err      error
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("%s not found at %s", e.Artifact, e.Path)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}

	return msg
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}
