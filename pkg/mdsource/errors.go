package mdsource

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	components, err := r.ResolveFromPath("force-app")
//	if errors.Is(err, mdsource.ErrTypeInference) {
//	    // Handle a file whose type could not be determined
//	}
var (
	// ErrNotFound indicates a path does not exist in the tree being resolved.
	ErrNotFound = errors.New("path not found")

	// ErrTypeInference indicates no registered type matched a path.
	ErrTypeInference = errors.New("type inference failed")

	// ErrExpectedContent indicates a descriptor was found but its required content is missing.
	ErrExpectedContent = errors.New("expected content files")

	// ErrUnexpectedIgnore indicates a mandatory file is denied by the ignore rules.
	ErrUnexpectedIgnore = errors.New("unexpected ignore")

	// ErrMissingAdapter indicates the registry names a strategy with no implementation.
	ErrMissingAdapter = errors.New("missing adapter")

	// ErrNotImplemented indicates an operation the backing storage does not support.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnknownType indicates a type name or id is not present in the registry.
	ErrUnknownType = errors.New("unknown metadata type")

	// ErrInvalidRegistry indicates the registry definition is inconsistent.
	ErrInvalidRegistry = errors.New("invalid registry")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// TypeInferenceError is returned when no registered type matches a path.
// Suggestions holds the registered suffixes closest to the one found on the path.
type TypeInferenceError struct {
	Path        string
	Reason      string
	Suggestions []string
}

func (e *TypeInferenceError) Error() string {
	msg := fmt.Sprintf("could not infer a metadata type for %s", e.Path)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if len(e.Suggestions) > 0 {
		msg += "\n\nHint: Did you mean one of these suffixes: " + strings.Join(e.Suggestions, ", ") + "?"
	}
	return msg
}

func (e *TypeInferenceError) Unwrap() error { return ErrTypeInference }

// ExpectedContentError is returned when a descriptor resolves but the content
// its type requires cannot be found next to it.
type ExpectedContentError struct {
	Path string // Path that triggered resolution
	Type string // Type name
}

func (e *ExpectedContentError) Error() string {
	return fmt.Sprintf("expected content files for %s of type %s were not found\n\n"+
		"Hint: Make sure the content file sits beside its descriptor and shares its name.", e.Path, e.Type)
}

func (e *ExpectedContentError) Unwrap() error { return ErrExpectedContent }

// UnexpectedIgnoreError is returned when a file that a component cannot exist
// without is denied by the ignore rules.
type UnexpectedIgnoreError struct {
	Path    string // The denied file
	Trigger string // The path resolution started from
}

func (e *UnexpectedIgnoreError) Error() string {
	return fmt.Sprintf("%s is required to resolve %s but it is denied by the ignore file\n\n"+
		"Hint: Remove the pattern that matches %s, or ignore the whole component.", e.Path, e.Trigger, e.Path)
}

func (e *UnexpectedIgnoreError) Unwrap() error { return ErrUnexpectedIgnore }

// MissingAdapterError is returned when the registry assigns a type a strategy
// that has no implementation. It always indicates a registry bug.
type MissingAdapterError struct {
	Type    string
	Adapter string
}

func (e *MissingAdapterError) Error() string {
	return fmt.Sprintf("type %s declares adapter %q which is not implemented", e.Type, e.Adapter)
}

func (e *MissingAdapterError) Unwrap() error { return ErrMissingAdapter }

var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidRegistry), errors.Is(err, ErrMissingAdapter):
		return ExitConfigError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrTypeInference):
		return ExitTypeInference
	case errors.Is(err, ErrExpectedContent), errors.Is(err, ErrUnexpectedIgnore):
		return ExitResolveFailed
	}

	// cobra reports argument and flag misuse as plain errors
	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
