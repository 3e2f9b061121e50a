package cli

import (
	"errors"

	"github.com/aidanlsb/rtend/internal/mutation"
	"github.com/aidanlsb/rtend/internal/paths"
	"github.com/aidanlsb/rtend/internal/picker"
	"github.com/aidanlsb/rtend/internal/store"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Profile errors
	ErrConfigInvalid         = "CONFIG_INVALID"
	ErrProfileNotInitialized = "PROFILE_NOT_INITIALIZED"
	ErrProfileExists         = "PROFILE_EXISTS"

	// Row errors
	ErrNotFound = "NOT_FOUND"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Input errors
	ErrInvalidInput         = "INVALID_INPUT"
	ErrMissingArgument      = "MISSING_ARGUMENT"
	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"

	// Interaction errors
	ErrCancelled   = "CANCELLED"
	ErrPickerError = "PICKER_ERROR"
	ErrEditorError = "EDITOR_ERROR"

	// File errors
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnNotFound = "NOT_FOUND"
	WarnOrphans  = "ORPHANS_LEFT"
)

var (
	errInvalidInput = errors.New("invalid input")
	errEditorFailed = errors.New("editor failed")
)

// errorCode maps a failure onto its stable code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, mutation.ErrInvalidID),
		errors.Is(err, mutation.ErrForceUnsupported),
		errors.Is(err, paths.ErrInvalidProfile),
		errors.Is(err, errInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, store.ErrDatabaseMissing):
		return ErrProfileNotInitialized
	case errors.Is(err, store.ErrSchemaExists):
		return ErrProfileExists
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrOwnerNotFound):
		return ErrNotFound
	case errors.Is(err, mutation.ErrEditCancelled),
		errors.Is(err, mutation.ErrAborted),
		errors.Is(err, picker.ErrNoSelection):
		return ErrCancelled
	case errors.Is(err, picker.ErrNoEntityID), errors.Is(err, picker.ErrPickerNotInstalled):
		return ErrPickerError
	case errors.Is(err, errEditorFailed):
		return ErrEditorError
	case errors.Is(err, store.ErrUnexpectedRows):
		return ErrInternal
	default:
		return ErrDatabaseError
	}
}

// fail reports err under the code errorCode picks for it.
func fail(err error, suggestion string) error {
	return handleError(errorCode(err), err, suggestion)
}
