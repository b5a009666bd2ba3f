package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Rejected-operation kinds. An edit that returns one of these left the
// timeline unchanged.
var (
	ErrNotFound     = errors.New("not found")
	ErrLockedTrack  = errors.New("track is locked")
	ErrKindMismatch = errors.New("media kind does not match track kind")
	ErrOverlap      = errors.New("clip would overlap another clip on the track")
	ErrBounds       = errors.New("value out of bounds")
	ErrDuplicate    = errors.New("id already in use")
)

// Project and configuration errors.
var (
	ErrProjectNotFound = errors.New("project file not found")
	ErrProjectLocked   = errors.New("project is open in another editor")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// MaestroError wraps an error with a user-friendly suggestion.
type MaestroError struct {
	Err        error
	Suggestion string
}

func (e *MaestroError) Error() string {
	return e.Err.Error()
}

func (e *MaestroError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &MaestroError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var mErr *MaestroError
	if errors.As(err, &mErr) && mErr.Suggestion != "" {
		return mErr.Suggestion
	}

	switch {
	case errors.Is(err, ErrLockedTrack):
		return "Unlock the track with 'maestro track lock <id>' and try again"
	case errors.Is(err, ErrKindMismatch):
		return "Video media goes on video tracks (v1, v2...), audio media on audio tracks (a1, a2...)"
	case errors.Is(err, ErrOverlap):
		return "Pick a start time after the neighbouring clip, or enable ripple"
	case errors.Is(err, ErrBounds):
		return "Times must be non-negative and stay within the source media"
	case errors.Is(err, ErrDuplicate):
		return "Choose a different id, or omit it to have one generated"
	case errors.Is(err, ErrProjectNotFound):
		return "Run 'maestro new' to create a project, or pass --project"
	case errors.Is(err, ErrProjectLocked):
		return "Close the other editor session first"
	case errors.Is(err, ErrInvalidConfig):
		return "Run 'maestro config show' to inspect the configuration"
	case errors.Is(err, ErrNotFound):
		return "Run 'maestro status' to list track, clip and marker ids"
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "frame rate") {
		return "Supported rates: 23.976, 24, 25, 29.97, 30, 48, 50, 59.94, 60, 120"
	}
	if strings.Contains(errStr, "timecode") || strings.Contains(errStr, "invalid time") {
		return "Give times in seconds (12.5) or as HH:MM:SS:FF"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
