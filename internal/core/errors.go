package core

import (
	"errors"
	"fmt"
)

var (
	// ErrLanguageNotFound is matched by every *LookupError.
	ErrLanguageNotFound = errors.New("language not found")

	// ErrInvalidDataset wraps every dataset validation failure.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrViewNotFound is returned when a view key is not registered.
	ErrViewNotFound = errors.New("view not found")
)

// LookupError reports a language label missing from the dataset's name mapping.
type LookupError struct {
	Language  Language
	Supported []Language
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("language not found: %q (supported: %v)", e.Language, e.Supported)
}

// Is makes errors.Is(err, ErrLanguageNotFound) true for any LookupError.
func (e *LookupError) Is(target error) bool {
	return target == ErrLanguageNotFound
}

// invalidf builds an error wrapping ErrInvalidDataset.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDataset, fmt.Sprintf(format, args...))
}
