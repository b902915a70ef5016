package engine

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

type GenerationError struct {
	Path    string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type MultiError struct {
	Errors []*GenerationError
}

func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}

	msgs := make([]string, 0, len(m.Errors))
	for _, err := range m.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("multiple errors:\n%s", strings.Join(msgs, "\n"))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error {
	errs := make([]error, len(m.Errors))
	for i, err := range m.Errors {
		errs[i] = err
	}
	return errs
}

func (m *MultiError) Add(path, message string, err error) {
	m.Errors = append(m.Errors, &GenerationError{
		Path:    path,
		Message: message,
		Err:     err,
	})
}

func (m *MultiError) HasErrors() bool {
	return len(m.Errors) > 0
}

func unresolvedError(unresolved []Placeholder) error {
	keys := make([]string, 0, len(unresolved))
	seen := make(map[string]bool, len(unresolved))
	for _, p := range unresolved {
		if !seen[p.Key] {
			seen[p.Key] = true
			keys = append(keys, p.Key)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, strings.Join(keys, ", "))
}
