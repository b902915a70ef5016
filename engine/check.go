package engine

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/cpcf/macrowiz/macro"
)

type ValidationResult struct {
	Valid    bool              `json:"valid" yaml:"valid"`
	Errors   []ValidationError `json:"errors" yaml:"errors"`
	Warnings []ValidationError `json:"warnings" yaml:"warnings"`
	Info     []string          `json:"info" yaml:"info"`
}

type ValidationError struct {
	Type       string `json:"type" yaml:"type"`
	Message    string `json:"message" yaml:"message"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Check reports, without writing anything, which placeholders of the
// templates below dir the table cannot resolve. Unresolved placeholders are
// errors when strict is set and warnings otherwise. Table keys no template
// uses are listed in Info.
func Check(fsys fs.FS, dir string, table macro.Replacements, strict bool) ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Errors:   make([]ValidationError, 0),
		Warnings: make([]ValidationError, 0),
		Info:     make([]string, 0),
	}
	used := make(map[string]bool)

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Type:    "file_error",
				Message: err.Error(),
				File:    p,
			})
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(p, templateExt) {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Type:    "file_error",
				Message: fmt.Sprintf("Cannot read template file: %v", err),
				File:    p,
			})
			return nil
		}

		placeholders := Parse(p, p).Placeholders()
		for i := range placeholders {
			placeholders[i].Line = 0
		}
		placeholders = append(placeholders, Parse(p, string(content)).Placeholders()...)

		for _, ph := range placeholders {
			used[ph.Key] = true
			if _, ok := table[ph.Key]; ok {
				continue
			}
			issue := ValidationError{
				Type:       "unresolved_placeholder",
				Message:    fmt.Sprintf("placeholder %s has no replacement", ph.Key),
				File:       p,
				Line:       ph.Line,
				Suggestion: suggestKey(ph.Key, table),
			}
			if strict {
				result.Valid = false
				result.Errors = append(result.Errors, issue)
			} else {
				result.Warnings = append(result.Warnings, issue)
			}
		}
		return nil
	})
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Type: "file_error", Message: err.Error(), File: dir})
	}

	for _, key := range table.Keys() {
		if !used[key] {
			result.Info = append(result.Info, fmt.Sprintf("replacement %s is not used by any template", key))
		}
	}

	return result
}

// suggestKey finds a table key equal to key ignoring case.
func suggestKey(key string, table macro.Replacements) string {
	for _, k := range table.Keys() {
		if strings.EqualFold(k, key) {
			return fmt.Sprintf("did you mean %s?", k)
		}
	}
	return ""
}
