package engine

import (
	"strings"

	"github.com/cpcf/macrowiz/macro"
)

// Template is item template text split into literal text and $key$
// placeholder tokens.
type Template struct {
	name     string
	segments []segment
}

type segment struct {
	text  string
	token bool
	line  int
}

// Placeholder is a token found in a template.
type Placeholder struct {
	Key  string
	Line int
}

// Parse splits src into literal and placeholder segments. A placeholder is
// '$', one or more letters, digits or underscores, and a closing '$'. Any
// other '$' is literal text.
func Parse(name, src string) *Template {
	t := &Template{name: name}

	line := 1
	start := 0
	for i := 0; i < len(src); {
		c := src[i]
		if c == '\n' {
			line++
		}
		if c != '$' {
			i++
			continue
		}

		end := i + 1
		for end < len(src) && isKeyByte(src[end]) {
			end++
		}
		if end == i+1 || end >= len(src) || src[end] != '$' {
			i++
			continue
		}

		if start < i {
			t.segments = append(t.segments, segment{text: src[start:i], line: line})
		}
		t.segments = append(t.segments, segment{text: src[i : end+1], token: true, line: line})
		i = end + 1
		start = i
	}
	if start < len(src) {
		t.segments = append(t.segments, segment{text: src[start:], line: line})
	}

	return t
}

func isKeyByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

func (t *Template) Name() string {
	return t.name
}

// Placeholders returns every token in order of appearance.
func (t *Template) Placeholders() []Placeholder {
	var out []Placeholder
	for _, s := range t.segments {
		if s.token {
			out = append(out, Placeholder{Key: s.text, Line: s.line})
		}
	}
	return out
}

// Execute substitutes tokens from r verbatim. Tokens missing from r are
// kept as-is and returned as unresolved.
func (t *Template) Execute(r macro.Replacements) (string, []Placeholder) {
	var b strings.Builder
	var unresolved []Placeholder

	for _, s := range t.segments {
		if !s.token {
			b.WriteString(s.text)
			continue
		}
		if v, ok := r[s.text]; ok {
			b.WriteString(v)
			continue
		}
		b.WriteString(s.text)
		unresolved = append(unresolved, Placeholder{Key: s.text, Line: s.line})
	}

	return b.String(), unresolved
}

// Expand is Parse followed by Execute.
func Expand(src string, r macro.Replacements) string {
	out, _ := Parse("", src).Execute(r)
	return out
}
