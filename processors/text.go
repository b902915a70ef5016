// Package processors provides post-processors for generated macro sources.
package processors

import (
	"bytes"

	"github.com/cpcf/macrowiz/postprocess"
)

type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
)

// TrimTrailingSpace removes spaces and tabs at the end of every line. Empty
// placeholder values often leave them behind.
func TrimTrailingSpace() postprocess.Processor {
	return postprocess.ProcessorFunc(func(_ string, content []byte) ([]byte, error) {
		var out bytes.Buffer
		out.Grow(len(content))
		for i, line := range bytes.Split(content, []byte("\n")) {
			if i > 0 {
				out.WriteByte('\n')
			}
			cr := bytes.HasSuffix(line, []byte("\r"))
			out.Write(bytes.TrimRight(bytes.TrimSuffix(line, []byte("\r")), " \t"))
			if cr {
				out.WriteByte('\r')
			}
		}
		return out.Bytes(), nil
	})
}

// EnsureFinalNewline appends a newline to non-empty content lacking one.
func EnsureFinalNewline() postprocess.Processor {
	return postprocess.ProcessorFunc(func(_ string, content []byte) ([]byte, error) {
		if len(content) == 0 || content[len(content)-1] == '\n' {
			return content, nil
		}
		out := make([]byte, len(content), len(content)+1)
		copy(out, content)
		return append(out, '\n'), nil
	})
}

// LineEndings rewrites every line break to le.
func LineEndings(le LineEnding) postprocess.Processor {
	return postprocess.ProcessorFunc(func(_ string, content []byte) ([]byte, error) {
		normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		if le == LF {
			return normalized, nil
		}
		return bytes.ReplaceAll(normalized, []byte("\n"), []byte(le)), nil
	})
}
