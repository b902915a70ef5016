// Package postprocess applies transformations to expanded templates before
// they are written.
//
//	eng := engine.New()
//	eng.AddPostProcessor(postprocess.ForExtensions(processors.TrimTrailingSpace(), ".n"))
package postprocess

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Processor transforms the content of one generated file. Processors that do
// not apply to filePath return content unchanged.
type Processor interface {
	ProcessContent(filePath string, content []byte) ([]byte, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(filePath string, content []byte) ([]byte, error)

func (f ProcessorFunc) ProcessContent(filePath string, content []byte) ([]byte, error) {
	return f(filePath, content)
}

// Chain runs processors in the order they were added.
type Chain struct {
	processors []Processor
}

func NewChain() *Chain {
	return &Chain{
		processors: make([]Processor, 0),
	}
}

func (c *Chain) Add(processor Processor) {
	c.processors = append(c.processors, processor)
}

func (c *Chain) AddFunc(fn func(filePath string, content []byte) ([]byte, error)) {
	c.processors = append(c.processors, ProcessorFunc(fn))
}

// Process runs all processors in sequence. The first failure stops the chain.
func (c *Chain) Process(filePath string, content []byte) ([]byte, error) {
	result := content
	for i, processor := range c.processors {
		processed, err := processor.ProcessContent(filePath, result)
		if err != nil {
			return nil, fmt.Errorf("processor %d failed for %s: %w", i, filePath, err)
		}
		result = processed
	}
	return result, nil
}

func (c *Chain) HasProcessors() bool {
	return len(c.processors) > 0
}

func (c *Chain) Len() int {
	return len(c.processors)
}

func (c *Chain) Clear() {
	c.processors = c.processors[:0]
}

// ForExtensions restricts p to files whose extension is one of exts
// (case-insensitive, leading dot included). No extensions means every file.
func ForExtensions(p Processor, exts ...string) Processor {
	if len(exts) == 0 {
		return p
	}
	return ProcessorFunc(func(filePath string, content []byte) ([]byte, error) {
		ext := filepath.Ext(filePath)
		for _, e := range exts {
			if strings.EqualFold(ext, e) {
				return p.ProcessContent(filePath, content)
			}
		}
		return content, nil
	})
}
