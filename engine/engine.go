// Package engine expands item templates with a replacement table and writes
// the generated files.
package engine

import (
	"log/slog"

	"github.com/cpcf/macrowiz/macro"
	"github.com/cpcf/macrowiz/postprocess"
	"github.com/cpcf/macrowiz/write"
)

type Engine struct {
	logger         *slog.Logger
	failMode       FailureMode
	strict         bool
	writer         write.Writer
	writeOpts      write.WriteOptions
	renderer       *Renderer
	cache          *TemplateCache
	postprocessors *postprocess.Chain
}

type FailureMode int

const (
	FailFast FailureMode = iota
	FailAtEnd
	BestEffort
)

func New(opts ...Option) *Engine {
	e := &Engine{
		logger:         slog.Default(),
		failMode:       FailFast,
		writer:         write.NewBaseWriter(),
		writeOpts:      write.WriteOptions{CreateDirs: true, Overwrite: true},
		cache:          NewTemplateCache(),
		postprocessors: postprocess.NewChain(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.renderer = &Renderer{
		logger:         e.logger,
		cache:          e.cache,
		postprocessors: e.postprocessors,
		writer:         e.writer,
		writeOpts:      e.writeOpts,
		strict:         e.strict,
	}

	return e
}

// ExpandDir expands every .tmpl file below templateDir and returns the paths
// of the files written.
func (e *Engine) ExpandDir(ctx Context, templateDir string, r macro.Replacements) ([]string, error) {
	return e.renderer.RenderDir(ctx, e.failMode, templateDir, r)
}

// AddPostProcessor adds a post-processor to the processing chain.
// Processors are applied in the order they are added.
func (e *Engine) AddPostProcessor(processor postprocess.Processor) {
	e.postprocessors.Add(processor)
}

func (e *Engine) AddPostProcessorFunc(fn func(filePath string, content []byte) ([]byte, error)) {
	e.postprocessors.AddFunc(fn)
}
