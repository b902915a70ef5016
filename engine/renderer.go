package engine

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/cpcf/macrowiz/macro"
	"github.com/cpcf/macrowiz/postprocess"
	"github.com/cpcf/macrowiz/write"
)

const templateExt = ".tmpl"

type Renderer struct {
	logger         *slog.Logger
	cache          *TemplateCache
	postprocessors *postprocess.Chain
	writer         write.Writer
	writeOpts      write.WriteOptions
	strict         bool
}

func (r *Renderer) RenderDir(ctx Context, failMode FailureMode, templateDir string, table macro.Replacements) ([]string, error) {
	var multiErr MultiError
	var written []string

	err := fs.WalkDir(ctx.TmplFS, templateDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if failMode == FailFast {
				return err
			}
			multiErr.Add(p, "filesystem error", err)
			return nil
		}

		if d.IsDir() || !strings.HasSuffix(p, templateExt) {
			return nil
		}

		outputPath, renderErr := r.renderFile(ctx, templateDir, p, table)
		if renderErr != nil {
			if failMode == FailFast {
				return renderErr
			}
			multiErr.Add(p, "render failed", renderErr)
			return nil
		}
		written = append(written, outputPath)
		return nil
	})
	if err != nil {
		return written, err
	}

	if multiErr.HasErrors() && failMode != BestEffort {
		return written, &multiErr
	}
	for _, e := range multiErr.Errors {
		r.logger.Warn("skipped template", "path", e.Path, "error", e.Err)
	}

	return written, nil
}

func (r *Renderer) renderFile(ctx Context, templateDir, templatePath string, table macro.Replacements) (string, error) {
	r.logger.Debug("expanding template", "path", templatePath)

	tmpl, err := r.cache.Get(ctx.TmplFS, templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to get template %s: %w", templatePath, err)
	}

	text, unresolved := tmpl.Execute(table)
	if len(unresolved) > 0 {
		if r.strict {
			return "", &GenerationError{
				Path:    templatePath,
				Message: "template references unknown placeholders",
				Err:     unresolvedError(unresolved),
			}
		}
		for _, p := range unresolved {
			r.logger.Debug("placeholder left verbatim", "path", templatePath, "line", p.Line, "key", p.Key)
		}
	}

	outputPath, err := r.resolveOutputPath(ctx, templateDir, templatePath, table)
	if err != nil {
		return "", err
	}

	content := []byte(text)
	if r.postprocessors.HasProcessors() {
		processed, err := r.postprocessors.Process(outputPath, content)
		if err != nil {
			r.logger.Warn("post-processing failed", "path", outputPath, "error", err)
		} else {
			content = processed
		}
	}

	if err := r.writer.Write(outputPath, content, r.writeOpts); err != nil {
		return "", fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}

	r.logger.Info("expanded template", "template", templatePath, "output", outputPath)
	return outputPath, nil
}

// resolveOutputPath maps templateDir/a/$safeitemname$.n.tmpl to
// OutputRoot/a/MyMacro.n. Placeholders in the path are expanded.
func (r *Renderer) resolveOutputPath(ctx Context, templateDir, templatePath string, table macro.Replacements) (string, error) {
	rel := strings.TrimPrefix(strings.TrimPrefix(templatePath, templateDir), "/")
	if templateDir == "." {
		rel = templatePath
	}
	rel = strings.TrimSuffix(rel, templateExt)

	expanded, unresolved := Parse(templatePath, rel).Execute(table)
	if len(unresolved) > 0 && r.strict {
		return "", &GenerationError{
			Path:    templatePath,
			Message: "file name references unknown placeholders",
			Err:     unresolvedError(unresolved),
		}
	}

	expanded = path.Clean(expanded)
	if expanded == "." || expanded == ".." || strings.HasPrefix(expanded, "../") || path.IsAbs(expanded) {
		return "", &GenerationError{
			Path:    templatePath,
			Message: fmt.Sprintf("output path %q escapes the output root", expanded),
		}
	}

	return filepath.Join(ctx.OutputRoot, filepath.FromSlash(expanded)), nil
}
