package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cpcf/macrowiz/macro"
	"github.com/cpcf/macrowiz/reserved"
)

// Wizard is the answer set of the new-macro wizard.
type Wizard struct {
	Kind          macro.Kind           `yaml:"kind"`
	DefineSyntax  bool                 `yaml:"define_syntax"`
	ItemName      string               `yaml:"item_name"`
	RootNamespace string               `yaml:"root_namespace"`
	Templates     string               `yaml:"templates"`
	Output        string               `yaml:"output"`
	Strict        bool                 `yaml:"strict"`
	Parameters    []macro.ParameterDef `yaml:"parameters"`
}

func (w *Wizard) Validate() error {
	var errs []error

	if strings.TrimSpace(w.Templates) == "" {
		errs = append(errs, errors.New("templates directory is required"))
	}

	seen := make(map[string]int, len(w.Parameters))
	for i, p := range w.Parameters {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("parameter %d: name is required", i+1))
			continue
		}
		if prev, dup := seen[p.Name]; dup {
			errs = append(errs, fmt.Errorf("parameter %d: name %q already used by parameter %d", i+1, p.Name, prev+1))
			continue
		}
		seen[p.Name] = i
	}

	return errors.Join(errs...)
}

// Macro returns the macro described by the wizard answers.
func (w *Wizard) Macro() macro.Macro {
	return macro.Macro{
		Kind:         w.Kind,
		DefineSyntax: w.DefineSyntax,
		Source:       macro.Parameters(w.Parameters),
	}
}

// Replacements builds the full replacement table: reserved parameters first,
// then the macro placeholders.
func (w *Wizard) Replacements(opts reserved.Options) macro.Replacements {
	r := make(macro.Replacements)
	opts.ItemName = w.ItemName
	opts.RootNamespace = w.RootNamespace
	reserved.Fill(r, opts)
	w.Macro().FillReplacements(r)
	return r
}

// Resolve makes relative template and output paths relative to the directory
// holding the configuration file.
func (w *Wizard) Resolve(configPath string) {
	base := filepath.Dir(configPath)
	if w.Templates != "" && !filepath.IsAbs(w.Templates) {
		w.Templates = filepath.Join(base, w.Templates)
	}
	if w.Output == "" {
		w.Output = "."
	}
	if !filepath.IsAbs(w.Output) {
		w.Output = filepath.Join(base, w.Output)
	}
}

// LoadWizard reads and validates a wizard file. Relative paths in the file
// are resolved against its directory.
func LoadWizard(path string) (*Wizard, error) {
	var w Wizard
	if err := LoadYAML(path, &w); err != nil {
		return nil, err
	}
	w.Resolve(path)
	return &w, nil
}
