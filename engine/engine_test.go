package engine

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cpcf/macrowiz/macro"
	"github.com/cpcf/macrowiz/postprocess"
	"github.com/cpcf/macrowiz/write"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTable() macro.Replacements {
	r := macro.Replacements{
		"$safeitemname$":  "Trace",
		"$rootnamespace$": "Company.Macros",
	}
	macro.Macro{
		Kind:         macro.MethodAttribute,
		DefineSyntax: false,
		Source:       macro.Parameters{{Name: "level", Type: "int", DefaultValue: "1"}},
	}.FillReplacements(r)
	return r
}

const macroTemplate = `namespace $rootnamespace$
{
  [MacroUsage(MacroPhase.WithTypedMembers, MacroTargets.Method)]
  macro $safeitemname$($MacroParametersDefinition$) $Syntax$
  {
    $safeitemname$Impl.DoTransform($ParametersReference$)
  }
}
`

func TestEngineExpandDir(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/$safeitemname$.n.tmpl": {Data: []byte(macroTemplate)},
		"templates/impl/Impl.n.tmpl":      {Data: []byte("module $safeitemname$Impl {}\n")},
		"templates/README.md":             {Data: []byte("not a template")},
	}
	outDir := t.TempDir()

	eng := New(WithLogger(quietLogger()))
	written, err := eng.ExpandDir(NewContext(fsys, outDir), "templates", testTable())
	if err != nil {
		t.Fatalf("ExpandDir failed: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files written, got %v", written)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "Trace.n"))
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	expected := `namespace Company.Macros
{
  [MacroUsage(MacroPhase.WithTypedMembers, MacroTargets.Method)]
  macro Trace(typeBuilder : TypeBuilder, method : ClassMember.Function, level : int = 1) 
  {
    TraceImpl.DoTransform(typeBuilder, method, level)
  }
}
`
	if string(content) != expected {
		t.Errorf("Output mismatch.\nExpected: %q\nGot: %q", expected, string(content))
	}

	impl, err := os.ReadFile(filepath.Join(outDir, "impl", "Impl.n"))
	if err != nil {
		t.Fatalf("Failed to read nested output: %v", err)
	}
	if string(impl) != "module TraceImpl {}\n" {
		t.Errorf("nested output = %q", impl)
	}

	if _, err := os.Stat(filepath.Join(outDir, "README.md")); !os.IsNotExist(err) {
		t.Errorf("non-template file should not be copied, stat err = %v", err)
	}
}

func TestEnginePostProcessors(t *testing.T) {
	fsys := fstest.MapFS{
		"t/Macro.n.tmpl": {Data: []byte("macro M($Syntax$)")},
	}
	dry := write.NewDryRunWriter()

	eng := New(WithLogger(quietLogger()), WithWriter(dry))
	eng.AddPostProcessor(postprocess.ForExtensions(postprocess.ProcessorFunc(
		func(_ string, content []byte) ([]byte, error) {
			return bytes.ToUpper(content), nil
		}), ".n"))
	eng.AddPostProcessorFunc(func(_ string, _ []byte) ([]byte, error) {
		return nil, errors.New("broken")
	})

	if _, err := eng.ExpandDir(NewContext(fsys, "out"), "t", testTable()); err != nil {
		t.Fatalf("ExpandDir failed: %v", err)
	}

	got := string(dry.Files[filepath.Join("out", "Macro.n")])
	if got != "macro M()" {
		t.Errorf("failed post-processing should keep unprocessed content, got %q", got)
	}
}

func TestEngineStrictUnresolved(t *testing.T) {
	fsys := fstest.MapFS{
		"t/Macro.n.tmpl": {Data: []byte("macro $safeitemname$($Missing$)")},
	}

	lenient := New(WithLogger(quietLogger()), WithWriter(write.NewDryRunWriter()))
	if _, err := lenient.ExpandDir(NewContext(fsys, "out"), "t", testTable()); err != nil {
		t.Fatalf("lenient ExpandDir failed: %v", err)
	}

	strict := New(WithLogger(quietLogger()), WithWriter(write.NewDryRunWriter()), WithStrict(true))
	_, err := strict.ExpandDir(NewContext(fsys, "out"), "t", testTable())
	if !errors.Is(err, ErrUnresolvedPlaceholder) {
		t.Fatalf("expected ErrUnresolvedPlaceholder, got %v", err)
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Path != "t/Macro.n.tmpl" {
		t.Errorf("expected GenerationError for t/Macro.n.tmpl, got %v", err)
	}
	if !strings.Contains(err.Error(), "$Missing$") {
		t.Errorf("error should name the placeholder: %v", err)
	}
}

func TestEngineFailureModes(t *testing.T) {
	fsys := fstest.MapFS{
		"t/good.n.tmpl": {Data: []byte("ok")},
		"t/bad.n.tmpl":  {Data: []byte("$Missing$")},
	}

	tests := []struct {
		mode        FailureMode
		wantErr     bool
		wantWritten int
	}{
		{FailFast, true, 0},
		{FailAtEnd, true, 1},
		{BestEffort, false, 1},
	}

	for _, tt := range tests {
		dry := write.NewDryRunWriter()
		eng := New(WithLogger(quietLogger()), WithWriter(dry), WithStrict(true), WithFailureMode(tt.mode))

		_, err := eng.ExpandDir(NewContext(fsys, "out"), "t", testTable())
		if (err != nil) != tt.wantErr {
			t.Errorf("mode %d: err = %v, wantErr %v", tt.mode, err, tt.wantErr)
		}
		if len(dry.Files) != tt.wantWritten {
			t.Errorf("mode %d: wrote %d files, want %d", tt.mode, len(dry.Files), tt.wantWritten)
		}
		if tt.mode == FailAtEnd {
			var multi *MultiError
			if !errors.As(err, &multi) || len(multi.Errors) != 1 {
				t.Errorf("expected MultiError with one entry, got %v", err)
			}
			if !errors.Is(err, ErrUnresolvedPlaceholder) {
				t.Errorf("MultiError should unwrap to ErrUnresolvedPlaceholder")
			}
		}
	}
}

func TestEngineOutputPathEscape(t *testing.T) {
	fsys := fstest.MapFS{
		"t/$dir$/x.n.tmpl": {Data: []byte("x")},
	}
	eng := New(WithLogger(quietLogger()), WithWriter(write.NewDryRunWriter()))

	_, err := eng.ExpandDir(NewContext(fsys, "out"), "t", macro.Replacements{"$dir$": "../.."})
	if err == nil || !strings.Contains(err.Error(), "escapes the output root") {
		t.Fatalf("expected escape error, got %v", err)
	}
}

func TestEngineNoOverwrite(t *testing.T) {
	fsys := fstest.MapFS{
		"t/Macro.n.tmpl": {Data: []byte("new")},
	}
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outDir, "Macro.n"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	eng := New(WithLogger(quietLogger()), WithWriteOptions(write.WriteOptions{CreateDirs: true}))
	_, err := eng.ExpandDir(NewContext(fsys, outDir), "t", nil)
	if err == nil || !strings.Contains(err.Error(), "overwrite is false") {
		t.Fatalf("expected overwrite error, got %v", err)
	}
}

func TestTemplateCache(t *testing.T) {
	fsys := fstest.MapFS{
		"a.tmpl": {Data: []byte("$x$")},
	}
	cache := NewTemplateCache()

	first, err := cache.Get(fsys, "a.tmpl")
	if err != nil {
		t.Fatal(err)
	}
	second, _ := cache.Get(fsys, "a.tmpl")
	if first != second {
		t.Error("expected cached template to be reused")
	}

	fsys["a.tmpl"] = &fstest.MapFile{Data: []byte("$y$")}
	third, _ := cache.Get(fsys, "a.tmpl")
	if third == first {
		t.Error("expected changed content to be reparsed")
	}
	if cache.Len() != 1 {
		t.Errorf("cache.Len() = %d", cache.Len())
	}

	if _, err := cache.Get(fsys, "missing.tmpl"); err == nil {
		t.Error("expected error for missing template")
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Error("expected empty cache after Clear")
	}
}
