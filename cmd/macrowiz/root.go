package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cpcf/macrowiz/config"
	"github.com/cpcf/macrowiz/engine"
	"github.com/cpcf/macrowiz/macro"
	"github.com/cpcf/macrowiz/postprocess"
	"github.com/cpcf/macrowiz/processors"
	"github.com/cpcf/macrowiz/reserved"
	"github.com/cpcf/macrowiz/write"
)

var macroSourceExts = []string{".n", ".nproj"}

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "macrowiz",
		Short:         "Generate macro boilerplate from item templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "wizard.yaml", "wizard configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newTableCmd(opts),
		newGenerateCmd(opts),
		newCheckCmd(opts),
		newKindsCmd(),
		newReservedCmd(),
	)

	return rootCmd
}

func newTableCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the filled replacement table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := config.LoadWizard(opts.configPath)
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), w.Replacements(reserved.Options{}), format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text or yaml")
	return cmd
}

func printTable(out io.Writer, r macro.Replacements, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(map[string]string(r))
	case "text":
		for _, key := range r.Keys() {
			if _, err := fmt.Fprintf(out, "%s\t%s\n", key, r[key]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

type generateOptions struct {
	output    string
	strict    bool
	crlf      bool
	overwrite bool
	backup    bool
	dryRun    bool
	failMode  string
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	gen := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Expand the item templates into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := config.LoadWizard(opts.configPath)
			if err != nil {
				return err
			}
			if gen.output != "" {
				w.Output = gen.output
			}
			if cmd.Flags().Changed("strict") {
				w.Strict = gen.strict
			}

			failMode, err := parseFailureMode(gen.failMode)
			if err != nil {
				return err
			}

			var writer write.Writer = write.NewBaseWriter()
			if gen.dryRun {
				writer = write.NewDryRunWriter()
			}

			eng := engine.New(
				engine.WithLogger(slog.Default()),
				engine.WithStrict(w.Strict),
				engine.WithFailureMode(failMode),
				engine.WithWriter(writer),
				engine.WithWriteOptions(write.WriteOptions{
					CreateDirs: true,
					Overwrite:  gen.overwrite,
					Backup:     gen.backup,
					Atomic:     true,
				}),
			)
			addProcessors(eng, gen.crlf)

			ctx := engine.NewContext(os.DirFS(w.Templates), w.Output)
			written, err := eng.ExpandDir(ctx, ".", w.Replacements(reserved.Options{}))
			for _, path := range written {
				prefix := "wrote"
				if gen.dryRun {
					prefix = "would write"
				}
				fmt.Fprintln(cmd.OutOrStdout(), prefix, path)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&gen.output, "out", "", "output directory (overrides the configuration)")
	cmd.Flags().BoolVar(&gen.strict, "strict", false, "fail on placeholders missing from the table")
	cmd.Flags().BoolVar(&gen.crlf, "crlf", false, "write CRLF line endings")
	cmd.Flags().BoolVar(&gen.overwrite, "overwrite", false, "replace existing files")
	cmd.Flags().BoolVar(&gen.backup, "backup", false, "keep a .bak copy of replaced files")
	cmd.Flags().BoolVar(&gen.dryRun, "dry-run", false, "report the files without writing them")
	cmd.Flags().StringVar(&gen.failMode, "fail-mode", "fast", "fast, at-end or best-effort")
	return cmd
}

func addProcessors(eng *engine.Engine, crlf bool) {
	ending := processors.LF
	if crlf {
		ending = processors.CRLF
	}
	for _, p := range []postprocess.Processor{
		processors.TrimTrailingSpace(),
		processors.EnsureFinalNewline(),
		processors.LineEndings(ending),
	} {
		eng.AddPostProcessor(postprocess.ForExtensions(p, macroSourceExts...))
	}
}

func parseFailureMode(s string) (engine.FailureMode, error) {
	switch s {
	case "fast", "":
		return engine.FailFast, nil
	case "at-end":
		return engine.FailAtEnd, nil
	case "best-effort":
		return engine.BestEffort, nil
	default:
		return 0, fmt.Errorf("unknown failure mode %q", s)
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report template placeholders the wizard cannot fill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := config.LoadWizard(opts.configPath)
			if err != nil {
				return err
			}

			result := engine.Check(os.DirFS(w.Templates), ".", w.Replacements(reserved.Options{}), w.Strict)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			if err := enc.Encode(result); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("%d template problem(s)", len(result.Errors))
			}
			return nil
		},
	}
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the macro kinds and their implicit parameters",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, k := range macro.Kinds() {
				implicit := macro.JoinRendered(macro.NewVariant(k, nil).ParameterSet(), macro.RenderMethodParameter)
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", k, implicit)
			}
		},
	}
}

func newReservedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reserved",
		Short: "List the reserved template parameters",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, kv := range reserved.Describe() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", kv[0], kv[1])
			}
		},
	}
}
