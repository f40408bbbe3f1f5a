/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/moamenhredeen/oascurl/internal/annotator"
	"github.com/moamenhredeen/oascurl/internal/config"
	apperrors "github.com/moamenhredeen/oascurl/internal/errors"
	"github.com/moamenhredeen/oascurl/internal/generator"
	"github.com/moamenhredeen/oascurl/internal/output"
	"github.com/moamenhredeen/oascurl/internal/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootOptions holds flag values shared by the root command and check
type rootOptions struct {
	configFile   string
	verbose      bool
	dryRun       bool
	reportFormat string
	reportFile   string

	v      *viper.Viper
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "oascurl [openapi-spec-file]",
		Short: "Add unix socket curl examples to an OpenAPI spec",
		Long: `oascurl walks every operation of an OpenAPI YAML document and makes sure it
carries exactly one curl code sample that reaches the API over a unix socket.

Existing curl samples are rewritten where they stand, missing ones are added
in front of the other samples, and the file is written back with its key
order intact and multi-line commands as literal blocks.

Examples:
  # Annotate the agent API spec in place
  oascurl api/agent-api.yaml

  # Use another socket and export what changed
  oascurl api/agent-api.yaml --socket /tmp/agent.sock --report json

  # Verify a spec without touching it
  oascurl check api/agent-api.yaml`,
		Args:          specFileArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, opts, args[0])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Config file (default: ./oascurl.toml when present)")
	pf.String("socket", config.DefaultSocketPath, "Unix socket path used in the curl command")
	pf.String("base-url", config.DefaultBaseURL, "Base URL prepended to every path")
	pf.String("extension", config.DefaultExtension, "Operation extension holding the code samples")
	pf.String("lang", config.DefaultLang, "Language label of the generated sample")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Show diagnostic logs")

	_ = opts.v.BindPFlag("socket_path", pf.Lookup("socket"))
	_ = opts.v.BindPFlag("base_url", pf.Lookup("base-url"))
	_ = opts.v.BindPFlag("extension", pf.Lookup("extension"))
	_ = opts.v.BindPFlag("lang", pf.Lookup("lang"))

	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Annotate in memory and report without writing the file")
	rootCmd.Flags().StringVarP(&opts.reportFormat, "report", "o", "", "Report format: json, csv")
	rootCmd.Flags().StringVar(&opts.reportFile, "report-file", "", "Write the report to file (default: stdout)")

	rootCmd.AddCommand(newCheckCmd(opts))
	return rootCmd
}

// Execute runs the command line and exits with its status
func Execute() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	if args == nil {
		// cobra reads os.Args when given nil
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "%s %v\n", red("❌"), err)
	if apperrors.Is(err, apperrors.ErrMissingArgument) {
		fmt.Fprintf(stderr, "Usage: %s\n", cmd.UseLine())
	}
	return apperrors.ExitCode(err)
}

func specFileArg(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return apperrors.ErrMissingArgument
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 spec file, received %d", len(args))
	}
	return nil
}

// load resolves configuration from flags, environment and config file
func (o *rootOptions) load(cmd *cobra.Command) error {
	o.logger = newLogger(cmd.ErrOrStderr(), o.verbose)

	if err := config.ReadFile(o.v, o.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg

	o.logger.Debug("configuration loaded",
		"config_file", o.v.ConfigFileUsed(),
		"socket_path", cfg.SocketPath,
		"base_url", cfg.BaseURL,
		"extension", cfg.Extension,
		"lang", cfg.Lang,
		"indent", cfg.Indent)
	return nil
}

func runAnnotate(cmd *cobra.Command, opts *rootOptions, specFile string) error {
	out := cmd.OutOrStdout()
	if opts.reportFormat != "" && opts.reportFile == "" {
		// stdout carries the report
		out = cmd.ErrOrStderr()
	}
	cfg := opts.cfg
	logger := opts.logger

	var format output.Format
	if opts.reportFormat != "" {
		f, err := output.ParseFormat(opts.reportFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, err)
		}
		format = f
	}

	doc, err := parser.ParseFile(specFile)
	switch {
	case apperrors.Is(err, apperrors.ErrEmptyInput):
		fmt.Fprintf(out, "%s  File is empty: %s\n", yellow("⚠️"), specFile)
		fmt.Fprintln(out, "   Skipping curl example addition. File may need to be downloaded first.")
		return nil
	case apperrors.Is(err, apperrors.ErrMissingPaths):
		fmt.Fprintf(out, "%s  No 'paths' section found in %s\n", yellow("⚠️"), specFile)
		return nil
	case err != nil:
		return err
	}

	for _, item := range doc.PathItems() {
		logger.Debug("path item",
			"path", item.Key,
			"primary_method", annotator.DetermineMethod(item.Value))
	}

	gen := generator.NewGenerator(cfg.SocketPath, cfg.BaseURL)
	a := annotator.NewAnnotator(gen, cfg.Extension, cfg.Lang)

	summary := a.AnnotateDocument(doc, func(event annotator.AnnotateEvent) {
		switch event.Type {
		case annotator.EventAdded:
			fmt.Fprintf(out, "%s Added %s example to %s %s\n",
				green("✅"), cfg.Lang, event.Change.Method, event.Path)
		case annotator.EventUpdated:
			fmt.Fprintf(out, "%s Updated %s example for %s %s\n",
				green("✅"), cfg.Lang, event.Change.Method, event.Path)
		case annotator.EventSkipped:
			logger.Debug("skipping path item that is not a mapping", "path", event.Path)
		}
		if event.Change != nil && event.Change.Recreated {
			logger.Debug("discarded malformed code samples field",
				"path", event.Path,
				"method", event.Change.Method,
				"extension", cfg.Extension)
		}
	})

	switch {
	case !summary.Changed():
		fmt.Fprintf(out, "%s  No changes needed for %s\n", cyan("ℹ️"), specFile)
	case opts.dryRun:
		fmt.Fprintf(out, "\n%s  Dry run: %d added, %d updated, %s left unchanged\n",
			cyan("ℹ️"), summary.Added, summary.Updated, specFile)
	default:
		if err := output.WriteDocument(doc, specFile, cfg.Indent); err != nil {
			return err
		}
		summary.Written = true
		fmt.Fprintf(out, "\n%s Updated file: %s\n", green("✅"), specFile)
	}

	if format != "" {
		if err := output.ExportSummary(cmd.OutOrStdout(), summary, format, opts.reportFile); err != nil {
			return fmt.Errorf("error exporting report: %w", err)
		}
		if opts.reportFile != "" {
			fmt.Fprintf(out, "Report exported to: %s\n", white(opts.reportFile))
		}
	}

	return nil
}
