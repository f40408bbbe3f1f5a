/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	apperrors "github.com/moamenhredeen/oascurl/internal/errors"
	"github.com/moamenhredeen/oascurl/internal/generator"
	"github.com/moamenhredeen/oascurl/internal/models"
	"github.com/moamenhredeen/oascurl/internal/validator"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var quiet bool

	checkCmd := &cobra.Command{
		Use:   "check [openapi-spec-file]",
		Short: "Verify every operation has its unix socket curl example",
		Long: `Check loads the spec as an OpenAPI v3 model and reports operations whose
code samples lack the unix socket curl command, carry more than one curl
sample, or hold a curl sample that differs from the generated command.

The command exits with status 1 when any operation is non-compliant.`,
		Args: specFileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			specFile := args[0]
			out := cmd.OutOrStdout()
			cfg := opts.cfg

			v := validator.NewValidator(
				generator.NewGenerator(cfg.SocketPath, cfg.BaseURL), cfg.Extension, cfg.Lang)

			var s *spinner.Spinner
			if isTTY {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
				s.Suffix = fmt.Sprintf(" Building OpenAPI model for %s...", specFile)
				s.Start()
			}
			start := time.Now()
			summary, err := v.CheckFile(specFile)
			if s != nil {
				s.Stop()
			}
			opts.logger.Debug("model checked", "file", specFile, "elapsed", time.Since(start).Round(time.Millisecond))

			if apperrors.Is(err, apperrors.ErrEmptyInput) {
				fmt.Fprintf(out, "%s  File is empty: %s\n", yellow("⚠️"), specFile)
				return nil
			}
			if err != nil {
				return err
			}

			displayFindings(cmd, summary, quiet)

			if summary.NonCompliant > 0 {
				return apperrors.Wrap(apperrors.ErrNonCompliant,
					fmt.Sprintf("%d of %d in %s", summary.NonCompliant, summary.TotalOperations, specFile))
			}
			return nil
		},
	}

	checkCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only list non-compliant operations")
	return checkCmd
}

func displayFindings(cmd *cobra.Command, summary models.CheckSummary, quiet bool) {
	out := cmd.OutOrStdout()

	for _, f := range summary.Findings {
		if f.Compliant {
			if !quiet {
				fmt.Fprintf(out, "%s %s %s\n", green("✓"), f.Method, f.Path)
			}
			continue
		}
		fmt.Fprintf(out, "%s %s %s - %s\n", red("✗"), f.Method, f.Path, f.Problem)
		if f.OperationID != "" {
			fmt.Fprintf(out, "  Operation ID: %s\n", f.OperationID)
		}
	}

	fmt.Fprintf(out, "\n%s\n", white("=== Check Results ==="))
	fmt.Fprintf(out, "Operations:    %d\n", summary.TotalOperations)
	fmt.Fprintf(out, "Compliant:     %s\n", green(summary.Compliant))
	if summary.NonCompliant > 0 {
		fmt.Fprintf(out, "Non-compliant: %s\n", red(summary.NonCompliant))
	} else {
		fmt.Fprintf(out, "Non-compliant: %d\n", summary.NonCompliant)
	}
}
