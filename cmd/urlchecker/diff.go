package main

import (
	"fmt"
	"os"

	"github.com/aleister1102/urlchecker/internal/common"
	"github.com/aleister1102/urlchecker/internal/differ"
	"github.com/aleister1102/urlchecker/internal/reporter"
	"github.com/spf13/cobra"
)

func newDiffCommand(a *app) *cobra.Command {
	var outputPath, title string

	diffCmd := &cobra.Command{
		Use:   "diff <old-file> <new-file>",
		Short: "Render an HTML diff of two local files",
		Long: `Render the same HTML diff document a check produces, from two local files.
Nothing is fetched, stored or sent.

Examples:
  urlchecker diff old.js new.js > diff.html
  urlchecker diff -o report.html --title https://example.com/app.js old.js new.js`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			previous, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			current, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			renderer, err := reporter.NewHtmlDiffRenderer(a.cfg.DiffReporterConfig.ReportTitle, a.logger)
			if err != nil {
				return err
			}
			engine, err := differ.NewDiffEngine(differ.NewDiffConfig(a.cfg.DiffReporterConfig), renderer, a.logger)
			if err != nil {
				return err
			}

			artifact, err := engine.RenderContent(title, previous, current)
			if err != nil {
				return &exitError{code: ExitCycleFailed, err: err}
			}

			if outputPath == "" {
				_, err = cmd.OutOrStdout().Write(artifact.Document)
				return err
			}
			fm := common.NewFileManager(a.logger)
			if err := fm.WriteFileAtomic(cmd.Context(), outputPath, artifact.Document, reporter.FilePermissions); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (+%d -%d)\n", outputPath, artifact.LinesAdded, artifact.LinesDeleted)
			return nil
		},
	}

	diffCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the document to this file instead of stdout")
	diffCmd.Flags().StringVar(&title, "title", "", "resource name shown in the document")
	return diffCmd
}
