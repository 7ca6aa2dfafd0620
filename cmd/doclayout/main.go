// Package main provides the CLI entry point for doclayout-go.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
	"github.com/ukaji3/doclayout-go/pkg/doclayout"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/output"
)

var (
	outputPath string
	asJSON     bool
	pretty     bool
	mode       string
	configPath string
	envFile    string
	verbosity  int

	workers  int
	timeout  time.Duration
	xlsxPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "doclayout",
		Short: "Predict DOCX pagination and report layout defects",
		Long: `doclayout-go simulates how a DOCX document paginates and reports
layout defects (orphan headings, sparse pages, misplaced images, split
tables, unbalanced column widths) without rendering it.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Write JSON instead of the text report")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "standard", "Analysis mode: light, standard, verbose")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "JSON file overriding geometry and thresholds")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Optional .env file with DOCLAYOUT_* overrides")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "Log verbosity on stderr")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [input.docx]",
		Short: "Analyze one document",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [dir|glob]",
		Short: "Analyze every DOCX in a directory or glob",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&workers, "workers", 0, "Documents analysed at once (default: DOCLAYOUT_WORKERS or one per CPU)")
	batchCmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Per-document time limit (0 disables)")
	batchCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write a summary workbook to this path")

	rootCmd.AddCommand(analyzeCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.New(log.New(os.Stderr, "doclayout: ", log.LstdFlags))
}

// analysisOptions builds the options shared by both subcommands.
func analysisOptions() (doclayout.Options, config.Config, error) {
	analysisMode, ok := doclayout.ParseMode(mode)
	if !ok {
		return doclayout.Options{}, config.Config{}, fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", mode)
	}

	cfg, err := doclayout.LoadConfig(configPath, envFile)
	if err != nil {
		return doclayout.Options{}, config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	opts := doclayout.Options{
		Mode:   analysisMode,
		Config: &cfg,
		Logger: newLogger(),
	}
	return opts, cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts, _, err := analysisOptions()
	if err != nil {
		return err
	}

	report, err := doclayout.Analyze(inputPath, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return writeOutput(func(w io.Writer) error {
		if !asJSON {
			return output.WriteText(w, report)
		}
		data, err := output.ToJSON(report, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	})
}

func runBatch(cmd *cobra.Command, args []string) error {
	opts, cfg, err := analysisOptions()
	if err != nil {
		return err
	}

	paths, err := doclayout.CollectInputs(args[0])
	if err != nil {
		return fmt.Errorf("collecting inputs: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .docx files in %s", args[0])
	}

	n := workers
	if n == 0 {
		n = cfg.Workers
	}
	opts.Logger.Info("starting batch", "files", len(paths), "workers", n, "timeout", timeout)

	results := doclayout.AnalyzeBatch(context.Background(), paths, opts, doclayout.BatchOptions{
		Workers: n,
		Timeout: timeout,
	})

	if xlsxPath != "" {
		if err := output.WriteSummaryWorkbook(xlsxPath, results); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}

	return writeOutput(func(w io.Writer) error {
		if !asJSON {
			return writeBatchText(w, results)
		}
		data, err := output.BatchToJSON(results, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	})
}

// writeOutput sends the rendered result to --output or stdout.
func writeOutput(render func(io.Writer) error) error {
	if outputPath == "" {
		return render(os.Stdout)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeBatchText(w io.Writer, results []models.BatchResult) error {
	failed := 0
	for _, res := range results {
		name := filepath.Base(res.Path)
		if res.Report == nil {
			failed++
			if _, err := fmt.Fprintf(w, "%-40s ERROR %s\n", name, res.Error); err != nil {
				return err
			}
			continue
		}
		s := res.Report.Summary
		if _, err := fmt.Fprintf(w, "%-40s %3d pages  WARN %3d  SUGGEST %3d  INFO %3d\n",
			name, len(res.Report.Pages), s[models.SeverityWarn], s[models.SeveritySuggest], s[models.SeverityInfo]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d documents, %d failed\n", len(results), failed)
	return err
}
