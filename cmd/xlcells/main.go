// Package main provides the CLI entry point for xlcells.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlcells-go/pkg/xlcells"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/output"
)

// cliFlags holds the values bound to the command's flags.
type cliFlags struct {
	outputPath   string
	format       string
	pretty       bool
	bom          bool
	sheetsDir    string
	includeBlank bool
	sheets       []string
	workers      int
	configPath   string
	verbose      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}
	rootCmd := &cobra.Command{
		Use:   "xlcells [input.xlsx]",
		Short: "Decode Excel worksheets into a table of typed cells",
		Long: `xlcells decodes every cell of an Excel workbook into one row with its
type, value, formula, comment, style and dimensions, and writes JSON or CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
	}

	rootCmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&flags.format, "format", "json", "Output format: json, csv")
	rootCmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&flags.bom, "bom", false, "Prefix CSV output with a UTF-8 byte-order mark")
	rootCmd.Flags().StringVar(&flags.sheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")
	rootCmd.Flags().BoolVar(&flags.includeBlank, "include-blank-cells", false, "Emit cells that have no value or formula")
	rootCmd.Flags().StringArrayVar(&flags.sheets, "sheet", nil, "Sheet to extract (repeatable; default: all)")
	rootCmd.Flags().IntVar(&flags.workers, "workers", 0, "Sheets decoded in parallel (default: GOMAXPROCS)")
	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "YAML configuration file")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log skipped sheets and missing parts to stderr")

	return rootCmd
}

func run(cmd *cobra.Command, args []string, flags *cliFlags) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	opts := cfg.Options()
	if cfg.Verbose {
		opts.Logger = log.New(cmd.ErrOrStderr(), "xlcells: ", log.LstdFlags)
	}

	wb, err := xlcells.Extract(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if cfg.Output != "" {
		if err := writeFile(cfg.Output, wb, cfg); err != nil {
			return err
		}
	} else if cfg.SheetsDir == "" {
		if err := write(cmd.OutOrStdout(), wb, cfg); err != nil {
			return err
		}
	}

	if cfg.SheetsDir != "" {
		if err := writeSheetFiles(wb, cfg.SheetsDir, cfg.Pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}
	return nil
}

func writeFile(path string, wb *models.WorkbookCells, cfg *xlcells.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := write(f, wb, cfg); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeSheetFiles writes each sheet as <dir>/<sheet name>.json, whatever the
// main output format.
func writeSheetFiles(wb *models.WorkbookCells, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		jsonData, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheet.Name+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}
	return nil
}

// resolveConfig starts from the config file, if any, and applies the flags
// the user set explicitly.
func resolveConfig(cmd *cobra.Command, flags *cliFlags) (*xlcells.Config, error) {
	cfg := &xlcells.Config{}
	if flags.configPath != "" {
		loaded, err := xlcells.LoadConfig(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := cmd.Flags().Changed
	if set("output") || cfg.Output == "" {
		cfg.Output = flags.outputPath
	}
	if set("format") || cfg.Format == "" {
		cfg.Format = flags.format
	}
	if set("pretty") {
		cfg.Pretty = flags.pretty
	}
	if set("bom") {
		cfg.BOM = flags.bom
	}
	if set("sheets-dir") || cfg.SheetsDir == "" {
		cfg.SheetsDir = flags.sheetsDir
	}
	if set("include-blank-cells") {
		cfg.IncludeBlankCells = flags.includeBlank
	}
	if set("sheet") {
		cfg.Sheets = flags.sheets
	}
	if set("workers") {
		cfg.Workers = flags.workers
	}
	if set("verbose") {
		cfg.Verbose = flags.verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func write(w io.Writer, wb *models.WorkbookCells, cfg *xlcells.Config) error {
	if cfg.Format == "csv" {
		if err := output.WriteCSV(w, wb.Cells(), output.CSVOptions{BOM: cfg.BOM}); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		return nil
	}

	jsonData, err := output.ToJSON(wb, cfg.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(jsonData)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
