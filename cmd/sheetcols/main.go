package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"sheetCols/internal/config"
	"sheetCols/internal/excel"
	"sheetCols/internal/logger"
	"sheetCols/internal/report"
	"sheetCols/internal/selection"
	"sheetCols/internal/table"

	"github.com/spf13/cobra"
)

type promptFunc func(columns []string, opts selection.Options) (selection.Selection, error)

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	prompt promptFunc
}

// usageError marks a wrong command line; the usage text is printed with it.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func main() {
	a := &app{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		prompt: selection.Prompt,
	}
	os.Exit(execute(a, os.Args[1:]))
}

// execute runs the command line and returns the process exit code.
func execute(a *app, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(a.out, "Error: %v\n\n", err)
		fmt.Fprint(a.out, cmd.UsageString())
		return 1
	}

	fmt.Fprintf(a.out, "Error: %v\n", err)
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sheetcols <excel_file_path>",
		Short: "Keep only the columns you choose from an Excel file",
		Long: `sheetcols reads an Excel file, lets you select which columns to keep
and saves a filtered version with '_filtered' appended to the name.
Number formats (percentages, currency, dates) of the kept columns are preserved.
Supported inputs are .xlsx and .xlsm workbooks; legacy .xls files must be
saved as .xlsx first.`,
		Example: `  sheetcols data.xlsx
  sheetcols /path/to/your/file.xlsx
  sheetcols ~/Documents/budget.xlsm`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &usageError{err: errors.New("no Excel file specified")}
			}
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			if err := logger.Init(cfg.Log.File, cfg.Log.Level); err != nil {
				fmt.Fprintf(a.errOut, "Warning: logging disabled: %v\n", err)
			}
			defer logger.Close()

			if err := a.run(cfg, args[0]); err != nil {
				logger.Error("Run failed", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "path to the config file")

	return cmd
}

func (a *app) run(cfg *config.Config, inputFile string) error {
	logger.Info("Starting column selection", "input_file", inputFile)

	if err := excel.ValidateInputFile(inputFile); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Reading Excel file: %s\n", inputFile)

	src, err := excel.ReadTable(inputFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nFile loaded successfully! Found %d rows and %d columns.\n\n",
		src.RowCount(), src.ColumnCount())

	formats, err := excel.ExtractFormats(inputFile, src.Columns)
	if err != nil {
		return err
	}
	if err := report.Columns(a.out, src, formats); err != nil {
		return err
	}
	fmt.Fprintln(a.out)

	selected, err := a.prompt(src.Columns, selection.Options{
		Input:     a.in,
		Output:    a.out,
		PageSize:  cfg.Prompt.PageSize,
		AltScreen: cfg.Prompt.AltScreen,
		Preselect: selection.DefaultPreselect,
	})
	if errors.Is(err, selection.ErrNoColumnsSelected) {
		logger.Info("No columns selected, nothing written")
		fmt.Fprintln(a.out, "\nNo columns selected. Exiting.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nSelected %d column(s): %s\n", len(selected), selected)

	filtered, err := table.Project(src, selected)
	if err != nil {
		return err
	}

	outputFile := excel.OutputPath(inputFile)
	fmt.Fprintf(a.out, "\nSaving filtered file to: %s\n", outputFile)

	if err := excel.WriteTable(filtered, outputFile); err != nil {
		return err
	}

	err = excel.ApplyFormats(outputFile, filtered.Columns, formats, filtered.RowCount())
	if err := a.formatResult(cfg, err); err != nil {
		return err
	}

	logger.Info("Filtered file saved",
		"output_file", outputFile,
		"rows", filtered.RowCount(),
		"columns", filtered.ColumnCount())
	fmt.Fprintf(a.out, "✓ Success! Filtered file saved with %d rows and %d columns.\n",
		filtered.RowCount(), filtered.ColumnCount())
	return nil
}

// formatResult applies the format.on_error policy: with "warn" a failed
// format pass leaves a valid but unformatted file and the run succeeds.
func (a *app) formatResult(cfg *config.Config, err error) error {
	if err == nil {
		return nil
	}
	if cfg.Format.OnError != config.OnErrorWarn {
		return err
	}

	logger.Warn("Number formats not applied", "error", err)
	fmt.Fprintf(a.out, "Warning: number formats were not applied: %v\n", err)
	return nil
}
