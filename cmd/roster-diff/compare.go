package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aanand-mishra/roster-diff/internal/compare"
	"github.com/aanand-mishra/roster-diff/internal/report"
	"github.com/aanand-mishra/roster-diff/internal/roster"
	"github.com/aanand-mishra/roster-diff/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

// compareFlags holds the flag values of the compare command.
type compareFlags struct {
	Mode   string `validate:"required,oneof=email_symmetric email_one_directional name_keyed"`
	Format string `validate:"required,oneof=text json"`
}

var cmpFlags compareFlags

var compareCmd = &cobra.Command{
	Use:   "compare FILE1 FILE2",
	Short: "Compare two roster files (CSV or XLSX)",
	Long: `Compares FILE1 and FILE2 and prints the report.

Modes:
  email_symmetric        emails that appear in only one file
  email_one_directional  students in FILE2 whose email is missing from FILE1
  name_keyed             match by name and flag differing emails`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare(cmd.OutOrStdout(), args[0], args[1], cmpFlags)
	},
}

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List comparison modes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range types.Modes {
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", m, m.Description())
		}
	},
}

func init() {
	compareCmd.Flags().StringVarP(&cmpFlags.Mode, "mode", "m", string(types.ModeEmailSymmetric), "comparison mode")
	compareCmd.Flags().StringVarP(&cmpFlags.Format, "format", "f", "text", "output format: text or json")
}

func runCompare(out io.Writer, path1, path2 string, flags compareFlags) error {
	if err := validator.New().Struct(flags); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	mode := types.Mode(flags.Mode)

	tableA, err := readFile(path1)
	if err != nil {
		return guidance(err)
	}
	tableB, err := readFile(path2)
	if err != nil {
		return guidance(err)
	}

	ra, rb, err := roster.LoadPair(tableA, tableB, roster.KindFor(mode))
	if err != nil {
		return guidance(err)
	}
	slog.Debug("rosters loaded",
		slog.String("mode", string(mode)),
		slog.Int("file1_rows", ra.Len()),
		slog.Int("file2_rows", rb.Len()))

	res, err := compare.Compare(ra, rb, mode)
	if err != nil {
		return err
	}
	rep := report.Build(res)

	if flags.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	_, err = io.WriteString(out, report.RenderText(rep))
	return err
}

func readFile(path string) (roster.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return roster.Table{}, err
	}
	defer f.Close()
	return roster.ReadTable(f, path)
}

// guidance rewrites expected input errors into what the user should fix.
func guidance(err error) error {
	var missing *roster.MissingColumnsError
	if errors.As(err, &missing) {
		var lines []string
		lines = append(lines, "Missing required columns!")
		if len(missing.File1) > 0 {
			lines = append(lines, "File 1 is missing: "+strings.Join(missing.File1, ", "))
		}
		if len(missing.File2) > 0 {
			lines = append(lines, "File 2 is missing: "+strings.Join(missing.File2, ", "))
		}
		lines = append(lines, "Required columns: "+strings.Join(roster.RequiredColumns, ", "))
		return errors.New(strings.Join(lines, "\n"))
	}
	var parseErr *roster.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w\n%s", err, roster.ExpectedShape)
	}
	return err
}
