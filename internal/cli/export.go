package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agustinfitipaldi/blood/internal/errors"
	"github.com/agustinfitipaldi/blood/internal/export"
	"github.com/agustinfitipaldi/blood/internal/ui"
)

var (
	exportComponentFlag string
	exportOutputFlag    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as CSV",
	Long: `Export measurement history as CSV, one row per entry.

Writes to stdout by default so the output can be piped.

Examples:
  blood export
  blood export --component HbA1c
  blood export --output panel.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportCommand(exportComponentFlag, exportOutputFlag)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportComponentFlag, "component", "", "export only the named component")
	exportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func exportCommand(componentName, output string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrExport,
				"Cannot create output file: "+output,
				"Check the path and directory permissions")
		}
		defer f.Close()
		out = f
	}

	rows, err := export.WriteCSV(context.Background(), out, st, componentName)
	if err != nil {
		return err
	}

	if output != "" {
		fmt.Printf("%s Wrote %d entries to %s\n", ui.SymbolSuccess, rows, output)
	}
	return nil
}
