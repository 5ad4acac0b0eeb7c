package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/hcl/v2"
	"github.com/spf13/cobra"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Parse and validate .view files without writing output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runPipeline(cmd, opts, args, true)
			if err != nil {
				return err
			}

			outW := cmd.OutOrStdout()
			totalErrs, totalWarns := 0, 0
			for _, f := range result.Files {
				errs, warns := countDiags(f.Diags)
				totalErrs += errs
				totalWarns += warns
				switch {
				case errs > 0:
					fmt.Fprintln(outW, errStyle.Render("fail")+"  "+f.Path)
				case warns > 0:
					fmt.Fprintln(outW, warnStyle.Render("warn")+"  "+f.Path)
				default:
					fmt.Fprintln(outW, okStyle.Render("ok")+"    "+f.Path)
				}
			}
			fmt.Fprintf(outW, "checked %d files: %d errors, %d warnings\n",
				len(result.Files), totalErrs, totalWarns)

			if totalErrs > 0 {
				return &ExitError{Code: 1, Message: "check failed"}
			}
			return nil
		},
	}
}

func countDiags(diags hcl.Diagnostics) (errs, warns int) {
	for _, d := range diags {
		switch d.Severity {
		case hcl.DiagError:
			errs++
		case hcl.DiagWarning:
			warns++
		}
	}
	return errs, warns
}
