package cli

import (
	"github.com/spf13/cobra"

	"github.com/viewgen/viewgen/internal/scaffold"
)

func newInitCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init <module-path>",
		Short: "Initialize a viewgen project",
		Long: `Init writes a starter viewgen.hcl, an example catalog and an
example view into the target directory. The module path names the Go
module the generated catalog imports refer to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scaffold.Init(cmd.OutOrStdout(), dir, args[0]); err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to initialize.")
	return cmd
}
