package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// options holds the persistent flag values shared by every subcommand.
type options struct {
	logLevel   string
	logFormat  string
	projectDir string
	cacheDir   string
	noCache    bool
}

// Execute builds the command tree and runs it against args.
func Execute(outW, errW io.Writer, args []string) error {
	root := newRootCmd(outW, errW)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "viewgen",
		Short:         "viewgen compiles declarative .view widget trees into Go code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format: 'text' or 'json'.")
	pf.StringVarP(&opts.projectDir, "project-dir", "C", ".", "Directory containing viewgen.hcl.")
	pf.StringVar(&opts.cacheDir, "cache-dir", "", "Override the generation cache directory.")
	pf.BoolVar(&opts.noCache, "no-cache", false, "Disable the generation cache.")

	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())
	return root
}
