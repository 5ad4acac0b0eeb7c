package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/viewgen/viewgen/internal/app"
)

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [path]",
		Short: "Generate Go code from .view files",
		Long: `Generate parses every .view file under the given path (default:
the project directory) and writes the generated Go files into the
output directory configured in viewgen.hcl.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runPipeline(cmd, opts, args, false)
			if err != nil {
				return err
			}
			if result.HasErrors() {
				return &ExitError{Code: 1, Message: "generation failed, see diagnostics above"}
			}
			return nil
		},
	}
}

// runPipeline is the shared body of generate and check.
func runPipeline(cmd *cobra.Command, opts *options, args []string, checkOnly bool) (*app.Result, error) {
	sourcePath := opts.projectDir
	if len(args) > 0 {
		sourcePath = args[0]
	}

	cfg, err := app.NewConfig(app.Config{
		SourcePath: sourcePath,
		ProjectDir: opts.projectDir,
		LogFormat:  opts.logFormat,
		LogLevel:   opts.logLevel,
		CacheDir:   opts.cacheDir,
		NoCache:    opts.noCache,
		CheckOnly:  checkOnly,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	a, err := app.NewApp(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, fmt.Errorf("startup failed: %w", err)
	}

	result, err := a.Run(cmd.Context())
	if err != nil {
		return nil, err
	}

	writeDiagnostics(cmd, result)
	return result, nil
}

// writeDiagnostics renders every diagnostic of a run with source snippets.
func writeDiagnostics(cmd *cobra.Command, result *app.Result) {
	diags := result.Diags()
	if len(diags) == 0 {
		return
	}
	color := false
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	wr := hcl.NewDiagnosticTextWriter(cmd.ErrOrStderr(), result.Sources, 78, color)
	wr.WriteDiagnostics(diags)
}
