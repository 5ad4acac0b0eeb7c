package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/viewgen/viewgen/internal/cache"
	"github.com/viewgen/viewgen/internal/codegen"
	"github.com/viewgen/viewgen/internal/ctxlog"
	"github.com/viewgen/viewgen/internal/fsutil"
	"github.com/viewgen/viewgen/internal/parser"
)

// Run executes the generate pipeline: discover sources, parse each one,
// generate code and write the outputs. With CheckOnly set, outputs are
// produced but not written. Diagnostics never abort the run; they are
// collected per file and reported in the Result.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	paths, err := fsutil.FindSourceFiles(a.config.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to discover source files: %w", err)
	}
	a.logger.Debug("Source files discovered.", "count", len(paths))

	var store *cache.Cache
	if !a.config.NoCache {
		dir, err := cache.Dir(a.config.CacheDir)
		if err == nil {
			store, err = cache.Open(ctx, dir)
		}
		if err != nil {
			// The cache is an optimization; a broken one must not block
			// generation.
			a.logger.Warn("Cache unavailable, generating without it.", "error", err)
			store = nil
		}
	}
	if store != nil {
		defer store.Close()
	}

	result := &Result{Sources: map[string]*hcl.File{}}
	for _, path := range paths {
		fr, err := a.processFile(ctxlog.With(ctx, "source", path), store, path, result.Sources)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, fr)
	}
	return result, nil
}

func (a *App) processFile(ctx context.Context, store *cache.Cache, path string, sources map[string]*hcl.File) (FileResult, error) {
	fr := FileResult{Path: path, OutputPath: a.outputPath(path)}

	src, err := os.ReadFile(path)
	if err != nil {
		return fr, fmt.Errorf("failed to read source file: %w", err)
	}
	sources[path] = &hcl.File{Bytes: src}
	hash := cache.Hash(src)

	if store != nil {
		output, ok, err := store.Lookup(ctx, path, hash)
		if err != nil {
			a.logger.Warn("Cache lookup failed.", "path", path, "error", err)
		} else if ok {
			a.logger.Debug("Cache hit.", "path", path)
			fr.Output = output
			fr.FromCache = true
			return fr, a.writeOutput(fr)
		}
	}

	entities, warnDiags := parser.ParseFile(path, src)
	fr.Diags = append(fr.Diags, warnDiags...)

	gen := codegen.New(a.catalog, a.manifest.Package, a.manifest.Header)
	output, genDiags := gen.File(path, entities)
	fr.Diags = append(fr.Diags, genDiags...)
	fr.Output = output

	if fr.Diags.HasErrors() {
		a.logger.Debug("Generation produced errors.", "path", path)
		return fr, nil
	}

	if store != nil {
		if err := store.Store(ctx, path, hash, output); err != nil {
			a.logger.Warn("Cache store failed.", "path", path, "error", err)
		}
	}
	return fr, a.writeOutput(fr)
}

func (a *App) writeOutput(fr FileResult) error {
	if a.config.CheckOnly || len(fr.Output) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(fr.OutputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(fr.OutputPath, fr.Output, 0o644); err != nil {
		return fmt.Errorf("failed to write generated file: %w", err)
	}
	a.logger.Info("Generated.", "source", fr.Path, "output", fr.OutputPath)
	return nil
}

// outputPath maps a source path to its generated sibling under the
// manifest's output directory. ui/main_window.view becomes
// <output_dir>/main_window_view.go.
func (a *App) outputPath(srcPath string) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), fsutil.SourceExt)
	return filepath.Join(a.config.ProjectDir, a.manifest.OutputDir, base+"_view.go")
}
