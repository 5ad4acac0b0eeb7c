package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/hcl/v2"

	"github.com/viewgen/viewgen/internal/catalog"
	"github.com/viewgen/viewgen/internal/ctxlog"
	"github.com/viewgen/viewgen/internal/manifest"
)

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	manifest *manifest.Manifest
	catalog  *catalog.Catalog
}

// NewApp is the constructor for the main application. It configures an
// isolated logger, loads the project manifest and applies its catalogs.
func NewApp(outW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	m, err := manifest.Load(ctx, cfg.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load project manifest: %w", err)
	}

	cat := &catalog.Catalog{}
	for _, path := range m.CatalogPaths {
		loaded, err := catalog.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat.Merge(loaded)
	}
	logger.Debug("Catalogs applied.", "count", len(m.CatalogPaths))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		manifest: m,
		catalog:  cat,
	}, nil
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Manifest returns the resolved project manifest. This is primarily for
// testing.
func (a *App) Manifest() *manifest.Manifest { return a.manifest }

// FileResult is the outcome of processing one source file.
type FileResult struct {
	Path       string
	OutputPath string
	Output     []byte
	Diags      hcl.Diagnostics
	FromCache  bool
}

// Result aggregates a whole run.
type Result struct {
	Files []FileResult

	// Sources feeds hcl's diagnostic writer with snippet bytes.
	Sources map[string]*hcl.File
}

// Diags returns every diagnostic of the run in file order.
func (r *Result) Diags() hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, f := range r.Files {
		diags = append(diags, f.Diags...)
	}
	return diags
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *Result) HasErrors() bool {
	return r.Diags().HasErrors()
}
