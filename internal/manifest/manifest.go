// Package manifest loads the optional viewgen.hcl project manifest: the
// generator settings and the catalog files to apply. A missing manifest
// yields the defaults, so a bare directory of .view files still compiles.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/viewgen/viewgen/internal/ctxlog"
)

// Filename is the manifest file looked up in the project directory.
const Filename = "viewgen.hcl"

// Manifest is the resolved project configuration.
type Manifest struct {
	// Package is the package clause of generated files.
	Package string
	// OutputDir receives generated files, relative to the project dir.
	OutputDir string
	// Header is an extra comment line placed atop generated files.
	Header string
	// CatalogPaths are catalog files in application order, resolved
	// relative to the manifest.
	CatalogPaths []string
}

// schema mirrors the HCL surface of viewgen.hcl.
type schema struct {
	Generator *generatorBlock `hcl:"generator,block"`
	Catalogs  []catalogBlock  `hcl:"catalog,block"`
}

type generatorBlock struct {
	Package   string `hcl:"package,optional"`
	OutputDir string `hcl:"output_dir,optional"`
	Header    string `hcl:"header,optional"`
}

type catalogBlock struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

// Default returns the manifest used when no viewgen.hcl exists.
func Default() *Manifest {
	return &Manifest{Package: "ui", OutputDir: "."}
}

// Load reads dir/viewgen.hcl if present.
func Load(ctx context.Context, dir string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	path := filepath.Join(dir, Filename)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Debug("No manifest found, using defaults.", "path", path)
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %s", path, diags.Error())
	}

	var cfg schema
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %s", path, diags.Error())
	}

	m := Default()
	if cfg.Generator != nil {
		if cfg.Generator.Package != "" {
			m.Package = cfg.Generator.Package
		}
		if cfg.Generator.OutputDir != "" {
			m.OutputDir = cfg.Generator.OutputDir
		}
		m.Header = cfg.Generator.Header
	}
	for _, cat := range cfg.Catalogs {
		m.CatalogPaths = append(m.CatalogPaths, filepath.Join(dir, cat.Path))
	}

	logger.Debug("Manifest loaded.", "path", path, "package", m.Package, "catalogs", len(m.CatalogPaths))
	return m, nil
}
