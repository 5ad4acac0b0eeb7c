// Package scaffold creates the initial layout of a viewgen project: the
// manifest, a starter catalog and an example view.
package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/mod/module"
)

const manifestTemplate = `generator {
  package    = "ui"
  output_dir = "ui"
}

catalog "gtk" {
  path = "catalogs/gtk.yaml"
}
`

const gtkCatalog = `imports:
  gtk: %s/internal/gtk

widgets:
  gtk.Box:
    child_method: Append
  gtk.Window:
    child_method: SetChild
  gtk.Label: {}
  gtk.Button: {}
`

const exampleView = `/// The application's main window.
#[root]
main_window = gtk.Window {
    set_title: "viewgen",
    set_default_size: (640, 480),

    gtk.Box {
        set_orientation: gtk.OrientationVertical,

        gtk.Label {
            set_label: "Hello from viewgen",
        },

        gtk.Button {
            set_label: "Quit",
            clicked => onQuit,
        },
    },
}
`

// Init writes the starter files into dir. Existing files are left alone
// and reported, so re-running is safe.
func Init(w io.Writer, dir, modulePath string) error {
	if err := module.CheckPath(modulePath); err != nil {
		return fmt.Errorf("invalid module path %q: %w", modulePath, err)
	}

	files := []struct {
		path    string
		content string
	}{
		{"viewgen.hcl", manifestTemplate},
		{filepath.Join("catalogs", "gtk.yaml"), fmt.Sprintf(gtkCatalog, modulePath)},
		{filepath.Join("ui", "main_window.view"), exampleView},
	}

	for _, f := range files {
		target := filepath.Join(dir, f.path)
		if _, err := os.Stat(target); err == nil {
			fmt.Fprintln(w, f.path+" already exists")
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(f.path), err)
		}
		if err := os.WriteFile(target, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
		fmt.Fprintln(w, f.path+" created")
	}
	return nil
}
