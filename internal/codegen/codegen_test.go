package codegen

import (
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viewgen/viewgen/internal/catalog"
	"github.com/viewgen/viewgen/internal/parser"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Imports: map[string]string{"gtk": "example.com/ui/gtk"},
		Widgets: map[string]catalog.Widget{
			"gtk.Window": {ChildMethod: "SetChild"},
			"gtk.Box":    {ChildMethod: "Append"},
		},
	}
}

func generate(t *testing.T, src string) (string, hcl.Diagnostics) {
	t.Helper()
	entities, warns := parser.ParseFile("test.view", []byte(src))
	require.Empty(t, warns)
	gen := New(testCatalog(), "ui", "")
	out, diags := gen.File("test.view", entities)
	return string(out), diags
}

func TestFile_GeneratesWidgetTree(t *testing.T) {
	t.Parallel()

	src := `
/// The application's main window.
#[root]
main_window = gtk.Window {
    set_title: "viewgen",
    gtk.Box {
        set_spacing: 5,
        gtk.Label {
            set_label: "hi"
        },
        gtk.Button {
            clicked => on_quit
        }
    }
}
`
	out, diags := generate(t, src)
	require.False(t, diags.HasErrors(), diags.Error)

	assert.Contains(t, out, "// Code generated by viewgen from test.view. DO NOT EDIT.")
	assert.Contains(t, out, "package ui")
	assert.Contains(t, out, `gtk "example.com/ui/gtk"`)
	assert.Contains(t, out, "// The application's main window.")
	assert.Contains(t, out, "func BuildMainWindow() *gtk.Window {")
	assert.Contains(t, out, "main_window := gtk.NewWindow()")
	assert.Contains(t, out, `main_window.SetTitle("viewgen")`)
	assert.Contains(t, out, "box := gtk.NewBox()")
	assert.Contains(t, out, "box.SetSpacing(5)")
	assert.Contains(t, out, "label := gtk.NewLabel()")
	assert.Contains(t, out, "box.Append(label)")
	assert.Contains(t, out, "button.ConnectClicked(on_quit)")
	assert.Contains(t, out, "main_window.SetChild(box)")
	assert.Contains(t, out, "return main_window")

	// Children are fully configured before they are attached.
	assert.Less(t,
		strings.Index(out, "box.Append(label)"),
		strings.Index(out, "main_window.SetChild(box)"))
	assert.Less(t,
		strings.Index(out, "label := gtk.NewLabel()"),
		strings.Index(out, "box.Append(label)"))
}

func TestFile_ParseErrorsBecomeDiagnostics(t *testing.T) {
	t.Parallel()

	out, diags := generate(t, "gtk.Box { visible: }")

	assert.Empty(t, out)
	assert.True(t, diags.HasErrors())
}

func TestFile_MixedEntitiesStillGenerate(t *testing.T) {
	t.Parallel()

	src := `
gtk.Box { visible: }

gtk.Window {
    set_title: "ok"
}
`
	out, diags := generate(t, src)

	assert.True(t, diags.HasErrors())
	assert.Contains(t, out, "func BuildWindow() *gtk.Window {")
}

func TestFile_UnknownImportAliasWarns(t *testing.T) {
	t.Parallel()

	out, diags := generate(t, "adw.Window {}")

	require.False(t, diags.HasErrors())
	require.Len(t, diags, 1)
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
	assert.Equal(t, "Unknown toolkit package", diags[0].Summary)
	assert.NotContains(t, out, "import (")
}

func TestFile_MissingChildMethodIsAnError(t *testing.T) {
	t.Parallel()

	src := `
gtk.Label {
    gtk.Image {}
}
`
	out, diags := generate(t, src)

	assert.Empty(t, out)
	require.True(t, diags.HasErrors())
	assert.Equal(t, "No attach method for child widget", diags[0].Summary)
}

func TestFile_LocalWidgetsBecomeParameters(t *testing.T) {
	t.Parallel()

	src := `
gtk.Window {
    #[local]
    header as gtk.HeaderBar {
        set_title: "top"
    }
}
`
	out, diags := generate(t, src)
	require.False(t, diags.HasErrors(), diags.Error)

	assert.Contains(t, out, "func BuildWindow(header *gtk.HeaderBar) *gtk.Window {")
	assert.NotContains(t, out, "header :=")
	assert.Contains(t, out, `header.SetTitle("top")`)
	assert.Contains(t, out, "window.SetChild(header)")
}

func TestFile_ReturnedWidget(t *testing.T) {
	t.Parallel()

	src := `
gtk.Window {
    set_child: gtk.Box {} -> pane = gtk.Pane {
        set_resizable: true
    }
}
`
	out, diags := generate(t, src)
	require.False(t, diags.HasErrors(), diags.Error)

	assert.Contains(t, out, "pane := window.SetChild(box)")
	assert.Contains(t, out, "pane.SetResizable(true)")
}

func TestFile_ConstructorArgumentsAndChain(t *testing.T) {
	t.Parallel()

	out, diags := generate(t, "gtk.Box(gtk.OrientationVertical, 5).homogeneous(true) {}")
	require.False(t, diags.HasErrors(), diags.Error)

	assert.Contains(t, out, "box := gtk.NewBox(gtk.OrientationVertical, 5).Homogeneous(true)")
}

func TestFile_HeaderLine(t *testing.T) {
	t.Parallel()

	entities, _ := parser.ParseFile("test.view", []byte("gtk.Box {}"))
	gen := New(testCatalog(), "widgets", "Source: ui/test.view")
	out, diags := gen.File("test.view", entities)

	require.False(t, diags.HasErrors())
	assert.Contains(t, string(out), "// Source: ui/test.view")
	assert.Contains(t, string(out), "package widgets")
}
