package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog describes one toolkit binding: Go import paths per package
// alias, and per-widget overrides for constructors, setters and signals.
type Catalog struct {
	// Imports maps a path prefix used in .view files (e.g. "gtk") to the
	// Go import path of the package that provides it.
	Imports map[string]string `yaml:"imports,omitempty"`

	// Widgets is keyed by the dotted DSL type, e.g. "gtk.Box".
	Widgets map[string]Widget `yaml:"widgets,omitempty"`
}

// Widget is the catalog entry for one widget type.
type Widget struct {
	// Constructor overrides the derived New* constructor, e.g. "gtk.NewBox".
	Constructor string `yaml:"constructor,omitempty"`

	// Type overrides the derived Go result type, e.g. "*gtk.Box".
	Type string `yaml:"type,omitempty"`

	// ChildMethod is the method used to attach children declared without
	// an explicit property name, e.g. "Append".
	ChildMethod string `yaml:"child_method,omitempty"`

	// Properties and Signals override derived method names, keyed by the
	// DSL name.
	Properties map[string]string `yaml:"properties,omitempty"`
	Signals    map[string]string `yaml:"signals,omitempty"`
}

// Load reads one YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &cat, nil
}

// Merge folds other into c; entries in other win on conflict.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for alias, path := range other.Imports {
		if c.Imports == nil {
			c.Imports = map[string]string{}
		}
		c.Imports[alias] = path
	}
	for name, w := range other.Widgets {
		if c.Widgets == nil {
			c.Widgets = map[string]Widget{}
		}
		c.Widgets[name] = w
	}
}

// ConstructorFor resolves the constructor call target for a widget type
// path. Without an override, "gtk.Box" derives "gtk.NewBox".
func (c *Catalog) ConstructorFor(path []string) string {
	key := strings.Join(path, ".")
	if w, ok := c.Widgets[key]; ok && w.Constructor != "" {
		return w.Constructor
	}
	last := path[len(path)-1]
	prefix := strings.Join(path[:len(path)-1], ".")
	if prefix == "" {
		return "New" + Camel(last)
	}
	return prefix + ".New" + Camel(last)
}

// TypeFor resolves the Go type of a widget path, derived as a pointer to
// the named type when no override exists.
func (c *Catalog) TypeFor(path []string) string {
	key := strings.Join(path, ".")
	if w, ok := c.Widgets[key]; ok && w.Type != "" {
		return w.Type
	}
	return "*" + key
}

// SetterFor resolves the method that assigns a DSL property. Derivation:
// "set_title" becomes "SetTitle"; a bare "visible" becomes "SetVisible".
func (c *Catalog) SetterFor(widget []string, prop string) string {
	key := strings.Join(widget, ".")
	if w, ok := c.Widgets[key]; ok {
		if m, ok := w.Properties[prop]; ok {
			return m
		}
	}
	if strings.Contains(prop, ".") || hasVerbPrefix(prop) {
		return Camel(prop)
	}
	return "Set" + Camel(prop)
}

// SignalFor resolves the method that connects a DSL signal. Derivation:
// "connect_clicked" becomes "ConnectClicked".
func (c *Catalog) SignalFor(widget []string, signal string) string {
	key := strings.Join(widget, ".")
	if w, ok := c.Widgets[key]; ok {
		if m, ok := w.Signals[signal]; ok {
			return m
		}
	}
	if strings.HasPrefix(signal, "connect_") {
		return Camel(signal)
	}
	return "Connect" + Camel(signal)
}

// ChildMethodFor resolves the attach method for children declared without
// a property name. The empty string means the catalog does not know one.
func (c *Catalog) ChildMethodFor(widget []string) string {
	key := strings.Join(widget, ".")
	if w, ok := c.Widgets[key]; ok {
		return w.ChildMethod
	}
	return ""
}

// ImportFor returns the Go import path for a DSL path prefix, or "".
func (c *Catalog) ImportFor(alias string) string {
	return c.Imports[alias]
}

// verbPrefixes are property-name prefixes that already name a method and
// therefore do not get a "Set" prepended.
var verbPrefixes = []string{"set_", "add_", "append", "prepend", "remove_", "push_", "insert_"}

func hasVerbPrefix(prop string) bool {
	for _, prefix := range verbPrefixes {
		if strings.HasPrefix(prop, prefix) {
			return true
		}
	}
	return false
}

// Camel converts a snake_case or dotted DSL name to CamelCase:
// "set_default_size" becomes "SetDefaultSize", "page.set_title" becomes
// "Page.SetTitle".
func Camel(s string) string {
	var sb strings.Builder
	for i, dotted := range strings.Split(s, ".") {
		if i > 0 {
			sb.WriteByte('.')
		}
		for _, part := range strings.Split(dotted, "_") {
			if part == "" {
				continue
			}
			sb.WriteString(strings.ToUpper(part[:1]))
			sb.WriteString(part[1:])
		}
	}
	return sb.String()
}
