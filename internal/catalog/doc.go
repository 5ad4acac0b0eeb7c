// Package catalog maps DSL widget types and property names onto the Go
// API surface of the target toolkit. Mappings come from optional YAML
// catalog files; anything not listed falls back to naming derivation
// (snake_case properties become CamelCase setter methods, a widget type
// becomes its New* constructor).
package catalog
