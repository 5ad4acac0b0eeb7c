// Package app contains the core application logic: configuration, logger
// setup and the generate pipeline that turns .view sources into Go files.
// It is decoupled from any specific entrypoint; the CLI drives it.
package app
