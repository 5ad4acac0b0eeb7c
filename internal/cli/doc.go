// Package cli defines the viewgen command tree and translates command
// line input into app configuration. It owns exit codes and diagnostic
// rendering; the pipeline itself lives in the app package.
package cli
