// Package cache stores generated output keyed by source content hash, so
// repeated runs over unchanged .view files skip regeneration. The store is
// a single sqlite database under the user cache directory (overridable by
// flag or VIEWGEN_CACHE_DIR).
package cache
