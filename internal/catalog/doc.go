// Package catalog manages the process-wide default registry. The catalog is
// created unpopulated and built on first demand: a valid snapshot restores the
// registry without touching the data source, and a miss falls back to the
// configured source followed by an immediate snapshot save.
package catalog
