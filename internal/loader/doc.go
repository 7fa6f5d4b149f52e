// Package loader supplies descriptor data to populate a registry.
//
// A Source yields serialized descriptors from one backing representation:
// the dataset embedded in the binary, a directory of JSON type files, or a
// SQLite database compiled with Compile. Sources are deterministic for a
// given data version; the catalog picks one from configuration and falls
// back to the embedded dataset when nothing is configured.
package loader
