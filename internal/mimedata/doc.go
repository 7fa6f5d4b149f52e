// Package mimedata embeds the default content-type dataset.
//
// The dataset ships inside the binary so a zero-configuration install can
// populate the catalog without any external files. It is the fallback data
// source when neither a JSON directory nor a compiled database is configured.
package mimedata
