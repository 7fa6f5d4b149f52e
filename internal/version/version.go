// Package version exposes the mimedex release identifier.
//
// The string doubles as the registry cache fingerprint: snapshots written by
// one release are rejected by any other, forcing a rebuild from the data
// source instead of trusting a payload with a different schema.
package version

// Version is the current mimedex release.
const Version = "0.9.0"
