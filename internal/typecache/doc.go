// Package typecache persists registry snapshots so startup can skip
// re-parsing the data source.
//
// A snapshot is a JSON envelope holding the serialized descriptor set tagged
// with the mimedex version as a fingerprint. Load is all-or-nothing: a missing
// file, unreadable payload, fingerprint mismatch, or any descriptor that fails
// to construct makes the whole snapshot "absent" and the caller rebuilds from
// the data source. Saves go through a unique temp file plus rename, so a
// concurrent reader never observes a half-written snapshot as valid; racing
// writers simply rebuild redundantly and the last one wins.
package typecache
