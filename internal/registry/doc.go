// Package registry implements the in-memory content-type index.
//
// A Registry keeps two derived views over the same descriptor set: a variant
// index keyed by simplified type string and an extension index keyed by
// case-folded file extension. Descriptors accumulate for the registry's
// lifetime; there is no delete. The registry subscribes to every descriptor it
// holds so extension changes on shared descriptors keep the extension index in
// sync across all holders. Lookup results are ranked with the priority
// comparator so the most authoritative match comes first.
package registry
