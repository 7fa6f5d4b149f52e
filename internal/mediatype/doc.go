// Package mediatype defines the content-type descriptor at the heart of the
// registry.
//
// A Type records one "media/subtype" identifier along with its registration
// status, transfer encoding, file extensions, and the inert documentation
// fields carried from the source data. Identity is the exact content-type
// string; ordering and index keys always use the lowercase simplified form.
// Registries subscribe to the descriptors they hold so an extension change on
// a shared descriptor re-indexes every holder.
package mediatype
