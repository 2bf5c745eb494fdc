// Package mimetypes maintains the mapping between mime types and preferred
// file extensions used when storing and serving documents.
//
// The host application stores files by mime type rather than extension, so a
// file whose real type has no registered mime type (or whose mime type is
// shared by several extensions, e.g. .yaml vs .yml) would round-trip through
// storage with the wrong extension. To work around this the package keeps:
//
//   - A built-in, ordered table of mime-type to extension mappings for the
//     media and binary formats this plugin claims.
//   - An append-only side file of generated mappings: when a file arrives
//     with an unknown extension, a synthetic mime type is invented by
//     suffixing the detected type with the extension and recorded for reuse.
//
// Lookups scan the combined table in order, built-in entries first, so
// built-in mappings always win over generated ones.
package mimetypes
