// Package database provides the SQLite-backed document store.
//
// Records are the plugin's view of the host's document model: original
// filename, mime type, extracted text excerpt, and thumbnail location.
// Saves run through an ordered list of pre-save hooks; the mime-type
// correction hook registers there so every record is fixed up before it is
// persisted. Extracted excerpts are indexed in an FTS5 table for search.
package database
