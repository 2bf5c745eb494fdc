// Package parser implements the media document parser: thumbnail generation
// and text-excerpt extraction for files the host's native parsers do not
// handle.
//
// Thumbnails for videos are extracted with FFmpeg when it is installed; all
// other files (and any extraction failure) get a generated placeholder, a
// pastel square with the file's extension rendered in the center. Text
// extraction reads a small prefix of the file and keeps it only when it
// looks like real text. Every failure degrades to a safe default rather
// than propagating.
package parser
