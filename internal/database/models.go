package database

import "time"

// Document is the stored record for one ingested file. The plugin owns
// content and thumbnail fields; original filename and mime type mirror the
// host's document model.
type Document struct {
	ID               string    `json:"id"`
	OriginalFilename string    `json:"originalFilename"`
	Title            string    `json:"title"`
	MimeType         string    `json:"mimeType"`
	Size             int64     `json:"size"`
	ModTime          time.Time `json:"modTime"`
	Checksum         string    `json:"checksum,omitempty"`
	Content          string    `json:"content,omitempty"`
	ThumbnailPath    string    `json:"thumbnailPath,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PreSaveHook inspects and may mutate a document before it is persisted.
// Hooks must not fail the save: anything unrecoverable should be logged and
// the document left as it was.
type PreSaveHook func(doc *Document)
