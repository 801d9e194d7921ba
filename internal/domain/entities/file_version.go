package entities

import "time"

// FileVersion is a write-once ledger entry recording the blob a file
// pointed to before it was superseded or reverted away from. Entries
// are never updated or deleted.
type FileVersion struct {
	ID            string    `json:"id"`
	FileID        string    `json:"fileId"`
	VersionNumber int       `json:"versionNumber"`
	BlobPath      string    `json:"blobPath"`
	SupersededAt  time.Time `json:"supersededAt"`
}
