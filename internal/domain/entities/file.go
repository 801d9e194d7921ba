package entities

// File is the live record of a stored file. BlobPath and CurrentVersion
// form the current version pointer; superseded pointers live in the
// file_versions ledger.
type File struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	FileType       string  `json:"fileType"`
	Size           int64   `json:"size"`
	OwnerID        string  `json:"ownerId"`
	FolderID       *string `json:"folderId,omitempty"`
	BlobPath       string  `json:"blobPath"`
	CurrentVersion int     `json:"currentVersion"`
	Audit
}
