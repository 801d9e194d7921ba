package entities

// Folder is a hierarchical container of files and sub-folders.
// Files, SubFolders and ParentFolder are populated only by eager
// lookups (GetWithContents); plain reads leave them nil.
type Folder struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	OwnerID        string  `json:"ownerId"`
	ParentFolderID *string `json:"parentFolderId,omitempty"`

	Files        []File   `json:"files,omitempty"`
	SubFolders   []Folder `json:"subFolders,omitempty"`
	ParentFolder *Folder  `json:"parentFolder,omitempty"`
	Audit
}
