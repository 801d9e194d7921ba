package repositories

import (
	"context"

	"file-vault/internal/domain/entities"
)

// ListFilesOptions narrows a file listing. Nil fields mean no filter.
type ListFilesOptions struct {
	OwnerID  *string
	FolderID *string
}

type FileRepository interface {
	// GetByID returns the file or nil when absent.
	GetByID(ctx context.Context, id string) (*entities.File, error)
	Insert(ctx context.Context, f *entities.File) error
	// Update persists all mutable fields. expectedVersion is the
	// CurrentVersion the row must still hold; a mismatch means a
	// concurrent writer got there first and no rows are touched.
	Update(ctx context.Context, f *entities.File, expectedVersion int) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListFilesOptions) ([]entities.File, error)
	ListByFolder(ctx context.Context, folderID string) ([]entities.File, error)
}

type FileVersionRepository interface {
	Insert(ctx context.Context, v *entities.FileVersion) error
	// GetByFileAndNumber returns the ledger entry or nil when absent.
	GetByFileAndNumber(ctx context.Context, fileID string, versionNumber int) (*entities.FileVersion, error)
	// NextVersionNumber returns 1 + max(version numbers for fileID),
	// or 0 when the ledger has no entries for the file.
	NextVersionNumber(ctx context.Context, fileID string) (int, error)
	// ListByFile returns the file's ledger ordered by version number
	// ascending.
	ListByFile(ctx context.Context, fileID string) ([]entities.FileVersion, error)
}

type FolderRepository interface {
	// GetByID returns the folder without children, or nil when absent.
	GetByID(ctx context.Context, id string) (*entities.Folder, error)
	// GetWithContents eagerly resolves direct child files, direct
	// sub-folders and the parent folder reference.
	GetWithContents(ctx context.Context, id string) (*entities.Folder, error)
	Insert(ctx context.Context, f *entities.Folder) error
	Update(ctx context.Context, f *entities.Folder) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]entities.Folder, error)
}

type FileShareRepository interface {
	Insert(ctx context.Context, s *entities.FileShare) error
	// FindByToken returns all shares carrying the token. Issuance
	// guarantees uniqueness, but the read keeps set semantics.
	FindByToken(ctx context.Context, token string) ([]entities.FileShare, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entities.FileShare, error)
}

// Session is one logical unit of work. Repositories obtained from a
// session share its transaction; nothing is visible to other sessions
// until Save. Rollback after Save is a no-op.
type Session interface {
	Files() FileRepository
	Versions() FileVersionRepository
	Folders() FolderRepository
	Shares() FileShareRepository
	Save(ctx context.Context) error
	Rollback() error
}

// Store opens sessions against the backing database.
type Store interface {
	Begin(ctx context.Context) (Session, error)
}
