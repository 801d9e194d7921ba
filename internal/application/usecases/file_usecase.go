package usecases

import (
	"context"
	"io"

	"file-vault/internal/domain/entities"
	domainerrors "file-vault/internal/domain/errors"
	"file-vault/internal/domain/repositories"
	"file-vault/internal/infrastructure/storage"
	"file-vault/internal/logger"

	"github.com/google/uuid"
)

// FileUseCase owns the current version pointer of every file and the
// snapshot-then-overwrite / backup-then-restore protocol around it.
// Each operation is one session: a single transaction commits the
// ledger write and the pointer move together or not at all.
type FileUseCase struct {
	store repositories.Store
	blobs storage.BlobStorage
}

func NewFileUseCase(store repositories.Store, blobs storage.BlobStorage) *FileUseCase {
	return &FileUseCase{store: store, blobs: blobs}
}

type CreateFileInput struct {
	Name     string
	FileType string
	FolderID *string
	Content  io.Reader
	Size     int64
}

type UpdateFileInput struct {
	Name     string  // empty means unchanged
	FolderID *string // nil means unchanged
	Content  io.Reader
	FileType string
	Size     int64
}

// Create uploads the content and persists a new file at version 0. No
// ledger entry is written: nothing has been superseded yet.
func (uc *FileUseCase) Create(ctx context.Context, ownerID string, in CreateFileInput) (*entities.File, error) {
	if in.Content == nil || in.Size == 0 {
		return nil, domainerrors.Validation("File was not uploaded", nil)
	}

	location, err := uc.blobs.Upload(ctx, in.Content, in.Name)
	if err != nil {
		return nil, err
	}

	file := &entities.File{
		ID:             uuid.NewString(),
		Name:           in.Name,
		FileType:       in.FileType,
		Size:           in.Size,
		OwnerID:        ownerID,
		FolderID:       in.FolderID,
		BlobPath:       location,
		CurrentVersion: 0,
	}

	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	if err := sess.Files().Insert(ctx, file); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}

	if l := logger.GetLogger(); l != nil {
		l.LogFileEvent(logger.EventFileUpload, file.ID, ownerID, map[string]interface{}{
			"name": file.Name,
			"size": file.Size,
		})
	}
	return file, nil
}

// Update applies metadata changes and, when new content is supplied,
// snapshots the version being superseded into the ledger before moving
// the current pointer forward.
func (uc *FileUseCase) Update(ctx context.Context, id string, in UpdateFileInput) (*entities.File, error) {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	file, err := sess.Files().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, domainerrors.ErrFileNotFound
	}
	expected := file.CurrentVersion

	if in.Content != nil {
		// Preserve the state being superseded, not the new one. After a
		// revert the current version already sits in the ledger and
		// must not be snapshotted twice.
		existing, err := sess.Versions().GetByFileAndNumber(ctx, file.ID, file.CurrentVersion)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			snapshot := &entities.FileVersion{
				ID:            uuid.NewString(),
				FileID:        file.ID,
				VersionNumber: file.CurrentVersion,
				BlobPath:      file.BlobPath,
			}
			if err := sess.Versions().Insert(ctx, snapshot); err != nil {
				return nil, err
			}
		}

		next, err := sess.Versions().NextVersionNumber(ctx, file.ID)
		if err != nil {
			return nil, err
		}

		location, err := uc.blobs.Upload(ctx, in.Content, file.Name)
		if err != nil {
			return nil, err
		}

		file.BlobPath = location
		file.CurrentVersion = next
		if in.FileType != "" {
			file.FileType = in.FileType
		}
		if in.Size > 0 {
			file.Size = in.Size
		}
	}

	if in.Name != "" {
		file.Name = in.Name
	}
	if in.FolderID != nil {
		file.FolderID = in.FolderID
	}

	if err := sess.Files().Update(ctx, file, expected); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}

	if l := logger.GetLogger(); l != nil {
		l.LogFileEvent(logger.EventFileUpdate, file.ID, file.OwnerID, map[string]interface{}{
			"current_version": file.CurrentVersion,
		})
	}
	return file, nil
}

// RevertToVersion restores the file's pointer to a ledger entry. The
// version being abandoned is backed up first if the ledger does not
// hold it yet, so no content is ever lost to a revert.
func (uc *FileUseCase) RevertToVersion(ctx context.Context, id string, versionNumber int) (*entities.File, error) {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	version, err := sess.Versions().GetByFileAndNumber(ctx, id, versionNumber)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, domainerrors.ErrVersionNotFound
	}

	file, err := sess.Files().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, domainerrors.ErrFileNotFound
	}
	expected := file.CurrentVersion

	existing, err := sess.Versions().GetByFileAndNumber(ctx, file.ID, file.CurrentVersion)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		backup := &entities.FileVersion{
			ID:            uuid.NewString(),
			FileID:        file.ID,
			VersionNumber: file.CurrentVersion,
			BlobPath:      file.BlobPath,
		}
		if err := sess.Versions().Insert(ctx, backup); err != nil {
			return nil, err
		}
	}

	file.BlobPath = version.BlobPath
	file.CurrentVersion = version.VersionNumber

	if err := sess.Files().Update(ctx, file, expected); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}

	if l := logger.GetLogger(); l != nil {
		l.LogFileEvent(logger.EventFileRevert, file.ID, file.OwnerID, map[string]interface{}{
			"reverted_to": versionNumber,
		})
	}
	return file, nil
}

// GetVersions returns the file's ledger ordered by version number
// ascending.
func (uc *FileUseCase) GetVersions(ctx context.Context, id string) ([]entities.FileVersion, error) {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	return sess.Versions().ListByFile(ctx, id)
}

func (uc *FileUseCase) Get(ctx context.Context, id string) (*entities.File, error) {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	file, err := sess.Files().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, domainerrors.ErrFileNotFound
	}
	return file, nil
}

func (uc *FileUseCase) List(ctx context.Context, opts repositories.ListFilesOptions) ([]entities.File, error) {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	return sess.Files().List(ctx, opts)
}

// Delete removes the file record. Ledger entries and blob content are
// retained; pruning is a retention policy concern, not ours.
func (uc *FileUseCase) Delete(ctx context.Context, id string) error {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.Rollback()

	file, err := sess.Files().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if file == nil {
		return domainerrors.ErrFileNotFound
	}
	if err := sess.Files().Delete(ctx, id); err != nil {
		return err
	}
	if err := sess.Save(ctx); err != nil {
		return err
	}

	if l := logger.GetLogger(); l != nil {
		l.LogFileEvent(logger.EventFileDelete, id, file.OwnerID, nil)
	}
	return nil
}
