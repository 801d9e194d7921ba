package usecases

import (
	"context"

	"file-vault/internal/domain/entities"
	domainerrors "file-vault/internal/domain/errors"
	"file-vault/internal/domain/repositories"

	"github.com/google/uuid"
)

type FolderUseCase struct {
	store repositories.Store
}

func NewFolderUseCase(store repositories.Store) *FolderUseCase {
	return &FolderUseCase{store: store}
}

type FolderInput struct {
	Name           string
	ParentFolderID *string
}

func (uc *FolderUseCase) Create(ctx context.Context, ownerID string, in FolderInput) (*entities.Folder, error) {
	if in.Name == "" {
		return nil, domainerrors.Validation("Folder name is required", map[string]interface{}{"field": "name"})
	}

	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	if in.ParentFolderID != nil {
		parent, err := sess.Folders().GetByID(ctx, *in.ParentFolderID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domainerrors.ErrFolderNotFound
		}
	}

	folder := &entities.Folder{
		ID:             uuid.NewString(),
		Name:           in.Name,
		OwnerID:        ownerID,
		ParentFolderID: in.ParentFolderID,
	}
	if err := sess.Folders().Insert(ctx, folder); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}
	return folder, nil
}

// Get eagerly resolves direct child files, sub-folders and the parent
// reference for breadcrumb-plus-contents callers.
func (uc *FolderUseCase) Get(ctx context.Context, id string) (*entities.Folder, error) {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	folder, err := sess.Folders().GetWithContents(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, domainerrors.ErrFolderNotFound
	}
	return folder, nil
}

func (uc *FolderUseCase) List(ctx context.Context, ownerID string) ([]entities.Folder, error) {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	return sess.Folders().ListByOwner(ctx, ownerID)
}

func (uc *FolderUseCase) Update(ctx context.Context, id string, in FolderInput) (*entities.Folder, error) {
	if in.ParentFolderID != nil && *in.ParentFolderID == id {
		return nil, domainerrors.Validation("Folder cannot be its own parent", map[string]interface{}{"field": "parentFolderId"})
	}

	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	folder, err := sess.Folders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, domainerrors.ErrFolderNotFound
	}

	if in.Name != "" {
		folder.Name = in.Name
	}
	if in.ParentFolderID != nil {
		parent, err := sess.Folders().GetByID(ctx, *in.ParentFolderID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domainerrors.ErrFolderNotFound
		}
		folder.ParentFolderID = in.ParentFolderID
	}

	if err := sess.Folders().Update(ctx, folder); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}
	return folder, nil
}

func (uc *FolderUseCase) Delete(ctx context.Context, id string) error {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.Rollback()

	folder, err := sess.Folders().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if folder == nil {
		return domainerrors.ErrFolderNotFound
	}
	if err := sess.Folders().Delete(ctx, id); err != nil {
		return err
	}
	return sess.Save(ctx)
}
