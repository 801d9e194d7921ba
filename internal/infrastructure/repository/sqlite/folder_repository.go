package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"file-vault/internal/domain/entities"
	domainerrors "file-vault/internal/domain/errors"
	"file-vault/internal/domain/repositories"
)

type FolderRepo struct {
	db DBTX
}

var _ repositories.FolderRepository = (*FolderRepo)(nil)

func NewFolderRepo(db DBTX) *FolderRepo {
	return &FolderRepo{db: db}
}

const folderColumns = `id, name, owner_id, parent_folder_id, created_at, updated_at`

func (r *FolderRepo) GetByID(ctx context.Context, id string) (*entities.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE id = ?`
	f, err := scanFolder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder record: %v", err)
	}
	return f, nil
}

// GetWithContents resolves the folder plus its direct child files,
// direct sub-folders and parent reference. Nested descendants are not
// loaded.
func (r *FolderRepo) GetWithContents(ctx context.Context, id string) (*entities.Folder, error) {
	folder, err := r.GetByID(ctx, id)
	if err != nil || folder == nil {
		return folder, err
	}

	files := NewFileRepo(r.db)
	folder.Files, err = files.ListByFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	subQuery := `SELECT ` + folderColumns + ` FROM folders WHERE parent_folder_id = ? ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, subQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-folders: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		sub, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder record: %v", err)
		}
		folder.SubFolders = append(folder.SubFolders, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if folder.ParentFolderID != nil {
		folder.ParentFolder, err = r.GetByID(ctx, *folder.ParentFolderID)
		if err != nil {
			return nil, err
		}
	}
	return folder, nil
}

func (r *FolderRepo) Insert(ctx context.Context, f *entities.Folder) error {
	f.CreatedAt = time.Now().UTC()

	query := `
	INSERT INTO folders (id, name, owner_id, parent_folder_id, created_at)
	VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.Name, f.OwnerID, f.ParentFolderID, f.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert folder record: %v", err)
	}
	return nil
}

func (r *FolderRepo) Update(ctx context.Context, f *entities.Folder) error {
	now := time.Now().UTC()

	query := `
	UPDATE folders
	SET name = ?, parent_folder_id = ?, updated_at = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		f.Name, f.ParentFolderID, now.Format(time.RFC3339Nano), f.ID)
	if err != nil {
		return fmt.Errorf("failed to update folder record: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if affected == 0 {
		return domainerrors.ErrFolderNotFound
	}
	f.UpdatedAt = &now
	return nil
}

func (r *FolderRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder record: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if affected == 0 {
		return domainerrors.ErrFolderNotFound
	}
	return nil
}

func (r *FolderRepo) ListByOwner(ctx context.Context, ownerID string) ([]entities.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE owner_id = ? ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder records: %v", err)
	}
	defer rows.Close()

	var folders []entities.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder record: %v", err)
		}
		folders = append(folders, *f)
	}
	return folders, rows.Err()
}

func scanFolder(row rowScanner) (*entities.Folder, error) {
	var f entities.Folder
	var parentID sql.NullString
	var createdAt string
	var updatedAt sql.NullString

	err := row.Scan(&f.ID, &f.Name, &f.OwnerID, &parentID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		f.ParentFolderID = &parentID.String
	}
	f.CreatedAt, f.UpdatedAt = parseAuditTimes(createdAt, updatedAt)
	return &f, nil
}
