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

type FileRepo struct {
	db DBTX
}

var _ repositories.FileRepository = (*FileRepo)(nil)

func NewFileRepo(db DBTX) *FileRepo {
	return &FileRepo{db: db}
}

const fileColumns = `id, name, file_type, size, owner_id, folder_id, blob_path, current_version, created_at, updated_at`

func (r *FileRepo) GetByID(ctx context.Context, id string) (*entities.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = ?`
	f, err := scanFile(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file record: %v", err)
	}
	return f, nil
}

func (r *FileRepo) Insert(ctx context.Context, f *entities.File) error {
	f.CreatedAt = time.Now().UTC()

	query := `
	INSERT INTO files (id, name, file_type, size, owner_id, folder_id, blob_path, current_version, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.Name, f.FileType, f.Size, f.OwnerID, f.FolderID,
		f.BlobPath, f.CurrentVersion, f.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert file record: %v", err)
	}
	return nil
}

// Update writes back every mutable field, guarded on the version the
// caller read. Zero rows affected means another writer moved the
// version pointer in between; the caller sees ErrConflict and nothing
// is persisted.
func (r *FileRepo) Update(ctx context.Context, f *entities.File, expectedVersion int) error {
	now := time.Now().UTC()

	query := `
	UPDATE files
	SET name = ?, file_type = ?, size = ?, folder_id = ?, blob_path = ?, current_version = ?, updated_at = ?
	WHERE id = ? AND current_version = ?`

	result, err := r.db.ExecContext(ctx, query,
		f.Name, f.FileType, f.Size, f.FolderID, f.BlobPath, f.CurrentVersion,
		now.Format(time.RFC3339Nano), f.ID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update file record: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if affected == 0 {
		return domainerrors.ErrConflict
	}
	f.UpdatedAt = &now
	return nil
}

func (r *FileRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if affected == 0 {
		return domainerrors.ErrFileNotFound
	}
	return nil
}

func (r *FileRepo) List(ctx context.Context, opts repositories.ListFilesOptions) ([]entities.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files`
	var conditions []string
	var args []any

	if opts.OwnerID != nil {
		conditions = append(conditions, "owner_id = ?")
		args = append(args, *opts.OwnerID)
	}
	if opts.FolderID != nil {
		conditions = append(conditions, "folder_id = ?")
		args = append(args, *opts.FolderID)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list file records: %v", err)
	}
	defer rows.Close()

	return scanFiles(rows)
}

func (r *FileRepo) ListByFolder(ctx context.Context, folderID string) ([]entities.File, error) {
	return r.List(ctx, repositories.ListFilesOptions{FolderID: &folderID})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*entities.File, error) {
	var f entities.File
	var folderID sql.NullString
	var createdAt string
	var updatedAt sql.NullString

	err := row.Scan(&f.ID, &f.Name, &f.FileType, &f.Size, &f.OwnerID,
		&folderID, &f.BlobPath, &f.CurrentVersion, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if folderID.Valid {
		f.FolderID = &folderID.String
	}
	f.CreatedAt, f.UpdatedAt = parseAuditTimes(createdAt, updatedAt)
	return &f, nil
}

func scanFiles(rows *sql.Rows) ([]entities.File, error) {
	var records []entities.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file record: %v", err)
		}
		records = append(records, *f)
	}
	return records, rows.Err()
}

func parseAuditTimes(createdAt string, updatedAt sql.NullString) (time.Time, *time.Time) {
	var created time.Time
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		created = t
	}
	var updated *time.Time
	if updatedAt.Valid {
		if t, err := time.Parse(time.RFC3339Nano, updatedAt.String); err == nil {
			updated = &t
		}
	}
	return created, updated
}
