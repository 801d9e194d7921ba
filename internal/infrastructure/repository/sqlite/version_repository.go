package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"file-vault/internal/domain/entities"
	domainerrors "file-vault/internal/domain/errors"
	"file-vault/internal/domain/repositories"
)

type FileVersionRepo struct {
	db DBTX
}

var _ repositories.FileVersionRepository = (*FileVersionRepo)(nil)

func NewFileVersionRepo(db DBTX) *FileVersionRepo {
	return &FileVersionRepo{db: db}
}

func (r *FileVersionRepo) Insert(ctx context.Context, v *entities.FileVersion) error {
	if v.SupersededAt.IsZero() {
		v.SupersededAt = time.Now().UTC()
	}

	query := `
	INSERT INTO file_versions (id, file_id, version_number, blob_path, superseded_at)
	VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.FileID, v.VersionNumber, v.BlobPath, v.SupersededAt.Format(time.RFC3339Nano))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domainerrors.ErrConflict
		}
		return fmt.Errorf("failed to insert file version: %v", err)
	}
	return nil
}

func (r *FileVersionRepo) GetByFileAndNumber(ctx context.Context, fileID string, versionNumber int) (*entities.FileVersion, error) {
	query := `
	SELECT id, file_id, version_number, blob_path, superseded_at
	FROM file_versions
	WHERE file_id = ? AND version_number = ?`

	v, err := scanVersion(r.db.QueryRowContext(ctx, query, fileID, versionNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file version: %v", err)
	}
	return v, nil
}

func (r *FileVersionRepo) NextVersionNumber(ctx context.Context, fileID string) (int, error) {
	query := `SELECT COALESCE(MAX(version_number) + 1, 0) FROM file_versions WHERE file_id = ?`

	var next int
	if err := r.db.QueryRowContext(ctx, query, fileID).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute next version number: %v", err)
	}
	return next, nil
}

func (r *FileVersionRepo) ListByFile(ctx context.Context, fileID string) ([]entities.FileVersion, error) {
	query := `
	SELECT id, file_id, version_number, blob_path, superseded_at
	FROM file_versions
	WHERE file_id = ?
	ORDER BY version_number ASC`

	rows, err := r.db.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list file versions: %v", err)
	}
	defer rows.Close()

	var versions []entities.FileVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file version: %v", err)
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

func scanVersion(row rowScanner) (*entities.FileVersion, error) {
	var v entities.FileVersion
	var supersededAt string

	err := row.Scan(&v.ID, &v.FileID, &v.VersionNumber, &v.BlobPath, &supersededAt)
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339Nano, supersededAt); err == nil {
		v.SupersededAt = t
	}
	return &v, nil
}
