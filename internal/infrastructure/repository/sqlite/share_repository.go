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

type FileShareRepo struct {
	db DBTX
}

var _ repositories.FileShareRepository = (*FileShareRepo)(nil)

func NewFileShareRepo(db DBTX) *FileShareRepo {
	return &FileShareRepo{db: db}
}

const shareColumns = `id, file_id, folder_id, owner_id, shared_to_user_id, shared_to_email, access_level, expiration_date, token, created_at`

func (r *FileShareRepo) Insert(ctx context.Context, s *entities.FileShare) error {
	s.CreatedAt = time.Now().UTC()

	var expiration *string
	if s.ExpirationDate != nil {
		v := s.ExpirationDate.UTC().Format(time.RFC3339Nano)
		expiration = &v
	}

	query := `
	INSERT INTO file_shares (id, file_id, folder_id, owner_id, shared_to_user_id, shared_to_email, access_level, expiration_date, token, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.FileID, s.FolderID, s.OwnerID,
		nullable(s.SharedToUserID), nullable(s.SharedToEmail),
		int(s.AccessLevel), expiration, s.Token, s.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domainerrors.ErrConflict
		}
		return fmt.Errorf("failed to insert share record: %v", err)
	}
	return nil
}

func (r *FileShareRepo) FindByToken(ctx context.Context, token string) ([]entities.FileShare, error) {
	query := `SELECT ` + shareColumns + ` FROM file_shares WHERE token = ?`

	rows, err := r.db.QueryContext(ctx, query, token)
	if err != nil {
		return nil, fmt.Errorf("failed to find share by token: %v", err)
	}
	defer rows.Close()

	return scanShares(rows)
}

func (r *FileShareRepo) ListByOwner(ctx context.Context, ownerID string) ([]entities.FileShare, error) {
	query := `SELECT ` + shareColumns + ` FROM file_shares WHERE owner_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share records: %v", err)
	}
	defer rows.Close()

	return scanShares(rows)
}

func scanShares(rows *sql.Rows) ([]entities.FileShare, error) {
	var shares []entities.FileShare
	for rows.Next() {
		var s entities.FileShare
		var fileID, folderID, sharedToUser, sharedToEmail, expiration sql.NullString
		var level int
		var createdAt string

		err := rows.Scan(&s.ID, &fileID, &folderID, &s.OwnerID,
			&sharedToUser, &sharedToEmail, &level, &expiration, &s.Token, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share record: %v", err)
		}

		if fileID.Valid {
			s.FileID = &fileID.String
		}
		if folderID.Valid {
			s.FolderID = &folderID.String
		}
		s.SharedToUserID = sharedToUser.String
		s.SharedToEmail = sharedToEmail.String
		s.AccessLevel = entities.AccessLevel(level)
		if expiration.Valid {
			if t, err := time.Parse(time.RFC3339Nano, expiration.String); err == nil {
				s.ExpirationDate = &t
			}
		}
		s.CreatedAt, _ = parseAuditTimes(createdAt, sql.NullString{})

		shares = append(shares, s)
	}
	return shares, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
