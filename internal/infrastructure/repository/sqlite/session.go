package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"file-vault/internal/domain/repositories"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against whichever the session hands them.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store opens one transaction per logical operation.
type Store struct {
	db *sql.DB
}

var _ repositories.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (repositories.Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	return &session{tx: tx}, nil
}

// session is a unit of work bound to a single transaction. Repository
// handles are built lazily and cached for the session's lifetime.
type session struct {
	tx    *sql.Tx
	done  bool
	files *FileRepo
	vers  *FileVersionRepo
	dirs  *FolderRepo
	shrs  *FileShareRepo
}

var _ repositories.Session = (*session)(nil)

func (s *session) Files() repositories.FileRepository {
	if s.files == nil {
		s.files = NewFileRepo(s.tx)
	}
	return s.files
}

func (s *session) Versions() repositories.FileVersionRepository {
	if s.vers == nil {
		s.vers = NewFileVersionRepo(s.tx)
	}
	return s.vers
}

func (s *session) Folders() repositories.FolderRepository {
	if s.dirs == nil {
		s.dirs = NewFolderRepo(s.tx)
	}
	return s.dirs
}

func (s *session) Shares() repositories.FileShareRepository {
	if s.shrs == nil {
		s.shrs = NewFileShareRepo(s.tx)
	}
	return s.shrs
}

func (s *session) Save(ctx context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %v", err)
	}
	return nil
}

// Rollback discards the session's writes. Safe to defer after Save.
func (s *session) Rollback() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.tx.Rollback()
}
