package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"file-vault/internal/domain/entities"
	domainerrors "file-vault/internal/domain/errors"
	"file-vault/internal/domain/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func insertFile(t *testing.T, store repositories.Store, f *entities.File) {
	t.Helper()
	ctx := context.Background()
	sess, err := store.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()
	require.NoError(t, sess.Files().Insert(ctx, f))
	require.NoError(t, sess.Save(ctx))
}

func TestFileUpdateConflictOnStaleVersion(t *testing.T) {
	store := NewStore(openTestDB(t))
	ctx := context.Background()

	file := &entities.File{
		ID:       uuid.NewString(),
		Name:     "contended.txt",
		OwnerID:  "owner-1",
		BlobPath: "blob-0",
	}
	insertFile(t, store, file)

	// First writer moves the pointer forward.
	sess, err := store.Begin(ctx)
	require.NoError(t, err)
	file.CurrentVersion = 1
	file.BlobPath = "blob-1"
	require.NoError(t, sess.Files().Update(ctx, file, 0))
	require.NoError(t, sess.Save(ctx))

	// Second writer still believes version 0 is current.
	stale := *file
	stale.CurrentVersion = 1
	stale.BlobPath = "blob-other"
	sess2, err := store.Begin(ctx)
	require.NoError(t, err)
	defer sess2.Rollback()
	err = sess2.Files().Update(ctx, &stale, 0)
	require.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestVersionLedgerIsWriteOnce(t *testing.T) {
	store := NewStore(openTestDB(t))
	ctx := context.Background()

	fileID := uuid.NewString()
	insertFile(t, store, &entities.File{ID: fileID, Name: "f.txt", OwnerID: "o", BlobPath: "b0"})

	sess, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.Versions().Insert(ctx, &entities.FileVersion{
		ID: uuid.NewString(), FileID: fileID, VersionNumber: 0, BlobPath: "b0",
	}))
	err = sess.Versions().Insert(ctx, &entities.FileVersion{
		ID: uuid.NewString(), FileID: fileID, VersionNumber: 0, BlobPath: "b0-again",
	})
	require.ErrorIs(t, err, domainerrors.ErrConflict)
	require.NoError(t, sess.Rollback())
}

func TestNextVersionNumber(t *testing.T) {
	store := NewStore(openTestDB(t))
	ctx := context.Background()

	fileID := uuid.NewString()
	insertFile(t, store, &entities.File{ID: fileID, Name: "f.txt", OwnerID: "o", BlobPath: "b0"})

	sess, err := store.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()

	next, err := sess.Versions().NextVersionNumber(ctx, fileID)
	require.NoError(t, err)
	assert.Equal(t, 0, next, "empty ledger starts at zero")

	require.NoError(t, sess.Versions().Insert(ctx, &entities.FileVersion{
		ID: uuid.NewString(), FileID: fileID, VersionNumber: 4, BlobPath: "b4",
	}))
	next, err = sess.Versions().NextVersionNumber(ctx, fileID)
	require.NoError(t, err)
	assert.Equal(t, 5, next)
}

func TestShareTokenIsUnique(t *testing.T) {
	store := NewStore(openTestDB(t))
	ctx := context.Background()

	fileID := uuid.NewString()
	insertFile(t, store, &entities.File{ID: fileID, Name: "f.txt", OwnerID: "o", BlobPath: "b0"})

	sess, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.Shares().Insert(ctx, &entities.FileShare{
		ID: uuid.NewString(), FileID: &fileID, OwnerID: "o", Token: "deadbeefdeadbeefdeadbeefdeadbeef",
	}))
	err = sess.Shares().Insert(ctx, &entities.FileShare{
		ID: uuid.NewString(), FileID: &fileID, OwnerID: "o", Token: "deadbeefdeadbeefdeadbeefdeadbeef",
	})
	require.ErrorIs(t, err, domainerrors.ErrConflict)
	require.NoError(t, sess.Rollback())
}

func TestSessionRollbackDiscardsWrites(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	fileID := uuid.NewString()
	sess, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.Files().Insert(ctx, &entities.File{
		ID: fileID, Name: "ghost.txt", OwnerID: "o", BlobPath: "b0",
	}))
	require.NoError(t, sess.Rollback())

	sess2, err := store.Begin(ctx)
	require.NoError(t, err)
	defer sess2.Rollback()
	got, err := sess2.Files().GetByID(ctx, fileID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRollbackAfterSaveIsNoOp(t *testing.T) {
	store := NewStore(openTestDB(t))
	ctx := context.Background()

	fileID := uuid.NewString()
	sess, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.Files().Insert(ctx, &entities.File{
		ID: fileID, Name: "kept.txt", OwnerID: "o", BlobPath: "b0",
	}))
	require.NoError(t, sess.Save(ctx))
	require.NoError(t, sess.Rollback())

	sess2, err := store.Begin(ctx)
	require.NoError(t, err)
	defer sess2.Rollback()
	got, err := sess2.Files().GetByID(ctx, fileID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "kept.txt", got.Name)
}

func TestFindByTokenSetSemantics(t *testing.T) {
	store := NewStore(openTestDB(t))
	ctx := context.Background()

	sess, err := store.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()
	shares, err := sess.Shares().FindByToken(ctx, "ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	assert.Empty(t, shares)
}
