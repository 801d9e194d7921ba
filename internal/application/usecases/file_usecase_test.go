package usecases

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	domainerrors "file-vault/internal/domain/errors"
	"file-vault/internal/infrastructure/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBlobs is an in-memory blob backend for tests.
type memBlobs struct {
	objects map[string][]byte
	n       int
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}}
}

func (m *memBlobs) Upload(_ context.Context, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.n++
	location := fmt.Sprintf("mem://blob-%d", m.n)
	m.objects[location] = data
	return location, nil
}

type testEnv struct {
	files   *FileUseCase
	folders *FolderUseCase
	shares  *ShareUseCase
	blobs   *memBlobs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewStore(db)
	blobs := newMemBlobs()
	return &testEnv{
		files:   NewFileUseCase(store, blobs),
		folders: NewFolderUseCase(store),
		shares:  NewShareUseCase(store),
		blobs:   blobs,
	}
}

func (e *testEnv) createFile(t *testing.T, name, content string) string {
	t.Helper()
	file, err := e.files.Create(context.Background(), "owner-1", CreateFileInput{
		Name:    name,
		Content: strings.NewReader(content),
		Size:    int64(len(content)),
	})
	require.NoError(t, err)
	return file.ID
}

func (e *testEnv) updateContent(t *testing.T, id, content string) {
	t.Helper()
	_, err := e.files.Update(context.Background(), id, UpdateFileInput{
		Content: strings.NewReader(content),
		Size:    int64(len(content)),
	})
	require.NoError(t, err)
}

func TestCreateFileRejectsEmptyUpload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.files.Create(ctx, "owner-1", CreateFileInput{Name: "empty.txt"})
	require.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.files.Create(ctx, "owner-1", CreateFileInput{
		Name:    "zero.txt",
		Content: strings.NewReader(""),
		Size:    0,
	})
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCreateFileStartsAtVersionZeroWithEmptyLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "report.txt", "v0 content")

	file, err := env.files.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, file.CurrentVersion)

	versions, err := env.files.GetVersions(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, versions, "creation must not write a ledger entry")
}

func TestUpdateSnapshotsSupersededVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "report.txt", "original")
	before, err := env.files.Get(ctx, id)
	require.NoError(t, err)

	env.updateContent(t, id, "revised")

	after, err := env.files.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CurrentVersion)
	assert.NotEqual(t, before.BlobPath, after.BlobPath)

	versions, err := env.files.GetVersions(ctx, id)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, 0, versions[0].VersionNumber, "ledger holds the superseded version")
	assert.Equal(t, before.BlobPath, versions[0].BlobPath, "ledger points at the old content")
}

func TestUpdateVersionNumbersAreMonotonic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "notes.txt", "v0")
	for i := 1; i <= 4; i++ {
		env.updateContent(t, id, fmt.Sprintf("v%d", i))

		file, err := env.files.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, i, file.CurrentVersion)
	}

	versions, err := env.files.GetVersions(ctx, id)
	require.NoError(t, err)
	require.Len(t, versions, 4)
	for i, v := range versions {
		assert.Equal(t, i, v.VersionNumber, "ledger is ordered and gapless")
	}
}

func TestMetadataOnlyUpdateDoesNotBumpVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "old-name.txt", "content")

	updated, err := env.files.Update(ctx, id, UpdateFileInput{Name: "new-name.txt"})
	require.NoError(t, err)
	assert.Equal(t, "new-name.txt", updated.Name)
	assert.Equal(t, 0, updated.CurrentVersion)

	versions, err := env.files.GetVersions(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestRevertRestoresOldContentLocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "doc.txt", "first")
	original, err := env.files.Get(ctx, id)
	require.NoError(t, err)

	env.updateContent(t, id, "second")
	env.updateContent(t, id, "third")

	reverted, err := env.files.RevertToVersion(ctx, id, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, reverted.CurrentVersion)
	assert.Equal(t, original.BlobPath, reverted.BlobPath)
	assert.Equal(t, []byte("first"), env.blobs.objects[reverted.BlobPath])
}

func TestRevertBacksUpAbandonedVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "doc.txt", "first")
	env.updateContent(t, id, "second")
	// Current version 1 is live and not yet in the ledger.

	_, err := env.files.RevertToVersion(ctx, id, 0)
	require.NoError(t, err)

	versions, err := env.files.GetVersions(ctx, id)
	require.NoError(t, err)
	require.Len(t, versions, 2, "abandoned version 1 must be backed up before revert")
	assert.Equal(t, 0, versions[0].VersionNumber)
	assert.Equal(t, 1, versions[1].VersionNumber)
}

func TestRevertBackupIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "doc.txt", "first")
	env.updateContent(t, id, "second")

	_, err := env.files.RevertToVersion(ctx, id, 0)
	require.NoError(t, err)
	// Version 0 is already in the ledger; reverting to 1 must not
	// insert a duplicate entry for it.
	_, err = env.files.RevertToVersion(ctx, id, 1)
	require.NoError(t, err)

	versions, err := env.files.GetVersions(ctx, id)
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}

func TestRevertUnknownVersionFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "doc.txt", "first")

	_, err := env.files.RevertToVersion(ctx, id, 7)
	require.ErrorIs(t, err, domainerrors.ErrVersionNotFound)
}

func TestUpdateAfterRevertContinuesFromLedgerMax(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "doc.txt", "first")
	env.updateContent(t, id, "second")
	env.updateContent(t, id, "third")

	_, err := env.files.RevertToVersion(ctx, id, 0)
	require.NoError(t, err)

	// The next content update must not reuse an occupied number.
	env.updateContent(t, id, "fourth")
	file, err := env.files.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, file.CurrentVersion)
}

func TestGetAndDeleteMissingFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.files.Get(ctx, "no-such-id")
	require.ErrorIs(t, err, domainerrors.ErrFileNotFound)

	err = env.files.Delete(ctx, "no-such-id")
	require.ErrorIs(t, err, domainerrors.ErrFileNotFound)
}

func TestDeleteFileRemovesItFromListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.createFile(t, "doc.txt", "content")
	require.NoError(t, env.files.Delete(ctx, id))

	_, err := env.files.Get(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrFileNotFound)
}
