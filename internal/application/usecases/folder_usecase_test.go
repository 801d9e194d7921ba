package usecases

import (
	"context"
	"strings"
	"testing"

	domainerrors "file-vault/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFolderRequiresName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.folders.Create(context.Background(), "owner-1", FolderInput{})
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCreateFolderRejectsUnknownParent(t *testing.T) {
	env := newTestEnv(t)

	missing := "no-such-id"
	_, err := env.folders.Create(context.Background(), "owner-1", FolderInput{
		Name:           "child",
		ParentFolderID: &missing,
	})
	require.ErrorIs(t, err, domainerrors.ErrFolderNotFound)
}

func TestGetFolderResolvesContents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent, err := env.folders.Create(ctx, "owner-1", FolderInput{Name: "parent"})
	require.NoError(t, err)
	child, err := env.folders.Create(ctx, "owner-1", FolderInput{Name: "child", ParentFolderID: &parent.ID})
	require.NoError(t, err)

	_, err = env.files.Create(ctx, "owner-1", CreateFileInput{
		Name:     "inside.txt",
		FolderID: &child.ID,
		Content:  strings.NewReader("data"),
		Size:     4,
	})
	require.NoError(t, err)

	got, err := env.folders.Get(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "inside.txt", got.Files[0].Name)
	require.NotNil(t, got.ParentFolder)
	assert.Equal(t, parent.ID, got.ParentFolder.ID)

	gotParent, err := env.folders.Get(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, gotParent.SubFolders, 1)
	assert.Equal(t, child.ID, gotParent.SubFolders[0].ID)
}

func TestUpdateFolderRejectsSelfParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.folders.Create(ctx, "owner-1", FolderInput{Name: "loop"})
	require.NoError(t, err)

	_, err = env.folders.Update(ctx, folder.ID, FolderInput{ParentFolderID: &folder.ID})
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUpdateFolderRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.folders.Create(ctx, "owner-1", FolderInput{Name: "before"})
	require.NoError(t, err)

	updated, err := env.folders.Update(ctx, folder.ID, FolderInput{Name: "after"})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)
}

func TestDeleteFolderKeepsFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.folders.Create(ctx, "owner-1", FolderInput{Name: "doomed"})
	require.NoError(t, err)
	file, err := env.files.Create(ctx, "owner-1", CreateFileInput{
		Name:     "survivor.txt",
		FolderID: &folder.ID,
		Content:  strings.NewReader("data"),
		Size:     4,
	})
	require.NoError(t, err)

	require.NoError(t, env.folders.Delete(ctx, folder.ID))
	_, err = env.folders.Get(ctx, folder.ID)
	require.ErrorIs(t, err, domainerrors.ErrFolderNotFound)

	// The file detaches from the deleted folder instead of vanishing.
	got, err := env.files.Get(ctx, file.ID)
	require.NoError(t, err)
	assert.Nil(t, got.FolderID)
}

func TestListFoldersByOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.folders.Create(ctx, "owner-1", FolderInput{Name: "mine"})
	require.NoError(t, err)
	_, err = env.folders.Create(ctx, "owner-2", FolderInput{Name: "theirs"})
	require.NoError(t, err)

	folders, err := env.folders.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "mine", folders[0].Name)
}
