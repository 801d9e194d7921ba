package usecases

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"file-vault/internal/domain/entities"
	domainerrors "file-vault/internal/domain/errors"
	"file-vault/internal/domain/repositories"
	"file-vault/internal/logger"

	"github.com/google/uuid"
)

// ShareUseCase issues bearer share links and redeems them. Shares read
// file and folder state but never mutate it; only share records are
// written.
type ShareUseCase struct {
	store repositories.Store
}

func NewShareUseCase(store repositories.Store) *ShareUseCase {
	return &ShareUseCase{store: store}
}

type ShareRequest struct {
	FileID         *string
	FolderID       *string
	SharedToUserID string
	SharedToEmail  string
	AccessLevel    entities.AccessLevel
	ExpirationDate *time.Time
}

type ShareResult struct {
	Share *entities.FileShare
	URL   string
}

// SharedItemAccess is what a redeemed token grants: the advisory
// access level and the blob locations it exposes. Enforcement of the
// level at the point of use belongs to the caller.
type SharedItemAccess struct {
	AccessLevel entities.AccessLevel `json:"accessLevel"`
	URLs        []string             `json:"urls"`
}

// newShareToken returns 32 lowercase hex characters: a random 128-bit
// capability credential, not merely an identifier.
func newShareToken() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// ShareFile validates the target(s), persists a share record with a
// fresh token and returns the redemption URL. baseURL is derived from
// the inbound request by the caller.
func (uc *ShareUseCase) ShareFile(ctx context.Context, ownerID string, req ShareRequest, baseURL string) (*ShareResult, error) {
	if req.FileID == nil && req.FolderID == nil {
		return nil, domainerrors.Validation("Either FileId or FolderId must be provided", nil)
	}

	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	if req.FileID != nil {
		file, err := sess.Files().GetByID(ctx, *req.FileID)
		if err != nil {
			return nil, err
		}
		if file == nil {
			return nil, domainerrors.ErrFileNotFound
		}
	}
	if req.FolderID != nil {
		folder, err := sess.Folders().GetByID(ctx, *req.FolderID)
		if err != nil {
			return nil, err
		}
		if folder == nil {
			return nil, domainerrors.ErrFolderNotFound
		}
	}

	share := &entities.FileShare{
		ID:             uuid.NewString(),
		FileID:         req.FileID,
		FolderID:       req.FolderID,
		OwnerID:        ownerID,
		SharedToUserID: req.SharedToUserID,
		SharedToEmail:  req.SharedToEmail,
		AccessLevel:    req.AccessLevel,
		ExpirationDate: req.ExpirationDate,
		Token:          newShareToken(),
	}

	if err := sess.Shares().Insert(ctx, share); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}

	if l := logger.GetLogger(); l != nil {
		l.LogShareEvent(logger.EventShareCreate, share.ID, map[string]interface{}{
			"owner_id":     ownerID,
			"access_level": int(share.AccessLevel),
		})
	}

	url := strings.TrimRight(baseURL, "/") + "/api/v1/shares/" + share.Token
	return &ShareResult{Share: share, URL: url}, nil
}

// GetSharedItemByToken redeems a token. Expiry is evaluated lazily
// here; expired links are reported distinctly from unknown ones.
// Folder shares expose direct child files only.
func (uc *ShareUseCase) GetSharedItemByToken(ctx context.Context, token string) (*SharedItemAccess, error) {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	shares, err := sess.Shares().FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, domainerrors.ErrShareNotFound
	}
	share := shares[0]

	if share.Expired(time.Now().UTC()) {
		return nil, domainerrors.ErrShareExpired
	}

	var urls []string
	if share.FileID != nil {
		file, err := sess.Files().GetByID(ctx, *share.FileID)
		if err != nil {
			return nil, err
		}
		if file != nil {
			urls = append(urls, file.BlobPath)
		}
	}
	if share.FolderID != nil {
		folder, err := sess.Folders().GetWithContents(ctx, *share.FolderID)
		if err != nil {
			return nil, err
		}
		if folder != nil {
			for _, f := range folder.Files {
				urls = append(urls, f.BlobPath)
			}
		}
	}

	if l := logger.GetLogger(); l != nil {
		l.LogShareEvent(logger.EventShareRedeem, share.ID, map[string]interface{}{
			"url_count": len(urls),
		})
	}
	return &SharedItemAccess{AccessLevel: share.AccessLevel, URLs: urls}, nil
}

// ListByOwner returns the shares a user has issued.
func (uc *ShareUseCase) ListByOwner(ctx context.Context, ownerID string) ([]entities.FileShare, error) {
	sess, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	return sess.Shares().ListByOwner(ctx, ownerID)
}
