package di

import (
	"context"
	"database/sql"
	"fmt"

	"file-vault/internal/application/usecases"
	"file-vault/internal/domain/repositories"
	"file-vault/internal/handler"
	"file-vault/internal/infrastructure/config"
	"file-vault/internal/infrastructure/repository/sqlite"
	"file-vault/internal/infrastructure/storage"
)

// Container provides app-wide singletons wired from configuration.
type Container struct {
	DB    *sql.DB
	Store repositories.Store
	Blobs storage.BlobStorage

	FileUC   *usecases.FileUseCase
	FolderUC *usecases.FolderUseCase
	ShareUC  *usecases.ShareUseCase

	Handler *handler.Handler
}

func New(cfg *config.Config) (*Container, error) {
	db, err := sqlite.Open(cfg.Database.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	blobs, opener, err := buildBlobStorage(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	c := &Container{
		DB:    db,
		Store: sqlite.NewStore(db),
		Blobs: blobs,
	}
	c.FileUC = usecases.NewFileUseCase(c.Store, c.Blobs)
	c.FolderUC = usecases.NewFolderUseCase(c.Store)
	c.ShareUC = usecases.NewShareUseCase(c.Store)
	c.Handler = handler.New(c.FileUC, c.FolderUC, c.ShareUC, opener, cfg)
	return c, nil
}

// buildBlobStorage selects the configured backend. Only the local
// backend supports streaming content back out.
func buildBlobStorage(cfg *config.Config) (storage.BlobStorage, handler.BlobOpener, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		local, err := storage.NewLocalStorage(cfg.Storage.LocalDir)
		if err != nil {
			return nil, nil, fmt.Errorf("local storage: %w", err)
		}
		return local, local, nil
	case "s3":
		s3Store, err := storage.NewS3Storage(context.Background(), storage.S3Config{
			Bucket:       cfg.Storage.S3Bucket,
			Region:       cfg.Storage.S3Region,
			BaseEndpoint: cfg.Storage.S3Endpoint,
			AccessKey:    cfg.Storage.S3AccessKey,
			SecretKey:    cfg.Storage.S3SecretKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("s3 storage: %w", err)
		}
		return s3Store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Close releases held resources.
func (c *Container) Close() error {
	return c.DB.Close()
}
