// Package backend opens the document and blob stores selected by config.
package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"garbage-billing-backend/internal/config"
	"garbage-billing-backend/internal/docstore"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/storage"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Backends holds the opened stores. Local is set only for filesystem blobs,
// which the HTTP server must serve itself.
type Backends struct {
	Docs  docstore.Store
	Blobs storage.BlobStore
	Local *storage.LocalStorage

	closers []func() error
}

// Open connects every backend named in cfg. Callers must Close the result.
func Open(ctx context.Context, cfg *config.Config) (*Backends, error) {
	b := &Backends{}

	var app *firebase.App
	firebaseApp := func() (*firebase.App, error) {
		if app != nil {
			return app, nil
		}
		var opts []option.ClientOption
		if cfg.Store.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Store.CredentialsFile))
		}
		a, err := firebase.NewApp(ctx, &firebase.Config{
			ProjectID:     cfg.Store.ProjectID,
			StorageBucket: cfg.Storage.Bucket,
		}, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
		}
		app = a
		return app, nil
	}

	switch cfg.Store.Type {
	case "firestore":
		a, err := firebaseApp()
		if err != nil {
			return nil, err
		}
		client, err := a.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		b.closers = append(b.closers, client.Close)
		b.Docs = docstore.NewFirestoreStore(client)
		logger.Info("Using Firestore document store", "project", cfg.Store.ProjectID)

	case "postgres":
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		b.closers = append(b.closers, db.Close)
		if err := db.PingContext(ctx); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		pg := docstore.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("failed to migrate documents table: %w", err)
		}
		b.Docs = pg
		logger.Info("Using PostgreSQL document store", "host", cfg.Store.Postgres.Host, "database", cfg.Store.Postgres.Database)

	default:
		b.Docs = docstore.NewMemoryStore()
		logger.Warn("Using in-memory document store; data is lost on restart")
	}

	switch cfg.Storage.Type {
	case "firebase":
		a, err := firebaseApp()
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		client, err := a.Storage(ctx)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		bucket, err := client.Bucket(cfg.Storage.Bucket)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("failed to open bucket: %w", err)
		}
		b.Blobs = storage.NewFirebaseStorage(bucket, cfg.Storage.Bucket)
		logger.Info("Using Firebase Storage", "bucket", cfg.Storage.Bucket)

	default:
		local, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Blobs = local
		b.Local = local
		logger.Info("Using local blob storage", "upload_dir", cfg.Storage.UploadDir)
	}

	return b, nil
}

func (b *Backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	b.closers = nil
	return errors.Join(errs...)
}
