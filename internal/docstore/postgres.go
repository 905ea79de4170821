package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

const documentsSchema = `CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
)`

// PostgresStore keeps every collection in a single JSONB table. It is used
// for self-hosted deployments that do not run against Firestore.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the documents table when missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, documentsSchema); err != nil {
		return fmt.Errorf("postgres migrate: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("postgres %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

func (s *PostgresStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	logger.StoreCall("query", collection, filterArgs(filters)...)

	match := make(map[string]any, len(filters))
	for _, f := range filters {
		match[f.Field] = f.Value
	}
	raw, err := json.Marshal(match)
	if err != nil {
		err = unavailable("query", err)
		logResult("query", collection, err)
		return nil, err
	}

	query := `SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query, collection, string(raw))
	if err != nil {
		err = unavailable("query", err)
		logResult("query", collection, err)
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			err = unavailable("query", err)
			logResult("query", collection, err)
			return nil, err
		}
		doc := Document{ID: id}
		if err := json.Unmarshal(data, &doc.Data); err != nil {
			err = unavailable("query", err)
			logResult("query", collection, err)
			return nil, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		err = unavailable("query", err)
		logResult("query", collection, err)
		return nil, err
	}
	logResult("query", collection, nil, "count", len(out))
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (Document, error) {
	logger.StoreCall("get", collection, "id", id)

	var data []byte
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		logResult("get", collection, domain.ErrNotFound, "id", id)
		return Document{}, domain.ErrNotFound
	}
	if err != nil {
		err = unavailable("get", err)
		logResult("get", collection, err, "id", id)
		return Document{}, err
	}

	doc := Document{ID: id}
	if err := json.Unmarshal(data, &doc.Data); err != nil {
		err = unavailable("get", err)
		logResult("get", collection, err, "id", id)
		return Document{}, err
	}
	logResult("get", collection, nil, "id", id)
	return doc, nil
}

func (s *PostgresStore) Create(ctx context.Context, collection string, data map[string]any, opts ...CreateOption) (string, error) {
	logger.StoreCall("create", collection)

	id := uuid.NewString()
	raw, err := json.Marshal(withGeneratedID(data, id, opts))
	if err != nil {
		err = unavailable("create", err)
		logResult("create", collection, err)
		return "", err
	}

	query := `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`
	if _, err := s.db.ExecContext(ctx, query, collection, id, string(raw)); err != nil {
		err = unavailable("create", err)
		logResult("create", collection, err)
		return "", err
	}
	logResult("create", collection, nil, "id", id)
	return id, nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	logger.StoreCall("update", collection, "id", id)

	raw, err := json.Marshal(fields)
	if err != nil {
		err = unavailable("update", err)
		logResult("update", collection, err, "id", id)
		return err
	}

	query := `UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`
	res, err := s.db.ExecContext(ctx, query, collection, id, string(raw))
	if err != nil {
		err = unavailable("update", err)
		logResult("update", collection, err, "id", id)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		err = unavailable("update", err)
		logResult("update", collection, err, "id", id)
		return err
	}
	if n == 0 {
		logResult("update", collection, domain.ErrNotFound, "id", id)
		return domain.ErrNotFound
	}
	logResult("update", collection, nil, "id", id)
	return nil
}
