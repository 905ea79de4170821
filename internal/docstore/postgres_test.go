package docstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"regexp"
	"testing"

	"garbage-billing-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_Query(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "data"}).
			AddRow("a", []byte(`{"userId":"u1","garbagerate":120.5}`)).
			AddRow("b", []byte(`{"userId":"u1"}`))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb`)).
			WithArgs(CollectionInvoices, `{"userId":"u1"}`).
			WillReturnRows(rows)

		docs, err := s.Query(ctx, CollectionInvoices, Eq("userId", "u1"))
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "a", docs[0].ID)
		assert.Equal(t, 120.5, docs[0].Data["garbagerate"])
	})

	t.Run("BackendError", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, data FROM documents").
			WillReturnError(assert.AnError)

		_, err := s.Query(ctx, CollectionInvoices)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM documents WHERE collection = $1 AND id = $2`)).
			WithArgs(CollectionUsers, "u1").
			WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"firstName":"สมชาย"}`)))

		doc, err := s.Get(ctx, CollectionUsers, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", doc.ID)
		assert.Equal(t, "สมชาย", doc.Data["firstName"])
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT data FROM documents").
			WithArgs(CollectionUsers, "u2").
			WillReturnError(sql.ErrNoRows)

		_, err := s.Get(ctx, CollectionUsers, "u2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Create(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(CollectionReports, sqlmock.AnyArg(), `{"status":"รอตรวจสอบ"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Create(context.Background(), CollectionReports, map[string]any{"status": "รอตรวจสอบ"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// selfKeyed matches a JSON document whose id field equals the generated key
// captured from the preceding argument.
type selfKeyed struct{ id *string }

func (k selfKeyed) Match(v driver.Value) bool {
	raw, ok := v.(string)
	if !ok {
		return false
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return false
	}
	return doc["id"] == *k.id && doc["status"] == "รอตรวจสอบ"
}

type captureID struct{ id *string }

func (c captureID) Match(v driver.Value) bool {
	s, ok := v.(string)
	*c.id = s
	return ok && s != ""
}

func TestPostgresStore_CreateWithIDField(t *testing.T) {
	s, mock := newMockStore(t)

	var key string
	mock.ExpectExec("INSERT INTO documents").
		WithArgs(CollectionReports, captureID{&key}, selfKeyed{&key}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Create(context.Background(), CollectionReports, map[string]any{"status": "รอตรวจสอบ"}, WithIDField("id"))
	require.NoError(t, err)
	assert.Equal(t, key, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Update(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE documents SET data = data || $3::jsonb`)).
			WithArgs(CollectionUsers, "u1", `{"id":"u1"}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Update(ctx, CollectionUsers, "u1", map[string]any{"id": "u1"}))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents").
			WithArgs(CollectionUsers, "missing", `{"id":"missing"}`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(ctx, CollectionUsers, "missing", map[string]any{"id": "missing"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS documents").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
