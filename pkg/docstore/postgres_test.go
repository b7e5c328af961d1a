package docstore

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock := newPostgresMock(t)
	rows := sqlmock.NewRows([]string{"id", "data"}).AddRow("c1", []byte(`{"course_code":"EE101"}`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, data FROM documents WHERE collection = $1 AND id = $2")).
		WithArgs("courses", "c1").
		WillReturnRows(rows)

	doc, err := store.Get(context.Background(), "courses", "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", doc.ID)
	assert.Equal(t, "EE101", doc.Data["course_code"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetMissing(t *testing.T) {
	store, mock := newPostgresMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, data FROM documents")).
		WithArgs("courses", "nope").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "courses", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresStoreList(t *testing.T) {
	store, mock := newPostgresMock(t)
	rows := sqlmock.NewRows([]string{"id", "data"}).
		AddRow("a", []byte(`{"heading":"A"}`)).
		AddRow("b", []byte(`{"heading":"B"}`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, data FROM documents WHERE collection = $1 ORDER BY")).
		WithArgs("watch-out-for/journals/items").
		WillReturnRows(rows)

	docs, err := store.List(context.Background(), "watch-out-for/journals/items")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "B", docs[1].Data["heading"])
}

func TestPostgresStoreCreate(t *testing.T) {
	store, mock := newPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents (collection, id, data)")).
		WithArgs("courses", sqlmock.AnyArg(), []byte(`{"course_name":"Signals"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.Create(context.Background(), "courses", map[string]interface{}{"course_name": "Signals"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSetUpserts(t *testing.T) {
	store, mock := newPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (collection, id) DO UPDATE")).
		WithArgs("research", "interests", []byte(`{"heading":"H"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "research", "interests", map[string]interface{}{"heading": "H"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreUpdateMergesAndDetectsMissing(t *testing.T) {
	store, mock := newPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta("SET data = data || $3::jsonb")).
		WithArgs("courses", "c1", []byte(`{"venue":"Hall"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET data = data || $3::jsonb")).
		WithArgs("courses", "gone", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Update(context.Background(), "courses", "c1", map[string]interface{}{"venue": "Hall"}))
	err := store.Update(context.Background(), "courses", "gone", map[string]interface{}{"venue": "Hall"})
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	store, mock := newPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents")).
		WithArgs("courses", "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents")).
		WithArgs("courses", "c2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents")).
		WithArgs("courses", "c3").
		WillReturnError(errors.New("connection reset"))

	require.NoError(t, store.Delete(context.Background(), "courses", "c1"))
	assert.ErrorIs(t, store.Delete(context.Background(), "courses", "c2"), ErrNotFound)
	err := store.Delete(context.Background(), "courses", "c3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
