package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Schema creates the table used by PostgresStore.
const Schema = `CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	data JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
)`

type documentRow struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

// PostgresStore keeps documents as JSONB rows keyed by collection path and id.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open connection pool.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate ensures the documents table exists.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var row documentRow
	const query = `SELECT id, data FROM documents WHERE collection = $1 AND id = $2`
	if err := s.db.GetContext(ctx, &row, query, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return row.document()
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []documentRow
	const query = `SELECT id, data FROM documents WHERE collection = $1 ORDER BY created_at, id`
	if err := s.db.SelectContext(ctx, &rows, query, collection); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (s *PostgresStore) Create(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	payload, err := marshalData(data)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	const query = `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, collection, id, payload); err != nil {
		return "", fmt.Errorf("create in %s: %w", collection, err)
	}
	return id, nil
}

func (s *PostgresStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	payload, err := marshalData(data)
	if err != nil {
		return err
	}
	const query = `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, query, collection, id, payload); err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	payload, err := marshalData(fields)
	if err != nil {
		return err
	}
	const query = `UPDATE documents SET data = data || $3::jsonb, updated_at = now() WHERE collection = $1 AND id = $2`
	res, err := s.db.ExecContext(ctx, query, collection, id, payload)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	const query = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	res, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (r documentRow) document() (*Document, error) {
	data := map[string]interface{}{}
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, &data); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", r.ID, err)
		}
	}
	return &Document{ID: r.ID, Data: data}, nil
}

func marshalData(data map[string]interface{}) ([]byte, error) {
	if data == nil {
		data = map[string]interface{}{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return payload, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
