package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PostgresStore)(nil)

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a pool whose schema has been migrated with
// migrations/postgres.Apply.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, collection Collection, id string) (Document, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		"SELECT data FROM documents WHERE collection = $1 AND id = $2",
		string(collection), id,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return Document{ID: id, Data: data}, nil
}

func (s *PostgresStore) GetAll(ctx context.Context, collection Collection) ([]Document, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, data FROM documents WHERE collection = $1 ORDER BY id",
		string(collection),
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Document, error) {
		var doc Document
		err := row.Scan(&doc.ID, &doc.Data)
		return doc, err
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *PostgresStore) Put(ctx context.Context, collection Collection, doc Document) (string, error) {
	doc = assignID(doc)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()
	`, string(collection), doc.ID, doc.Data)
	if err != nil {
		return "", fmt.Errorf("put document: %w", err)
	}
	return doc.ID, nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection Collection, id string) error {
	_, err := s.pool.Exec(ctx,
		"DELETE FROM documents WHERE collection = $1 AND id = $2",
		string(collection), id,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
