package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

const documentsKeyPrefix = "documents:"

type RedisConfig struct {
	Client *redis.Client
}

// RedisStore keeps each collection in one hash keyed by document id.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg RedisConfig) *RedisStore {
	return &RedisStore{client: cfg.Client}
}

func (r *RedisStore) key(collection Collection) string {
	return documentsKeyPrefix + string(collection)
}

func (r *RedisStore) Get(ctx context.Context, collection Collection, id string) (Document, error) {
	data, err := r.client.HGet(ctx, r.key(collection), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	return Document{ID: id, Data: data}, nil
}

func (r *RedisStore) GetAll(ctx context.Context, collection Collection) ([]Document, error) {
	all, err := r.client.HGetAll(ctx, r.key(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]Document, 0, len(all))
	for id, data := range all {
		docs = append(docs, Document{ID: id, Data: []byte(data)})
	}
	sortByID(docs)
	return docs, nil
}

func (r *RedisStore) Put(ctx context.Context, collection Collection, doc Document) (string, error) {
	doc = assignID(doc)
	if err := r.client.HSet(ctx, r.key(collection), doc.ID, doc.Data).Err(); err != nil {
		return "", fmt.Errorf("failed to put document: %w", err)
	}
	return doc.ID, nil
}

func (r *RedisStore) Delete(ctx context.Context, collection Collection, id string) error {
	if err := r.client.HDel(ctx, r.key(collection), id).Err(); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
