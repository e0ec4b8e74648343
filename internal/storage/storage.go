package storage

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

type Collection string

const (
	CollectionTrainingSessions Collection = "training_sessions"
	CollectionAthletes         Collection = "athletes"
)

// Document is a stored record: an id and its JSON encoding.
type Document struct {
	ID   string
	Data []byte
}

// Store is a key-value record store partitioned into named collections.
type Store interface {
	// Get returns ErrNotFound if the collection has no document with id.
	Get(ctx context.Context, collection Collection, id string) (Document, error)

	// GetAll returns every document in the collection ordered by id.
	GetAll(ctx context.Context, collection Collection) ([]Document, error)

	// Put inserts or replaces doc and returns its id. A document without an
	// id is assigned a new one.
	Put(ctx context.Context, collection Collection, doc Document) (string, error)

	// Delete removes the document; deleting a missing id is not an error.
	Delete(ctx context.Context, collection Collection, id string) error

	Close() error
}

func assignID(doc Document) Document {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	return doc
}

func sortByID(docs []Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
