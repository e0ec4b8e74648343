package storage

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps documents in process; contents are lost on Close.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[Collection]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[Collection]map[string][]byte),
	}
}

func (m *MemoryStore) Get(_ context.Context, collection Collection, id string) (Document, error) {
	m.mu.RLock()
	data, ok := m.docs[collection][id]
	m.mu.RUnlock()

	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: cloneBytes(data)}, nil
}

func (m *MemoryStore) GetAll(_ context.Context, collection Collection) ([]Document, error) {
	m.mu.RLock()
	docs := make([]Document, 0, len(m.docs[collection]))
	for id, data := range m.docs[collection] {
		docs = append(docs, Document{ID: id, Data: cloneBytes(data)})
	}
	m.mu.RUnlock()

	sortByID(docs)
	return docs, nil
}

func (m *MemoryStore) Put(_ context.Context, collection Collection, doc Document) (string, error) {
	doc = assignID(doc)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string][]byte)
	}
	m.docs[collection][doc.ID] = cloneBytes(doc.Data)
	return doc.ID, nil
}

func (m *MemoryStore) Delete(_ context.Context, collection Collection, id string) error {
	m.mu.Lock()
	delete(m.docs[collection], id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.docs = make(map[Collection]map[string][]byte)
	m.mu.Unlock()
	return nil
}
