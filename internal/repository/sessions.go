package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/garrettladley/pulse/internal/storage"
	"github.com/garrettladley/pulse/internal/training"
	"github.com/garrettladley/pulse/internal/validator"
	"github.com/garrettladley/pulse/internal/xerrors"
)

type sessionRepo struct {
	store storage.Store
}

func (r *sessionRepo) Save(ctx context.Context, rec *training.Record) (string, error) {
	if err := validator.Validate(rec); err != nil {
		return "", err
	}
	// the id is fixed before the first write so a retry after an ambiguous
	// failure overwrites the same document.
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	data, err := go_json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode training session: %w", err)
	}

	id, err := r.store.Put(ctx, storage.CollectionTrainingSessions, storage.Document{ID: rec.ID, Data: data})
	if err != nil {
		return "", xerrors.Storage(
			xerrors.WithMessage("could not save training session, try again"),
			xerrors.WithCause(err),
		)
	}
	rec.ID = id
	return id, nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*training.Record, error) {
	doc, err := r.store.Get(ctx, storage.CollectionTrainingSessions, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, xerrors.NotFound(
			xerrors.WithMessage(fmt.Sprintf("training session %q not found", id)),
			xerrors.WithCause(err),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get training session: %w", err)
	}
	rec, err := decodeRecord(doc)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sessionRepo) List(ctx context.Context, params ListParams) (*CursorResult[training.Record], error) {
	docs, err := r.store.GetAll(ctx, storage.CollectionTrainingSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to list training sessions: %w", err)
	}

	records := make([]training.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := decodeRecord(doc)
		if err != nil {
			return nil, err
		}
		if params.UserID != "" && rec.UserID != params.UserID {
			continue
		}
		if params.Cursor != nil && params.Cursor.Cursor != nil && !params.Cursor.Cursor.includes(rec) {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return newer(records[i], records[j])
	})

	limit := DefaultPageSize
	if params.Cursor != nil && params.Cursor.Limit > 0 {
		limit = params.Cursor.Limit
	}

	result := &CursorResult[training.Record]{Records: records}
	if len(records) > limit {
		result.Records = records[:limit]
		last := records[limit-1]
		result.NextCursor = &Cursor{Date: last.Date, ID: last.ID}
	}
	return result, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, storage.CollectionTrainingSessions, id); err != nil {
		return xerrors.Storage(
			xerrors.WithMessage("could not delete training session"),
			xerrors.WithCause(err),
		)
	}
	return nil
}

// newer orders sessions newest first, breaking date ties by descending id.
func newer(a, b training.Record) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.ID > b.ID
}

func decodeRecord(doc storage.Document) (training.Record, error) {
	var rec training.Record
	if err := go_json.Unmarshal(doc.Data, &rec); err != nil {
		return training.Record{}, fmt.Errorf("failed to decode training session %s: %w", doc.ID, err)
	}
	rec.ID = doc.ID
	return rec, nil
}
