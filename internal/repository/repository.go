package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/garrettladley/pulse/internal/storage"
	"github.com/garrettladley/pulse/internal/training"
)

type Repository struct {
	Sessions SessionRepository
	Athletes AthleteRepository
}

func New(store storage.Store) *Repository {
	return &Repository{
		Sessions: &sessionRepo{store: store},
		Athletes: &athleteRepo{store: store},
	}
}

// Cursor marks the last session of a page. Dates alone are not unique, so
// the id breaks ties.
type Cursor struct {
	Date time.Time
	ID   string
}

// cursorSep never appears in an RFC 3339 timestamp or a document id.
const cursorSep = ","

func (c Cursor) String() string {
	if c.ID == "" {
		return c.Date.Format(time.RFC3339Nano)
	}
	return c.Date.Format(time.RFC3339Nano) + cursorSep + c.ID
}

// ParseCursor reads the form produced by Cursor.String. A bare timestamp
// selects every session strictly before it.
func ParseCursor(s string) (Cursor, error) {
	stamp, id, _ := strings.Cut(s, cursorSep)
	date, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid cursor %q: %w", s, err)
	}
	return Cursor{Date: date, ID: id}, nil
}

// includes reports whether rec belongs on a page that starts after c.
func (c Cursor) includes(rec training.Record) bool {
	if !rec.Date.Equal(c.Date) {
		return rec.Date.Before(c.Date)
	}
	return c.ID != "" && rec.ID < c.ID
}

type CursorParams struct {
	Limit  int
	Cursor *Cursor
}

type CursorResult[T any] struct {
	Records    []T
	NextCursor *Cursor
}

const DefaultPageSize = 50

type ListParams struct {
	// UserID restricts the listing to one athlete when set.
	UserID string
	Cursor *CursorParams
}

type SessionRepository interface {
	// Save validates and stores rec, setting rec.ID. Storage failures are
	// reported as retryable; rec is left intact for another attempt.
	Save(ctx context.Context, rec *training.Record) (string, error)
	Get(ctx context.Context, id string) (*training.Record, error)
	// List returns sessions newest first. The next page starts strictly
	// before NextCursor.
	List(ctx context.Context, params ListParams) (*CursorResult[training.Record], error)
	Delete(ctx context.Context, id string) error
}

type AthleteRepository interface {
	Put(ctx context.Context, athlete *Athlete) error
	Get(ctx context.Context, id string) (*Athlete, error)
	List(ctx context.Context) ([]Athlete, error)
	// Threshold returns the athlete's anaerobic threshold heart rate, or
	// fallback if the athlete is unknown or has none set.
	Threshold(ctx context.Context, id string, fallback float64) (float64, error)
}
