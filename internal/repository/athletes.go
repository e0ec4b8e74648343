package repository

import (
	"context"
	"errors"
	"fmt"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/pulse/internal/storage"
	"github.com/garrettladley/pulse/internal/validator"
	"github.com/garrettladley/pulse/internal/xerrors"
)

// maxThresholdHR bounds plausible anaerobic threshold values in bpm.
const maxThresholdHR = 250

type Athlete struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name,omitempty"`
	AnaerobicThresholdHR float64 `json:"anaerobic_threshold_hr"`
}

var _ validator.Validator = (*Athlete)(nil)

func (a Athlete) Validate() map[string]string {
	var f validator.Fields
	f.Check(a.ID != "", "id", "required")
	f.Check(a.AnaerobicThresholdHR >= 0, "anaerobic_threshold_hr", "must not be negative")
	f.Check(a.AnaerobicThresholdHR < maxThresholdHR, "anaerobic_threshold_hr", "must be below 250")
	return f.Result()
}

type athleteRepo struct {
	store storage.Store
}

func (r *athleteRepo) Put(ctx context.Context, athlete *Athlete) error {
	if err := validator.Validate(athlete); err != nil {
		return err
	}
	data, err := go_json.Marshal(athlete)
	if err != nil {
		return fmt.Errorf("failed to encode athlete: %w", err)
	}
	if _, err := r.store.Put(ctx, storage.CollectionAthletes, storage.Document{ID: athlete.ID, Data: data}); err != nil {
		return xerrors.Storage(
			xerrors.WithMessage("could not save athlete"),
			xerrors.WithCause(err),
		)
	}
	return nil
}

func (r *athleteRepo) Get(ctx context.Context, id string) (*Athlete, error) {
	doc, err := r.store.Get(ctx, storage.CollectionAthletes, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, xerrors.NotFound(
			xerrors.WithMessage(fmt.Sprintf("athlete %q not found", id)),
			xerrors.WithCause(err),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get athlete: %w", err)
	}
	var a Athlete
	if err := go_json.Unmarshal(doc.Data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode athlete %s: %w", doc.ID, err)
	}
	a.ID = doc.ID
	return &a, nil
}

func (r *athleteRepo) List(ctx context.Context) ([]Athlete, error) {
	docs, err := r.store.GetAll(ctx, storage.CollectionAthletes)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes: %w", err)
	}
	athletes := make([]Athlete, 0, len(docs))
	for _, doc := range docs {
		var a Athlete
		if err := go_json.Unmarshal(doc.Data, &a); err != nil {
			return nil, fmt.Errorf("failed to decode athlete %s: %w", doc.ID, err)
		}
		a.ID = doc.ID
		athletes = append(athletes, a)
	}
	return athletes, nil
}

func (r *athleteRepo) Threshold(ctx context.Context, id string, fallback float64) (float64, error) {
	a, err := r.Get(ctx, id)
	if xerrors.IsKind(err, xerrors.KindNotFound) {
		return fallback, nil
	}
	if err != nil {
		return 0, err
	}
	if a.AnaerobicThresholdHR <= 0 {
		return fallback, nil
	}
	return a.AnaerobicThresholdHR, nil
}
