package queue

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vck-social/postergen/pkg/template"
)

// DefaultDueLimit caps Due when the caller passes no limit.
const DefaultDueLimit = 20

// Queue applies queue operations to a Store.
type Queue struct {
	store Store
	newID func() string
}

func New(store Store) *Queue {
	return &Queue{store: store, newID: uuid.NewString}
}

func (q *Queue) update(ctx context.Context, op string, fn func([]Record) ([]Record, error)) error {
	err := q.store.Update(ctx, fn)
	if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidRecord) {
		log.Error().Err(err).Str("op", op).Msg("queue persistence failed")
	}
	return err
}

// Add stores rec. An empty ID is filled with a fresh UUID and an empty status
// becomes queued.
func (q *Queue) Add(ctx context.Context, rec Record) (Record, error) {
	out, err := q.AddMany(ctx, []Record{rec})
	if err != nil {
		return Record{}, err
	}
	return out[0], nil
}

// AddMany stores every record or none of them.
func (q *Queue) AddMany(ctx context.Context, recs []Record) ([]Record, error) {
	prepared := make([]Record, len(recs))
	for i, rec := range recs {
		if rec.ID == "" {
			rec.ID = q.newID()
		}
		if rec.Status == "" {
			rec.Status = StatusQueued
		}
		rec.Platforms = slices.Clone(rec.Platforms)
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		prepared[i] = rec
	}

	err := q.update(ctx, "add", func(existing []Record) ([]Record, error) {
		for _, rec := range prepared {
			if slices.ContainsFunc(existing, func(r Record) bool { return r.ID == rec.ID }) {
				return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRecord, rec.ID)
			}
		}
		return append(existing, prepared...), nil
	})
	if err != nil {
		return nil, err
	}
	return prepared, nil
}

// AddBatch queues one post per date, each at the same clock time (HH:MM).
// Blank dates are skipped. Dates are YYYY-MM-DD and the resulting times are
// zone-less.
func (q *Queue) AddBatch(ctx context.Context, def *template.Definition, caption string, platforms []Platform, dates []string, clock string) ([]Record, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: no template selected", ErrInvalidRecord)
	}
	var recs []Record
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		at, err := ParseTimestamp(d + "T" + clock + ":00")
		if err != nil {
			return nil, fmt.Errorf("%w: date %q at %q", ErrInvalidRecord, d, clock)
		}
		recs = append(recs, Record{
			TemplateID:   def.ID,
			TemplateName: def.Name,
			Caption:      caption,
			Platforms:    platforms,
			ScheduledAt:  at,
			Status:       StatusQueued,
		})
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: no dates given", ErrInvalidRecord)
	}
	return q.AddMany(ctx, recs)
}

// Remove deletes the record with id.
func (q *Queue) Remove(ctx context.Context, id string) error {
	return q.update(ctx, "remove", func(recs []Record) ([]Record, error) {
		i := slices.IndexFunc(recs, func(r Record) bool { return r.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return slices.Delete(recs, i, i+1), nil
	})
}

// SetStatus moves a record to status, e.g. after a publish attempt.
func (q *Queue) SetStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, status)
	}
	return q.update(ctx, "set-status", func(recs []Record) ([]Record, error) {
		i := slices.IndexFunc(recs, func(r Record) bool { return r.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		recs[i].Status = status
		return recs, nil
	})
}

func byScheduledAt(a, b Record) int {
	return cmp.Or(a.ScheduledAt.Compare(b.ScheduledAt.Time), cmp.Compare(a.ID, b.ID))
}

// List returns every record ordered by schedule time.
func (q *Queue) List(ctx context.Context) ([]Record, error) {
	recs, err := q.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(recs, byScheduledAt)
	return recs, nil
}

// On returns the records scheduled on the calendar day of day, in its zone.
func (q *Queue) On(ctx context.Context, day time.Time) ([]Record, error) {
	recs, err := q.List(ctx)
	if err != nil {
		return nil, err
	}
	y, m, d := day.Date()
	return slices.DeleteFunc(recs, func(r Record) bool {
		ry, rm, rd := r.ScheduledAt.In(day.Location()).Date()
		return ry != y || rm != m || rd != d
	}), nil
}

// Due returns up to limit queued records scheduled at or before now, oldest
// first. A limit of zero or less means DefaultDueLimit.
func (q *Queue) Due(ctx context.Context, now time.Time, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultDueLimit
	}
	recs, err := q.List(ctx)
	if err != nil {
		return nil, err
	}
	due := make([]Record, 0, min(limit, len(recs)))
	for _, r := range recs {
		if len(due) == limit {
			break
		}
		if r.Status == StatusQueued && !r.ScheduledAt.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

// Stats counts records by status.
func (q *Queue) Stats(ctx context.Context) (Stats, error) {
	recs, err := q.store.Load(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(recs)}
	for _, r := range recs {
		switch r.Status {
		case StatusQueued:
			st.Queued++
		case StatusPublished:
			st.Published++
		case StatusFailed:
			st.Failed++
		}
	}
	return st, nil
}
