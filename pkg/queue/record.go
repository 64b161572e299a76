// Package queue keeps the list of posters waiting to be published. Records
// use the same JSON shape the web client stores under vck_post_queue, so a
// queue exported from the browser can be loaded as-is.
package queue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrNotFound      = errors.New("queued post not found")
	ErrInvalidRecord = errors.New("invalid queued post")
)

// Status is the publishing state of a queued post.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
)

var statuses = []Status{StatusQueued, StatusScheduled, StatusPublished, StatusFailed}

func (s Status) Valid() bool { return slices.Contains(statuses, s) }

// Platform is a publishing target.
type Platform string

const (
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
)

// Platforms lists every supported target.
var Platforms = []Platform{Facebook, Instagram}

func (p Platform) Valid() bool { return slices.Contains(Platforms, p) }

// ParsePlatforms converts names to platforms, rejecting unknown ones.
func ParsePlatforms(names []string) ([]Platform, error) {
	out := make([]Platform, 0, len(names))
	for _, n := range names {
		p := Platform(n)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown platform %q", ErrInvalidRecord, n)
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// LocalLayout is the zone-less timestamp form written by the web client's
// date and time pickers.
const LocalLayout = "2006-01-02T15:04:05"

// Timestamp is a schedule time. Zone-less values are read in the local zone
// and written back without a zone, so round trips keep the original text.
type Timestamp struct {
	time.Time
	floating bool
}

// At wraps t as a zoned timestamp.
func At(t time.Time) Timestamp { return Timestamp{Time: t} }

// ParseTimestamp accepts RFC 3339 or LocalLayout.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	t, err := time.ParseInLocation(LocalLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: scheduledAt %q is neither RFC 3339 nor %s", ErrInvalidRecord, s, LocalLayout)
	}
	return Timestamp{Time: t, floating: true}, nil
}

func (ts Timestamp) String() string {
	if ts.floating {
		return ts.Format(LocalLayout)
	}
	return ts.Format(time.RFC3339)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: scheduledAt: %w", ErrInvalidRecord, err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Record is one queued post.
type Record struct {
	ID           string     `json:"id"`
	TemplateID   string     `json:"templateId"`
	TemplateName string     `json:"templateName"`
	Caption      string     `json:"caption"`
	Platforms    []Platform `json:"platforms"`
	ScheduledAt  Timestamp  `json:"scheduledAt"`
	Status       Status     `json:"status"`
}

// Validate checks the fields a publisher depends on.
func (r Record) Validate() error {
	var errs []error
	if r.TemplateID == "" {
		errs = append(errs, errors.New("missing templateId"))
	}
	if len(r.Platforms) == 0 {
		errs = append(errs, errors.New("no platforms"))
	}
	for _, p := range r.Platforms {
		if !p.Valid() {
			errs = append(errs, fmt.Errorf("unknown platform %q", p))
		}
	}
	if r.ScheduledAt.IsZero() {
		errs = append(errs, errors.New("missing scheduledAt"))
	}
	if !r.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", r.Status))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}

// Stats summarises a queue the way the schedule page header does.
type Stats struct {
	Total     int `json:"total"`
	Queued    int `json:"queued"`
	Published int `json:"published"`
	Failed    int `json:"failed"`
}
