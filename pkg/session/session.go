// Package session keeps incremental layouts alive between requests.
//
// A [Session] records the layout parameters and every size placed so far.
// Because placement is deterministic, the full layouter state can be rebuilt
// at any time by replaying the recorded sizes into a fresh layouter, so a
// session only needs to store plain data and any backend can hold it:
//   - memory: in-process map, for development and tests
//   - file: one JSON file per session, for single-host deployments
//   - redis: shared store with native expiry
//   - mongo: document store with a TTL index
//
// # Usage
//
//	store := session.NewMemoryStore()
//	mgr := session.NewManager(store, session.DefaultTTL, logger)
//
//	sess, err := mgr.Create(ctx, pipeline.Options{Width: 800, Height: 600})
//	placed, sess, err := mgr.Place(ctx, sess.ID, items)
package session

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// DefaultTTL is the default session lifetime, refreshed on every placement.
const DefaultTTL = 24 * time.Hour

// Session is the persisted state of an incremental layout.
type Session struct {
	ID           string           `json:"id" bson:"_id"`
	Width        int              `json:"width" bson:"width"`
	Height       int              `json:"height" bson:"height"`
	Center       geom.Point       `json:"center" bson:"center"`
	Distribution string           `json:"distribution" bson:"distribution"`
	AngleStep    float64          `json:"angle_step,omitempty" bson:"angle_step,omitempty"`
	Coefficient  float64          `json:"coefficient,omitempty" bson:"coefficient,omitempty"`
	Stride       int              `json:"stride,omitempty" bson:"stride,omitempty"`
	MaxSteps     int              `json:"max_steps,omitempty" bson:"max_steps,omitempty"`
	Sizes        []geom.Size      `json:"sizes" bson:"sizes"`
	Labels       []string         `json:"labels,omitempty" bson:"labels,omitempty"`
	Rectangles   []geom.Rectangle `json:"rectangles" bson:"rectangles"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
	ExpiresAt    time.Time        `json:"expires_at" bson:"expires_at"`
}

// New creates a session with a fresh ID from validated layout options.
func New(opts pipeline.Options, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.NewString(),
		Width:        opts.Width,
		Height:       opts.Height,
		Center:       opts.CenterPoint(),
		Distribution: opts.Distribution,
		AngleStep:    opts.AngleStep,
		Coefficient:  opts.Coefficient,
		Stride:       opts.Stride,
		MaxSteps:     opts.MaxSteps,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}
}

// ValidID reports whether id looks like a session ID.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Options returns the pipeline options the session was created with.
func (s *Session) Options() pipeline.Options {
	center := s.Center
	return pipeline.Options{
		Width:        s.Width,
		Height:       s.Height,
		Center:       &center,
		Distribution: s.Distribution,
		AngleStep:    s.AngleStep,
		Coefficient:  s.Coefficient,
		Stride:       s.Stride,
		MaxSteps:     s.MaxSteps,
	}
}

// Layout returns the session's placements as a pipeline layout.
func (s *Session) Layout() pipeline.Layout {
	l := pipeline.Layout{
		Center:     s.Center,
		Canvas:     geom.Sz(s.Width, s.Height),
		Rectangles: slices.Clone(s.Rectangles),
	}
	if len(s.Labels) > 0 {
		l.Labels = slices.Clone(s.Labels)
	}
	return l
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op for backends with
	// native expiry).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
