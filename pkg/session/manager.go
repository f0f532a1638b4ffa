package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/sizes"
)

// MaxRectangles bounds the number of rectangles a single session may hold.
const MaxRectangles = pipeline.MaxCount

// Manager creates sessions and places rectangles into them. Placements into
// the same session are serialized; different sessions proceed in parallel.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger *log.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewManager returns a manager backed by store. A non-positive ttl uses
// [DefaultTTL].
func NewManager(store Store, ttl time.Duration, logger *log.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		store:  store,
		ttl:    ttl,
		logger: logger,
		locks:  make(map[string]*sessionLock),
	}
}

// Store returns the underlying store.
func (m *Manager) Store() Store { return m.store }

// Create validates the layout part of opts and stores an empty session.
func (m *Manager) Create(ctx context.Context, opts pipeline.Options) (*Session, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	sess := New(opts, m.ttl)
	if err := m.store.Set(ctx, sess); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "store session")
	}
	observability.Session().OnSessionCreated(ctx, sess.ID)
	m.logger.Debug("session created", "id", sess.ID, "center", sess.Center)
	return sess, nil
}

// Get loads a live session. Missing and expired sessions both report
// SESSION_NOT_FOUND.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if !ValidID(id) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load session %s", id)
	}
	if sess == nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	return sess, nil
}

// Place lays out items after the session's existing rectangles and persists
// the result. Placement is all-or-nothing: if any item cannot be placed the
// session is left unchanged and the error (SEARCH_EXHAUSTED or
// INVALID_ARGUMENT) names the offending item.
func (m *Manager) Place(ctx context.Context, id string, items []sizes.Item) ([]geom.Rectangle, *Session, error) {
	unlock := m.lock(id)
	defer unlock()

	sess, err := m.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(sess.Sizes)+len(items) > MaxRectangles {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput,
			"session holds %d rectangles, adding %d exceeds limit %d", len(sess.Sizes), len(items), MaxRectangles)
	}

	l, err := Replay(sess)
	if err != nil {
		return nil, nil, err
	}

	placed := make([]geom.Rectangle, 0, len(items))
	for i, it := range items {
		r, err := l.PutNext(it.Size)
		observability.Session().OnRectanglePlaced(ctx, id, len(sess.Sizes)+i, l.LastSteps(), err)
		if err != nil {
			return nil, nil, errors.Wrap(errors.GetCode(err), err, "item %d", i)
		}
		placed = append(placed, r)
	}

	hasLabels := len(sess.Labels) > 0
	for _, it := range items {
		hasLabels = hasLabels || it.Label != ""
	}
	if hasLabels {
		labels := make([]string, len(sess.Sizes), len(sess.Sizes)+len(items))
		copy(labels, sess.Labels)
		for _, it := range items {
			labels = append(labels, it.Label)
		}
		sess.Labels = labels
	}
	for _, it := range items {
		sess.Sizes = append(sess.Sizes, it.Size)
	}
	sess.Rectangles = append(sess.Rectangles, placed...)
	sess.ExpiresAt = time.Now().Add(m.ttl)

	if err := m.store.Set(ctx, sess); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "store session %s", id)
	}
	m.logger.Debug("placed rectangles", "session", id, "added", len(placed), "total", len(sess.Rectangles))
	return placed, sess, nil
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()

	if _, err := m.Get(ctx, id); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete session %s", id)
	}
	observability.Session().OnSessionDeleted(ctx, id)
	return nil
}

// RunCleanup calls Store.Cleanup every interval until ctx is done.
func (m *Manager) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.store.Cleanup(ctx); err != nil {
				m.logger.Warn("session cleanup failed", "error", err)
			}
		}
	}
}

// lock acquires the per-session mutex and returns its release function.
// Entries are reference counted so the map does not grow with every ID ever
// seen.
func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// Replay rebuilds the layouter for sess by placing its recorded sizes into a
// fresh one. It fails with INTERNAL_ERROR if the replay diverges from the
// stored rectangles, which means the session was written by a different
// layout configuration.
func Replay(sess *Session) (*layouter.Layouter, error) {
	opts := sess.Options()
	l := layouter.NewWithDistribution(opts.NewDistribution(), layouter.WithMaxSteps(opts.MaxSteps))
	for i, s := range sess.Sizes {
		r, err := l.PutNext(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "replay session %s at %d", sess.ID, i)
		}
		if i >= len(sess.Rectangles) || r != sess.Rectangles[i] {
			return nil, errors.New(errors.ErrCodeInternal, "replay session %s diverged at %d", sess.ID, i)
		}
	}
	if len(sess.Rectangles) != len(sess.Sizes) {
		return nil, errors.New(errors.ErrCodeInternal, "session %s has %d rectangles for %d sizes", sess.ID, len(sess.Rectangles), len(sess.Sizes))
	}
	return l, nil
}
