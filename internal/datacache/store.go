// Package datacache holds the four dashboard collections (users, fans,
// content, images) fetched together and shared by every consumer.
//
// A fetch issues the four list requests concurrently and waits for all of
// them. Each collection settles on its own: a failed request leaves that
// collection empty with StatusFailed and does not affect its siblings. The
// four results are committed in one step, and only when no newer fetch has
// started since, so readers never observe a mix of two fetch cycles.
package datacache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dtroode/creatorhub/internal/logger"
	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/observability/metrics"
)

// ErrFetchPanicked is the aggregate error recorded when a fetch panics.
var ErrFetchPanicked = errors.New("collection fetch panicked")

// CollectionState is the outcome of the last settled fetch of a collection.
type CollectionState struct {
	Status model.CollectionStatus
	Err    error
	Count  int
}

// Snapshot is a consistent copy of the cache.
type Snapshot struct {
	Users   []model.User
	Fans    []model.Fan
	Content []model.Content
	Images  []model.Image

	Collections map[model.Collection]CollectionState
	// Loading is true while the newest fetch is outstanding.
	Loading bool
	// Err is set only when a fetch cycle itself failed; per-collection
	// failures are reported in Collections.
	Err        error
	Generation uint64
	UpdatedAt  time.Time
}

// State returns the state of collection c.
func (s Snapshot) State(c model.Collection) CollectionState {
	return s.Collections[c]
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Users = cloneItems(s.Users)
	out.Fans = cloneItems(s.Fans)
	out.Content = cloneItems(s.Content)
	out.Images = cloneItems(s.Images)
	out.Collections = make(map[model.Collection]CollectionState, len(s.Collections))
	for c, st := range s.Collections {
		out.Collections[c] = st
	}
	return out
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for Snapshot.UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is safe for concurrent use.
type Store struct {
	users   model.UserReader
	fans    model.FanReader
	content model.ContentReader
	images  model.ImageReader
	logger  *logger.Logger
	now     func() time.Time

	mu          sync.Mutex
	state       Snapshot
	gen         uint64
	initialized bool
	disposed    bool
	cancels     map[uint64]context.CancelFunc
	subs        map[int]chan Snapshot
	nextSub     int
}

// New creates an empty store. Nothing is fetched until Init or Refetch.
func New(
	users model.UserReader,
	fans model.FanReader,
	content model.ContentReader,
	images model.ImageReader,
	logger *logger.Logger,
	opts ...Option,
) *Store {
	s := &Store{
		users:   users,
		fans:    fans,
		content: content,
		images:  images,
		logger:  logger,
		now:     time.Now,
		cancels: make(map[uint64]context.CancelFunc),
		subs:    make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state = Snapshot{
		Users:       []model.User{},
		Fans:        []model.Fan{},
		Content:     []model.Content{},
		Images:      []model.Image{},
		Collections: make(map[model.Collection]CollectionState, len(model.Collections)),
	}
	for _, c := range model.Collections {
		s.state.Collections[c] = CollectionState{Status: model.StatusIdle}
	}
	return s
}

// Init performs the initial fetch. Calling it again, even while the first
// fetch is still in flight, is a no-op.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return model.ErrDisposed
	}
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.initialized = true
	s.mu.Unlock()
	return s.Refetch(ctx)
}

// Refetch fetches all four collections again and waits for the result.
// A result superseded by a newer Refetch is discarded and nil is returned.
// The returned error is ErrDisposed, the context error, or the aggregate
// error of this fetch cycle.
func (s *Store) Refetch(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gen, err := s.begin(cancel)
	if err != nil {
		return err
	}

	res, joinErr := s.fetchAll(ctx)

	if ctx.Err() != nil {
		return s.abort(gen, ctx.Err())
	}
	if !s.commit(gen, res, joinErr) {
		s.logger.Debug("Data cache: discarding superseded fetch", "generation", gen)
		if s.isDisposed() {
			return model.ErrDisposed
		}
		return nil
	}
	return joinErr
}

// Dispose cancels fetches in flight, closes every subscription and makes
// later calls fail with ErrDisposed.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	for gen, cancel := range s.cancels {
		cancel()
		delete(s.cancels, gen)
	}
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a channel receiving the current snapshot and then every
// change. A slow reader only sees the latest snapshot. The channel is closed
// by cancel or Dispose.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if s.disposed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state.clone()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			close(sub)
			delete(s.subs, id)
		}
	}
}

func (s *Store) isDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

func (s *Store) begin(cancel context.CancelFunc) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return 0, model.ErrDisposed
	}

	s.gen++
	s.initialized = true
	s.cancels[s.gen] = cancel
	s.state.Loading = true
	s.state.Err = nil
	s.state.Generation = s.gen
	for c, st := range s.state.Collections {
		if st.Status == model.StatusIdle {
			st.Status = model.StatusLoading
			s.state.Collections[c] = st
		}
	}
	s.notifyLocked()
	return s.gen, nil
}

type slot[T any] struct {
	items []T
	err   error
}

type result struct {
	users   slot[model.User]
	fans    slot[model.Fan]
	content slot[model.Content]
	images  slot[model.Image]
}

// fetchAll runs the four requests without sibling cancellation. The returned
// error is non-nil only when a fetch panicked.
func (s *Store) fetchAll(ctx context.Context) (*result, error) {
	var (
		g   errgroup.Group
		res result
	)

	s.spawn(&g, model.CollectionUsers, func() {
		res.users.items, res.users.err = s.users.List(ctx)
	})
	s.spawn(&g, model.CollectionFans, func() {
		res.fans.items, res.fans.err = s.fans.List(ctx)
	})
	s.spawn(&g, model.CollectionContent, func() {
		res.content.items, res.content.err = s.content.List(ctx)
	})
	s.spawn(&g, model.CollectionImages, func() {
		res.images.items, res.images.err = s.images.List(ctx)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Store) spawn(g *errgroup.Group, c model.Collection, fetch func()) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %s: %v", ErrFetchPanicked, c, r)
			}
		}()
		fetch()
		return nil
	})
}

func (s *Store) commit(gen uint64, res *result, joinErr error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cancels, gen)
	if s.disposed || gen != s.gen {
		return false
	}
	s.state.Loading = false

	if joinErr != nil {
		s.logger.Error("Data cache: fetch cycle failed",
			"generation", gen,
			"error", joinErr.Error())
		s.state.Err = joinErr
		s.resetLoadingLocked()
		s.notifyLocked()
		return true
	}

	var st CollectionState
	s.state.Users, st = settle(s, model.CollectionUsers, res.users.items, res.users.err)
	s.state.Collections[model.CollectionUsers] = st
	s.state.Fans, st = settle(s, model.CollectionFans, res.fans.items, res.fans.err)
	s.state.Collections[model.CollectionFans] = st
	s.state.Content, st = settle(s, model.CollectionContent, res.content.items, res.content.err)
	s.state.Collections[model.CollectionContent] = st
	s.state.Images, st = settle(s, model.CollectionImages, res.images.items, res.images.err)
	s.state.Collections[model.CollectionImages] = st
	s.state.UpdatedAt = s.now()

	s.notifyLocked()
	return true
}

func (s *Store) abort(gen uint64, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return model.ErrDisposed
	}
	delete(s.cancels, gen)
	if gen == s.gen {
		s.state.Loading = false
		s.resetLoadingLocked()
		s.notifyLocked()
	}
	return cause
}

func (s *Store) resetLoadingLocked() {
	for c, st := range s.state.Collections {
		if st.Status == model.StatusLoading {
			st.Status = model.StatusIdle
			s.state.Collections[c] = st
		}
	}
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		snap := s.state.clone()
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// settle turns a fetch outcome into committed items and a state. A failed
// fetch yields an empty collection.
func settle[T any](s *Store, c model.Collection, items []T, err error) ([]T, CollectionState) {
	if err != nil {
		s.logger.Warn("Data cache: collection fetch failed, showing it empty",
			"collection", string(c),
			"error", err.Error())
		metrics.ObserveCollectionFetch(string(c), model.StatusFailed.String())
		metrics.SetCollectionItems(string(c), 0)
		return []T{}, CollectionState{Status: model.StatusFailed, Err: err}
	}

	items = cloneItems(items)
	status := model.StatusOK
	if len(items) == 0 {
		status = model.StatusEmpty
	}
	metrics.ObserveCollectionFetch(string(c), status.String())
	metrics.SetCollectionItems(string(c), len(items))
	return items, CollectionState{Status: status, Count: len(items)}
}

func cloneItems[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
