package datacache

import (
	"context"

	"github.com/dtroode/creatorhub/internal/model"
)

// View is one collection together with the shared loading and error state.
// Items is never nil.
type View[T any] struct {
	Items        []T
	Status       model.CollectionStatus
	Err          error
	Loading      bool
	AggregateErr error
	Refetch      func(ctx context.Context) error
}

func newView[T any](s *Store, items []T, st CollectionState, snap Snapshot) View[T] {
	return View[T]{
		Items:        items,
		Status:       st.Status,
		Err:          st.Err,
		Loading:      snap.Loading,
		AggregateErr: snap.Err,
		Refetch:      s.Refetch,
	}
}

func (s *Store) Users() View[model.User] {
	snap := s.Snapshot()
	return newView(s, snap.Users, snap.State(model.CollectionUsers), snap)
}

func (s *Store) Fans() View[model.Fan] {
	snap := s.Snapshot()
	return newView(s, snap.Fans, snap.State(model.CollectionFans), snap)
}

func (s *Store) Content() View[model.Content] {
	snap := s.Snapshot()
	return newView(s, snap.Content, snap.State(model.CollectionContent), snap)
}

func (s *Store) Images() View[model.Image] {
	snap := s.Snapshot()
	return newView(s, snap.Images, snap.State(model.CollectionImages), snap)
}
