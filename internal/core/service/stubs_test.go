package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.Activity
}

func (r *stubRecorder) Record(a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, a)
}

func (r *stubRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type stubGuestRepo struct {
	guests  map[int64]domain.Guest
	listErr error
}

func newStubGuestRepo(guests ...domain.Guest) *stubGuestRepo {
	r := &stubGuestRepo{guests: make(map[int64]domain.Guest)}
	for _, g := range guests {
		r.guests[g.ID] = g
	}
	return r
}

func (r *stubGuestRepo) List(_ context.Context) ([]domain.Guest, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Guest, 0, len(r.guests))
	for _, g := range r.guests {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubGuestRepo) FindByID(_ context.Context, id int64) (*domain.Guest, error) {
	g, ok := r.guests[id]
	if !ok {
		return nil, domain.ErrGuestNotFound
	}
	return &g, nil
}

type stubEpisodeRepo struct {
	episodes    map[int64]domain.Episode
	appearances *stubAppearanceRepo // cascade target
	deleteErr   error
}

func newStubEpisodeRepo(appearances *stubAppearanceRepo, episodes ...domain.Episode) *stubEpisodeRepo {
	r := &stubEpisodeRepo{episodes: make(map[int64]domain.Episode), appearances: appearances}
	for _, e := range episodes {
		r.episodes[e.ID] = e
	}
	return r
}

func (r *stubEpisodeRepo) List(_ context.Context) ([]domain.Episode, error) {
	out := make([]domain.Episode, 0, len(r.episodes))
	for _, e := range r.episodes {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubEpisodeRepo) FindByID(_ context.Context, id int64) (*domain.Episode, error) {
	e, ok := r.episodes[id]
	if !ok {
		return nil, domain.ErrEpisodeNotFound
	}
	return &e, nil
}

func (r *stubEpisodeRepo) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.episodes[id]; !ok {
		return domain.ErrEpisodeNotFound
	}
	delete(r.episodes, id)
	if r.appearances != nil {
		for aid, a := range r.appearances.rows {
			if a.EpisodeID == id {
				delete(r.appearances.rows, aid)
			}
		}
	}
	return nil
}

type stubAppearanceRepo struct {
	rows      map[int64]domain.Appearance
	nextID    int64
	createErr error
}

func newStubAppearanceRepo(rows ...domain.Appearance) *stubAppearanceRepo {
	r := &stubAppearanceRepo{rows: make(map[int64]domain.Appearance)}
	for _, a := range rows {
		r.rows[a.ID] = a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func (r *stubAppearanceRepo) Create(_ context.Context, a *domain.Appearance) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	a.ID = r.nextID
	r.rows[a.ID] = *a
	return nil
}

func (r *stubAppearanceRepo) FindByID(_ context.Context, id int64) (*domain.Appearance, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrAppearanceNotFound
	}
	return &a, nil
}

func (r *stubAppearanceRepo) ListByEpisode(_ context.Context, episodeID int64) ([]domain.Appearance, error) {
	var out []domain.Appearance
	for _, a := range r.rows {
		if a.EpisodeID == episodeID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubIdempotencyStore struct {
	keys      map[string]int64
	lookupErr error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]int64)}
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, key string) (int64, bool, error) {
	if s.lookupErr != nil {
		return 0, false, s.lookupErr
	}
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *stubIdempotencyStore) Remember(_ context.Context, key string, id int64) error {
	s.keys[key] = id
	return nil
}

var errStore = errors.New("store unavailable")
