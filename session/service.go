package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"nutriplan"
	"nutriplan/planner"
	"nutriplan/profile"

	"github.com/google/uuid"
)

// Generator is satisfied by *planner.Planner and *planner.InstrumentedPlanner.
type Generator interface {
	Generate(ctx context.Context, profile nutriplan.UserProfile) planner.Result
	Chat(ctx context.Context, profile nutriplan.UserProfile, history []nutriplan.Message) (string, error)
}

type Store interface {
	Get(ctx context.Context, id string) (Snapshot, error)
	Put(ctx context.Context, s Snapshot) error
}

type Service struct {
	gen   Generator
	store Store
	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(gen Generator, store Store) *Service {
	return &Service{
		gen:   gen,
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
		locks: map[string]*sessionLock{},
	}
}

// lock serializes read-modify-write cycles on one session. The entry is
// dropped once no caller holds or waits on it.
func (s *Service) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// Start validates p, generates a plan and stores a new session.
func (s *Service) Start(ctx context.Context, p nutriplan.UserProfile) (Snapshot, error) {
	if err := profile.Validate(p); err != nil {
		return Snapshot{}, err
	}

	id := s.newID()
	snap := s.generate(ctx, id, p)
	if err := s.store.Put(ctx, snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to store session: %w", err)
	}
	slog.Info("SESSION: Started", "id", id, "state", snap.Result.State)
	return snap, nil
}

// Submit replaces the session profile wholesale and regenerates.
func (s *Service) Submit(ctx context.Context, id string, p nutriplan.UserProfile) (Snapshot, error) {
	if err := profile.Validate(p); err != nil {
		return Snapshot{}, err
	}
	defer s.lock(id)()

	if _, err := s.store.Get(ctx, id); err != nil {
		return Snapshot{}, err
	}
	return s.replace(ctx, id, p)
}

// Regenerate requests a new plan for the stored profile. Plan, grocery list,
// prep schedule and all toggles are replaced together.
func (s *Service) Regenerate(ctx context.Context, id string) (Snapshot, error) {
	defer s.lock(id)()

	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.replace(ctx, id, cur.Profile)
}

func (s *Service) replace(ctx context.Context, id string, p nutriplan.UserProfile) (Snapshot, error) {
	snap := s.generate(ctx, id, p)
	if err := s.store.Put(ctx, snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to store session: %w", err)
	}
	slog.Info("SESSION: Regenerated", "id", id, "state", snap.Result.State)
	return snap, nil
}

func (s *Service) generate(ctx context.Context, id string, p nutriplan.UserProfile) Snapshot {
	res := s.gen.Generate(ctx, p)
	return Build(id, p, res, s.now())
}

func (s *Service) Get(ctx context.Context, id string) (Snapshot, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ToggleGrocery(ctx context.Context, id, key string) (Snapshot, error) {
	return s.update(ctx, id, func(cur Snapshot) (Snapshot, error) {
		return cur.ToggleGrocery(key)
	})
}

func (s *Service) ToggleTask(ctx context.Context, id, key string) (Snapshot, error) {
	return s.update(ctx, id, func(cur Snapshot) (Snapshot, error) {
		return cur.ToggleTask(key)
	})
}

func (s *Service) update(ctx context.Context, id string, fn func(Snapshot) (Snapshot, error)) (Snapshot, error) {
	defer s.lock(id)()

	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	next, err := fn(cur)
	if err != nil {
		return Snapshot{}, err
	}
	if err := s.store.Put(ctx, next); err != nil {
		return Snapshot{}, fmt.Errorf("failed to store session: %w", err)
	}
	return next, nil
}

// Chat relays history to the model with the session profile as context.
func (s *Service) Chat(ctx context.Context, id string, history []nutriplan.Message) (string, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.gen.Chat(ctx, cur.Profile, history)
}
