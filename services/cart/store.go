package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"serenity/models"
)

// Store holds an ordered sequence of cart entries, driven through the
// reducer. Every transition is serialized and written to the storage
// collaborator under the store's fixed key; persistence is best-effort,
// so a failed read or write degrades rather than crashing — the cart
// stays correct in memory.
type Store struct {
	key     string
	storage Storage
	logger  *zap.Logger

	mu      sync.Mutex
	entries []models.CartEntry
}

// NewStore creates a store bound to its persistence key and attempts to
// rehydrate previously saved state. Saved entries are replayed one at a
// time through the ADD transition so mutation has a single code path.
func NewStore(ctx context.Context, key string, storage Storage, logger *zap.Logger) *Store {
	s := &Store{
		key:     key,
		storage: storage,
		logger:  logger,
		entries: []models.CartEntry{},
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	saved, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Error("failed to load cart", zap.String("key", s.key), zap.Error(err))
		}
		return
	}

	var entries []models.CartEntry
	if err := json.Unmarshal([]byte(saved), &entries); err != nil {
		s.logger.Error("failed to parse saved cart", zap.String("key", s.key), zap.Error(err))
		return
	}

	state := Reduce(nil, Action{Type: ActionClear})
	for _, entry := range entries {
		state = Reduce(state, Action{Type: ActionAdd, Entry: entry})
	}
	s.entries = state
}

// Add appends an entry to the cart.
func (s *Store) Add(ctx context.Context, entry models.CartEntry) {
	s.dispatch(ctx, Action{Type: ActionAdd, Entry: entry})
}

// Remove drops the entry with the given appointment ID, if present.
func (s *Store) Remove(ctx context.Context, appointmentID string) {
	s.dispatch(ctx, Action{Type: ActionRemove, AppointmentID: appointmentID})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.dispatch(ctx, Action{Type: ActionClear})
}

func (s *Store) dispatch(ctx context.Context, action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = Reduce(s.entries, action)
	s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Error("failed to serialize cart", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("failed to save cart", zap.String("key", s.key), zap.Error(err))
	}
}

// Entries returns a copy of the current cart state in order.
func (s *Store) Entries() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.CartEntry{}, s.entries...)
}

// Get returns the entry with the given appointment ID.
func (s *Store) Get(appointmentID string) (models.CartEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.AppointmentID == appointmentID {
			return entry, true
		}
	}
	return models.CartEntry{}, false
}
