package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one Store per user, constructed lazily on first use
// and kept for the process lifetime. Each store persists under its own
// fixed key.
type Manager struct {
	storage Storage
	logger  *zap.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager returns a manager persisting carts through the given storage.
func NewManager(storage Storage, logger *zap.Logger) *Manager {
	return &Manager{
		storage: storage,
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

// StoreFor returns the user's cart store, rehydrating persisted state on
// first access.
func (m *Manager) StoreFor(ctx context.Context, userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[userID]; ok {
		return store
	}
	store := NewStore(ctx, "cart:"+userID, m.storage, m.logger)
	m.stores[userID] = store
	return store
}
