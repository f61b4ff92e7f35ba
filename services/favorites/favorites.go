package favorites

import (
	"sync"

	"serenity/models"
)

// Store keeps each user's liked services in memory, in insertion order.
// Favorites are deliberately not persisted; they reset on process restart.
type Store struct {
	mu    sync.Mutex
	likes map[string][]models.Service
}

// NewStore returns an empty favorites store. One instance is shared per
// process, constructed at startup.
func NewStore() *Store {
	return &Store{likes: make(map[string][]models.Service)}
}

// Toggle adds the service to the user's favorites if absent, otherwise
// removes it. A second toggle always reverses the first.
func (s *Store) Toggle(userID string, service models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.likes[userID]
	for i, fav := range current {
		if fav.ID == service.ID {
			s.likes[userID] = append(append([]models.Service{}, current[:i]...), current[i+1:]...)
			return
		}
	}
	s.likes[userID] = append(current, service)
}

// IsFavorite reports whether the user has liked the service.
func (s *Store) IsFavorite(userID, serviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fav := range s.likes[userID] {
		if fav.ID == serviceID {
			return true
		}
	}
	return false
}

// List returns the user's favorites in the order they were added.
func (s *Store) List(userID string) []models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Service{}, s.likes[userID]...)
}
