package customizer

import (
	"sync"

	"board-customizer/models"
)

// Change describes one mutation of the store
type Change struct {
	Category  models.Category
	Previous  models.CustomizerOption
	Current   models.CustomizerOption
	Selection models.Selection
}

// Listener is notified synchronously after every mutation
// Listeners must not call Set on the store that notifies them
type Listener func(Change)

type listenerEntry struct {
	id int
	fn Listener
}

// Store holds the current selection of one customizer page and broadcasts changes
type Store struct {
	// dispatchMu serializes mutations so notifications never interleave
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	selection models.Selection
	listeners []listenerEntry
	nextID    int
}

// NewStore creates a store seeded from the defaults, completing missing slots from doc
func NewStore(doc *models.BoardCustomizer, defaults Defaults) *Store {
	return &Store{selection: defaults.Complete(doc)}
}

// Get returns the option currently selected for a category
func (s *Store) Get(category models.Category) models.CustomizerOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.Get(category)
}

// Selection returns a copy of the full selection
func (s *Store) Selection() models.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Set selects an option for a category and notifies every subscriber before returning
// Re-selecting the current option is a no-op and returns false
func (s *Store) Set(category models.Category, option models.CustomizerOption) bool {
	if _, ok := models.ParseCategory(string(category)); !ok {
		return false
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	previous := s.selection.Get(category)
	if previous == option {
		s.mu.Unlock()
		return false
	}
	s.selection = s.selection.With(category, option)
	change := Change{
		Category:  category,
		Previous:  previous,
		Current:   option,
		Selection: s.selection,
	}
	listeners := make([]listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(change)
	}
	return true
}

// Subscribe registers a listener and returns a function that removes it
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
					break
				}
			}
		})
	}
}
