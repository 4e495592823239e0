package receipt

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Lookup when no score exists for an identifier
var ErrNotFound = errors.New("score not found")

// IDGenerator generates unique identifiers for stored scores
type IDGenerator interface {
	Generate() string
}

// defaultIDGenerator generates random UUID identifiers
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// Store defines the interface for score storage operations
type Store interface {
	// Insert stores totalPoints under a freshly generated identifier and
	// returns that identifier
	Insert(totalPoints int64) (string, error)

	// Lookup returns the points stored under id, or ErrNotFound
	Lookup(id string) (int64, error)
}

// MemoryStore implements the Store interface with an in-memory map
type MemoryStore struct {
	mu          sync.RWMutex
	scores      map[string]int64
	idGenerator IDGenerator
}

// NewMemoryStore creates a new MemoryStore with the default ID generator
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithIDGenerator(&defaultIDGenerator{})
}

// NewMemoryStoreWithIDGenerator creates a new MemoryStore with a custom ID
// generator for testing
func NewMemoryStoreWithIDGenerator(idGen IDGenerator) *MemoryStore {
	return &MemoryStore{
		scores:      make(map[string]int64),
		idGenerator: idGen,
	}
}

// Insert stores a score under a new identifier
func (s *MemoryStore) Insert(totalPoints int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.idGenerator.Generate()
	s.scores[id] = totalPoints
	return id, nil
}

// Lookup retrieves a score by identifier. Identifiers that are not valid
// UUIDs are treated as misses without touching the map.
func (s *MemoryStore) Lookup(id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.scores[id]
	if !ok {
		return 0, ErrNotFound
	}
	return points, nil
}
