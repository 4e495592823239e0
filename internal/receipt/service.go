package receipt

import "fmt"

// Service handles receipt scoring operations
type Service struct {
	store Store
}

// NewService creates a new Service backed by the given score store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ProcessReceipt scores a receipt and stores the total under a freshly
// generated identifier, which it returns
func (s *Service) ProcessReceipt(r Receipt) (string, error) {
	breakdown := ComputePoints(r)

	id, err := s.store.Insert(breakdown.TotalPoints)
	if err != nil {
		return "", fmt.Errorf("storing score: %w", err)
	}

	return id, nil
}

// GetPoints retrieves the stored points for an identifier
func (s *Service) GetPoints(id string) (int64, error) {
	points, err := s.store.Lookup(id)
	if err != nil {
		return 0, fmt.Errorf("getting score: %w", err)
	}
	return points, nil
}
