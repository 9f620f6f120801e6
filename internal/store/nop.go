package store

// NopStore is a no-op store used in dry-run mode. It never marks jobs as
// processed, so every job appears new on each run.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Load() ([]string, error)     { return nil, nil }
func (s *NopStore) Has(id string) (bool, error) { return false, nil }
func (s *NopStore) Add(id string) error         { return nil }
func (s *NopStore) Clear() error                { return nil }
