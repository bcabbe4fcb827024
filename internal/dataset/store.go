package dataset

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownDataset   = errors.New("unknown dataset")
	ErrDuplicateDataset = errors.New("duplicate dataset id")
	ErrNilDataset       = errors.New("nil dataset")
)

// Store holds the loaded datasets. It is built once at startup and never
// mutated afterwards, so concurrent readers need no locking.
type Store struct {
	datasets map[ID]*Dataset
	ids      []ID
	fallback ID
}

// NewStore creates a store over datasets. fallback must name one of them; it
// is returned by Resolve for any id the store does not hold.
func NewStore(fallback ID, datasets ...*Dataset) (*Store, error) {
	s := &Store{
		datasets: make(map[ID]*Dataset, len(datasets)),
		fallback: fallback,
	}
	for i, d := range datasets {
		if d == nil {
			return nil, fmt.Errorf("%w at position %d", ErrNilDataset, i)
		}
		if _, ok := s.datasets[d.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateDataset, d.ID)
		}
		s.datasets[d.ID] = d
		s.ids = append(s.ids, d.ID)
	}
	if _, ok := s.datasets[fallback]; !ok {
		return nil, fmt.Errorf("%w: fallback %d", ErrUnknownDataset, fallback)
	}
	sort.Slice(s.ids, func(i, j int) bool { return s.ids[i] < s.ids[j] })
	return s, nil
}

// Get returns the dataset with the given id.
func (s *Store) Get(id ID) (*Dataset, error) {
	d, ok := s.datasets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDataset, id)
	}
	return d, nil
}

// Resolve returns the dataset for id, or the fallback dataset when id is
// unknown. The boolean reports whether id itself was found.
func (s *Store) Resolve(id ID) (*Dataset, bool) {
	if d, ok := s.datasets[id]; ok {
		return d, true
	}
	return s.datasets[s.fallback], false
}

// Fallback returns the id of the default dataset.
func (s *Store) Fallback() ID {
	return s.fallback
}

// IDs returns all dataset ids in ascending order.
func (s *Store) IDs() []ID {
	return append([]ID(nil), s.ids...)
}

// Len returns the number of datasets.
func (s *Store) Len() int {
	return len(s.ids)
}
