package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrPackageNotFound indicates a lookup for an unknown package id.
var ErrPackageNotFound = errors.New("tour package not found")

// Provider supplies the ordered tour package collection.
type Provider interface {
	Packages(ctx context.Context) ([]TourPackage, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]TourPackage, error)

// Packages calls f.
func (f ProviderFunc) Packages(ctx context.Context) ([]TourPackage, error) {
	return f(ctx)
}

// Snapshot is an immutable, ordered view of the catalog loaded once from a
// Provider. Accessors return copies.
type Snapshot struct {
	packages []TourPackage
	byID     map[string]int
}

// NewSnapshot copies packages into a Snapshot. Package ids must be unique and
// non-empty.
func NewSnapshot(packages []TourPackage) (*Snapshot, error) {
	snapshot := &Snapshot{
		packages: make([]TourPackage, 0, len(packages)),
		byID:     make(map[string]int, len(packages)),
	}
	for _, pkg := range packages {
		id := strings.TrimSpace(pkg.ID)
		if id == "" {
			return nil, fmt.Errorf("tour package %q: id is required", pkg.Name)
		}
		if _, ok := snapshot.byID[id]; ok {
			return nil, fmt.Errorf("tour package %q: duplicate id", id)
		}
		pkg.ID = id
		snapshot.byID[id] = len(snapshot.packages)
		snapshot.packages = append(snapshot.packages, pkg.Clone())
	}
	return snapshot, nil
}

// Load reads the provider once and freezes the result.
func Load(ctx context.Context, provider Provider) (*Snapshot, error) {
	if provider == nil {
		return nil, errors.New("catalog provider is required")
	}
	packages, err := provider.Packages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewSnapshot(packages)
}

// Len returns the number of packages.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.packages)
}

// Packages returns a copy of every package in catalog order.
func (s *Snapshot) Packages() []TourPackage {
	if s == nil {
		return nil
	}
	out := make([]TourPackage, len(s.packages))
	for idx, pkg := range s.packages {
		out[idx] = pkg.Clone()
	}
	return out
}

// Get returns the package with the given id.
func (s *Snapshot) Get(id string) (TourPackage, error) {
	if s == nil {
		return TourPackage{}, ErrPackageNotFound
	}
	idx, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return TourPackage{}, ErrPackageNotFound
	}
	return s.packages[idx].Clone(), nil
}

// Filter applies state to the snapshot.
func (s *Snapshot) Filter(state FilterState) []TourPackage {
	if s == nil {
		return []TourPackage{}
	}
	return Filter(s.packages, state)
}

// Memo caches the last filter result per state for one Snapshot. Results are
// identical to Snapshot.Filter.
type Memo struct {
	snapshot *Snapshot
	limit    int

	mu      sync.Mutex
	results map[FilterState][]TourPackage
	order   []FilterState
}

// NewMemo wraps snapshot with a cache holding at most limit states.
func NewMemo(snapshot *Snapshot, limit int) *Memo {
	if limit <= 0 {
		limit = 64
	}
	return &Memo{
		snapshot: snapshot,
		limit:    limit,
		results:  make(map[FilterState][]TourPackage, limit),
	}
}

// Snapshot returns the wrapped snapshot.
func (m *Memo) Snapshot() *Snapshot {
	return m.snapshot
}

// Filter returns the cached result for state, computing it on a miss.
func (m *Memo) Filter(state FilterState) []TourPackage {
	state = state.normalized()

	m.mu.Lock()
	cached, ok := m.results[state]
	m.mu.Unlock()
	if ok {
		return cloneAll(cached)
	}

	result := m.snapshot.Filter(state)

	m.mu.Lock()
	if _, exists := m.results[state]; !exists {
		if len(m.order) >= m.limit {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.results, oldest)
		}
		m.results[state] = result
		m.order = append(m.order, state)
	}
	m.mu.Unlock()
	return cloneAll(result)
}

func cloneAll(packages []TourPackage) []TourPackage {
	out := make([]TourPackage, len(packages))
	for idx, pkg := range packages {
		out[idx] = pkg.Clone()
	}
	return out
}
