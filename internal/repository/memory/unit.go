package memory

import (
	"context"
	"sync"

	"digitalium/internal/domain/models/org"
	"digitalium/internal/domain/repositories"
)

// UnitStore is the in-memory organization unit store, copy-on-write like
// FolderStore.
type UnitStore struct {
	mu       sync.RWMutex
	snapshot []org.OrganizationUnit
}

// NewUnitStore creates an empty in-memory unit store.
func NewUnitStore() *UnitStore {
	return &UnitStore{snapshot: []org.OrganizationUnit{}}
}

var _ repositories.UnitStore = (*UnitStore)(nil)

// Insert stores a new unit.
func (s *UnitStore) Insert(_ context.Context, unit *org.OrganizationUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]org.OrganizationUnit, len(s.snapshot), len(s.snapshot)+1)
	copy(next, s.snapshot)
	next = append(next, *unit)
	s.snapshot = next
	return nil
}

// Update replaces the stored unit with the same ID.
func (s *UnitStore) Update(_ context.Context, unit *org.OrganizationUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]org.OrganizationUnit, len(s.snapshot))
	copy(next, s.snapshot)
	for i := range next {
		if next[i].ID == unit.ID && next[i].OrgID == unit.OrgID {
			next[i] = *unit
			break
		}
	}
	s.snapshot = next
	return nil
}

// Get retrieves a unit by ID, (nil, nil) when absent.
func (s *UnitStore) Get(_ context.Context, orgID, id string) (*org.OrganizationUnit, error) {
	for _, u := range s.current() {
		if u.OrgID == orgID && u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

// Root retrieves the organization root unit, (nil, nil) when absent.
func (s *UnitStore) Root(_ context.Context, orgID string) (*org.OrganizationUnit, error) {
	for _, u := range s.current() {
		if u.OrgID == orgID && u.ParentUnitID == nil {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

// ListChildren lists units under parentID. parentID nil lists the root level.
func (s *UnitStore) ListChildren(_ context.Context, orgID string, parentID *string) ([]org.OrganizationUnit, error) {
	var out []org.OrganizationUnit
	for _, u := range s.current() {
		if u.OrgID != orgID {
			continue
		}
		if sameParent(u.ParentUnitID, parentID) {
			out = append(out, u)
		}
	}
	return out, nil
}

// ListAll lists every unit of the organization.
func (s *UnitStore) ListAll(_ context.Context, orgID string) ([]org.OrganizationUnit, error) {
	var out []org.OrganizationUnit
	for _, u := range s.current() {
		if u.OrgID == orgID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *UnitStore) current() []org.OrganizationUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
