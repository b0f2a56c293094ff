package memory

import (
	"context"
	"sync"

	"digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/repositories"
)

// FolderStore is the in-memory folder store. It keeps all folders of all
// kinds and categories in one immutable snapshot slice; every mutation
// builds a fresh snapshot and swaps it in atomically, so readers holding
// the previous snapshot never observe a half-applied mutation.
type FolderStore struct {
	mu       sync.RWMutex
	snapshot []filing.Folder
}

// NewFolderStore creates an empty in-memory folder store.
func NewFolderStore() *FolderStore {
	return &FolderStore{snapshot: []filing.Folder{}}
}

var _ repositories.FolderStore = (*FolderStore)(nil)

// Insert stores a new folder.
func (s *FolderStore) Insert(_ context.Context, folder *filing.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]filing.Folder, len(s.snapshot), len(s.snapshot)+1)
	copy(next, s.snapshot)
	next = append(next, *folder)
	s.snapshot = next
	return nil
}

// Update replaces the stored folder with the same ID. Unknown folders are
// ignored; the service layer checks existence before mutating.
func (s *FolderStore) Update(_ context.Context, folder *filing.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]filing.Folder, len(s.snapshot))
	copy(next, s.snapshot)
	for i := range next {
		if next[i].ID == folder.ID && next[i].OrgID == folder.OrgID {
			next[i] = *folder
			break
		}
	}
	s.snapshot = next
	return nil
}

// Remove deletes the given folders in a single snapshot swap.
func (s *FolderStore) Remove(_ context.Context, orgID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]filing.Folder, 0, len(s.snapshot))
	for _, f := range s.snapshot {
		if f.OrgID == orgID {
			if _, gone := drop[f.ID]; gone {
				continue
			}
		}
		next = append(next, f)
	}
	s.snapshot = next
	return nil
}

// Get retrieves a folder by ID, (nil, nil) when absent.
func (s *FolderStore) Get(_ context.Context, orgID, id string) (*filing.Folder, error) {
	for _, f := range s.current() {
		if f.OrgID == orgID && f.ID == id {
			found := f
			return &found, nil
		}
	}
	return nil, nil
}

// ListChildren lists folders of the given kind under parentID.
func (s *FolderStore) ListChildren(_ context.Context, orgID string, kind filing.FolderKind, parentID *string) ([]filing.Folder, error) {
	var out []filing.Folder
	for _, f := range s.current() {
		if f.OrgID != orgID || f.Kind != kind {
			continue
		}
		if sameParent(f.ParentID, parentID) {
			out = append(out, f)
		}
	}
	return out, nil
}

// ListByCategory lists all archive folders in one category.
func (s *FolderStore) ListByCategory(_ context.Context, orgID string, category filing.ArchiveCategory) ([]filing.Folder, error) {
	var out []filing.Folder
	for _, f := range s.current() {
		if f.OrgID == orgID && f.Kind == filing.KindArchive && f.Category == category {
			out = append(out, f)
		}
	}
	return out, nil
}

// ListAll lists every folder of the given kind.
func (s *FolderStore) ListAll(_ context.Context, orgID string, kind filing.FolderKind) ([]filing.Folder, error) {
	var out []filing.Folder
	for _, f := range s.current() {
		if f.OrgID == orgID && f.Kind == kind {
			out = append(out, f)
		}
	}
	return out, nil
}

// current returns the live snapshot. Callers iterate it without holding
// the lock; the slice is never mutated after publication.
func (s *FolderStore) current() []filing.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
