package memory

import (
	"context"
	"sync"

	"digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/repositories"
)

// ItemStore is the in-memory item store, copy-on-write like FolderStore.
type ItemStore struct {
	mu       sync.RWMutex
	snapshot []filing.Item
}

// NewItemStore creates an empty in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{snapshot: []filing.Item{}}
}

var _ repositories.ItemStore = (*ItemStore)(nil)

// Insert stores a new item record.
func (s *ItemStore) Insert(_ context.Context, item *filing.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]filing.Item, len(s.snapshot), len(s.snapshot)+1)
	copy(next, s.snapshot)
	next = append(next, *item)
	s.snapshot = next
	return nil
}

// CountByFolder counts items directly inside a folder.
func (s *ItemStore) CountByFolder(_ context.Context, orgID, folderID string) (int, error) {
	count := 0
	for _, it := range s.current() {
		if it.OrgID == orgID && it.FolderID == folderID {
			count++
		}
	}
	return count, nil
}

// ListByFolder lists items directly inside a folder.
func (s *ItemStore) ListByFolder(_ context.Context, orgID, folderID string) ([]filing.Item, error) {
	var out []filing.Item
	for _, it := range s.current() {
		if it.OrgID == orgID && it.FolderID == folderID {
			out = append(out, it)
		}
	}
	return out, nil
}

// RemoveByFolders deletes every item inside any of the given folders in a
// single snapshot swap.
func (s *ItemStore) RemoveByFolders(_ context.Context, orgID string, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}
	drop := make(map[string]struct{}, len(folderIDs))
	for _, id := range folderIDs {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]filing.Item, 0, len(s.snapshot))
	for _, it := range s.snapshot {
		if it.OrgID == orgID {
			if _, gone := drop[it.FolderID]; gone {
				continue
			}
		}
		next = append(next, it)
	}
	s.snapshot = next
	return nil
}

func (s *ItemStore) current() []filing.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
