package filing

import (
	"context"
	"fmt"
	"strings"

	"digitalium/internal/config"
	"digitalium/internal/domain"
	models "digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/repositories"
)

// treeCore holds the tree algorithms shared by the document and archive
// folder services: ancestry walks, display-path composition and
// transitive-closure collection for cascade deletes.
type treeCore struct {
	folders repositories.FolderStore
	items   repositories.ItemStore
}

// chain walks the parent links from id to the root and returns the
// ancestry root first. Returns (nil, nil) when id itself is unknown.
// A dangling parent reference terminates the walk at the last resolvable
// ancestor; a revisited node fails with CycleDetectedError.
func (c *treeCore) chain(ctx context.Context, orgID, id string) (models.Breadcrumb, error) {
	visited := make(map[string]struct{})
	var reversed []models.Folder

	currentID := id
	for {
		folder, err := c.folders.Get(ctx, orgID, currentID)
		if err != nil {
			return nil, err
		}
		if folder == nil {
			if len(reversed) == 0 {
				return nil, nil
			}
			// Dangling parent reference: stop at the last known ancestor.
			break
		}
		if _, seen := visited[folder.ID]; seen {
			return nil, &domain.CycleDetectedError{
				Message: fmt.Sprintf("folder parent chain revisits %q", folder.ID),
			}
		}
		visited[folder.ID] = struct{}{}
		reversed = append(reversed, *folder)

		if folder.ParentID == nil {
			break
		}
		currentID = *folder.ParentID
	}

	crumb := make(models.Breadcrumb, len(reversed))
	for i := range reversed {
		crumb[len(reversed)-1-i] = reversed[i]
	}
	for i := range crumb {
		crumb[i].Path = pathFromChain(crumb[:i+1])
	}
	return crumb, nil
}

// pathFromChain composes the display path for the last folder of a
// root-first ancestry. Archive trees anchor at the designated category
// root, which contributes an empty prefix; document trees include every
// segment.
func pathFromChain(chain models.Breadcrumb) string {
	if len(chain) == 0 {
		return ""
	}
	segments := make([]string, 0, len(chain))
	for i, folder := range chain {
		if i == 0 && folder.Kind == models.KindArchive {
			continue
		}
		segments = append(segments, folder.Name)
	}
	if len(segments) == 0 {
		return ""
	}
	return "/" + strings.Join(segments, "/")
}

// pathOf computes the display path of a single folder.
func (c *treeCore) pathOf(ctx context.Context, folder *models.Folder) (string, error) {
	chain, err := c.chain(ctx, folder.OrgID, folder.ID)
	if err != nil {
		return "", err
	}
	if chain == nil {
		return "", &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folder.ID)}
	}
	return chain[len(chain)-1].Path, nil
}

// closure collects the ids of a folder and its whole subtree, breadth
// first. The result drives the single atomic cascade removal.
func (c *treeCore) closure(ctx context.Context, orgID string, kind models.FolderKind, rootID string) ([]string, error) {
	ids := []string{rootID}
	queue := []string{rootID}
	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]

		children, err := c.folders.ListChildren(ctx, orgID, kind, &parentID)
		if err != nil {
			return nil, fmt.Errorf("list children of %s: %w", parentID, err)
		}
		for _, child := range children {
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return ids, nil
}

// checkDepth rejects creation under a parent whose ancestry already
// reaches the configured depth cap.
func (c *treeCore) checkDepth(ctx context.Context, parent *models.Folder) error {
	chain, err := c.chain(ctx, parent.OrgID, parent.ID)
	if err != nil {
		return err
	}
	if len(chain) >= config.MaxFolderDepth {
		return &domain.ValidationError{
			Message: fmt.Sprintf("folder hierarchy deeper than %d levels", config.MaxFolderDepth),
		}
	}
	return nil
}

// countContents counts the direct items and direct subfolders of a folder.
func (c *treeCore) countContents(ctx context.Context, folder *models.Folder) (*models.ItemCount, error) {
	items, err := c.items.CountByFolder(ctx, folder.OrgID, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	children, err := c.folders.ListChildren(ctx, folder.OrgID, folder.Kind, &folder.ID)
	if err != nil {
		return nil, fmt.Errorf("count subfolders: %w", err)
	}
	return &models.ItemCount{
		Items:      items,
		Subfolders: len(children),
		Total:      items + len(children),
	}, nil
}
