// Package access is the single source of truth for whether a user
// may read or mutate a workspace, item or note. Predicates return
// booleans and never errors: an unknown id or a store failure denies,
// and the handler layer decides between 403 and 404.
package access

import (
	"context"

	"nexuscrm/model"
)

// Store is the subset of persistence the checker needs.
type Store interface {
	GetWorkspace(ctx context.Context, id uint) (*model.Workspace, error)
	IsMember(ctx context.Context, workspaceID, userID uint) (bool, error)
}

// Checker holds no state of its own; every check runs on data fetched
// for the current request.
type Checker struct {
	store Store
}

func NewChecker(store Store) *Checker {
	return &Checker{store: store}
}

// CanAccessWorkspace reports whether the user owns the workspace or
// has a membership row for it. Gates reads, sub-resource listings and
// item creation.
func (c *Checker) CanAccessWorkspace(ctx context.Context, userID, workspaceID uint) bool {
	ws, err := c.store.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return false
	}
	if ws.OwnerID == userID {
		return true
	}
	ok, err := c.store.IsMember(ctx, workspaceID, userID)
	if err != nil {
		return false
	}
	return ok
}

// CanModifyWorkspace gates rename, stage change, deletion and member
// addition. Owner only.
func (c *Checker) CanModifyWorkspace(userID uint, ws *model.Workspace) bool {
	return ws != nil && ws.OwnerID == userID
}

// CanDeleteItem allows the item's creator and the workspace owner.
// Plain members may read and update items but not delete them.
func (c *Checker) CanDeleteItem(userID uint, item *model.Item, ws *model.Workspace) bool {
	if item == nil || ws == nil {
		return false
	}
	return item.CreatorID == userID || ws.OwnerID == userID
}

// CanModifyNote gates both edit and delete of a note. Author only.
func (c *Checker) CanModifyNote(userID uint, note *model.Note) bool {
	return note != nil && note.AuthorID == userID
}

// ValidateAssignee reports whether the candidate may be assigned to
// items of the workspace: the owner or an existing member. Checked at
// item creation only.
func (c *Checker) ValidateAssignee(ctx context.Context, ws *model.Workspace, candidateID uint) bool {
	if ws == nil || candidateID == model.InvalidUserID {
		return false
	}
	if ws.OwnerID == candidateID {
		return true
	}
	ok, err := c.store.IsMember(ctx, ws.ID, candidateID)
	if err != nil {
		return false
	}
	return ok
}
