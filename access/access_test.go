package access_test

import (
	"context"
	"errors"
	"testing"

	"nexuscrm/access"
	"nexuscrm/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeStore struct {
	workspaces map[uint]*model.Workspace
	members    map[[2]uint]bool
	err        error
}

func (f *fakeStore) GetWorkspace(_ context.Context, id uint) (*model.Workspace, error) {
	if f.err != nil {
		return nil, f.err
	}
	ws, ok := f.workspaces[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ws, nil
}

func (f *fakeStore) IsMember(_ context.Context, workspaceID, userID uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.members[[2]uint{workspaceID, userID}], nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		workspaces: map[uint]*model.Workspace{},
		members:    map[[2]uint]bool{},
	}
}

func workspace(id, owner uint) *model.Workspace {
	ws := &model.Workspace{OwnerID: owner}
	ws.ID = id
	return ws
}

func TestCanAccessWorkspace(t *testing.T) {
	const (
		owner    = uint(1)
		member   = uint(2)
		outsider = uint(3)
	)
	store := newFakeStore()
	store.workspaces[10] = workspace(10, owner)
	store.members[[2]uint{10, member}] = true
	checker := access.NewChecker(store)
	ctx := context.Background()

	assert.True(t, checker.CanAccessWorkspace(ctx, owner, 10))
	assert.True(t, checker.CanAccessWorkspace(ctx, member, 10))
	assert.False(t, checker.CanAccessWorkspace(ctx, outsider, 10))
}

func TestCanAccessWorkspaceMissingID(t *testing.T) {
	checker := access.NewChecker(newFakeStore())
	assert.False(t, checker.CanAccessWorkspace(context.Background(), 1, 999))
}

func TestCanAccessWorkspaceStoreError(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	checker := access.NewChecker(store)
	assert.False(t, checker.CanAccessWorkspace(context.Background(), 1, 10))
}

func TestCanModifyWorkspace(t *testing.T) {
	checker := access.NewChecker(newFakeStore())
	ws := workspace(10, 1)

	assert.True(t, checker.CanModifyWorkspace(1, ws))
	assert.False(t, checker.CanModifyWorkspace(2, ws))
	assert.False(t, checker.CanModifyWorkspace(1, nil))
}

func TestCanDeleteItem(t *testing.T) {
	const (
		owner    = uint(1)
		creator  = uint(2)
		member   = uint(3)
		assignee = uint(4)
	)
	checker := access.NewChecker(newFakeStore())
	ws := workspace(10, owner)
	item := &model.Item{WorkspaceID: 10, CreatorID: creator}
	id := assignee
	item.AssigneeID = &id

	assert.True(t, checker.CanDeleteItem(creator, item, ws))
	assert.True(t, checker.CanDeleteItem(owner, item, ws))
	assert.False(t, checker.CanDeleteItem(member, item, ws), "plain members may not delete")
	assert.False(t, checker.CanDeleteItem(assignee, item, ws), "assignment grants no delete right")
	assert.False(t, checker.CanDeleteItem(creator, nil, ws))
	assert.False(t, checker.CanDeleteItem(creator, item, nil))
}

func TestCanModifyNote(t *testing.T) {
	checker := access.NewChecker(newFakeStore())
	note := &model.Note{ItemID: 5, AuthorID: 7}

	assert.True(t, checker.CanModifyNote(7, note))
	assert.False(t, checker.CanModifyNote(8, note))
	assert.False(t, checker.CanModifyNote(7, nil))
}

func TestValidateAssignee(t *testing.T) {
	const (
		owner    = uint(1)
		member   = uint(2)
		outsider = uint(3)
	)
	store := newFakeStore()
	ws := workspace(10, owner)
	store.workspaces[10] = ws
	store.members[[2]uint{10, member}] = true
	checker := access.NewChecker(store)
	ctx := context.Background()

	assert.True(t, checker.ValidateAssignee(ctx, ws, owner))
	assert.True(t, checker.ValidateAssignee(ctx, ws, member))
	assert.False(t, checker.ValidateAssignee(ctx, ws, outsider))
	assert.False(t, checker.ValidateAssignee(ctx, ws, model.InvalidUserID))
	assert.False(t, checker.ValidateAssignee(ctx, nil, member))
}

// A joins nobody, B becomes a member, B still cannot modify.
func TestMembershipGrantsReadNotWrite(t *testing.T) {
	const (
		userA = uint(1)
		userB = uint(2)
	)
	store := newFakeStore()
	ws := workspace(10, userA)
	store.workspaces[10] = ws
	checker := access.NewChecker(store)
	ctx := context.Background()

	assert.False(t, checker.CanAccessWorkspace(ctx, userB, 10))

	store.members[[2]uint{10, userB}] = true

	assert.True(t, checker.CanAccessWorkspace(ctx, userB, 10))
	assert.False(t, checker.CanModifyWorkspace(userB, ws))
}
