package dao

import (
	"context"
	"fmt"
	"testing"

	"nexuscrm/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestStore opens a per-test in-memory sqlite database so the
// membership queries run against real SQL, unique index included.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Workspace{},
		&model.Membership{},
		&model.Item{},
		&model.Note{},
		&model.Contact{},
	))
	return NewStore(db)
}

func seedUser(t *testing.T, s *Store, name string) *model.User {
	t.Helper()
	user := model.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  model.RoleUser,
	}
	require.NoError(t, s.CreateUser(context.Background(), &user))
	return &user
}

func (s *Store) membershipCount(t *testing.T, workspaceID, userID uint) int64 {
	t.Helper()
	var count int64
	err := s.db.Model(&model.Membership{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error
	require.NoError(t, err)
	return count
}

func TestCreateWorkspaceInsertsOwnerMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "alice")

	ws := model.Workspace{Title: "Acme renewal", OwnerID: owner.ID}
	require.NoError(t, s.CreateWorkspace(ctx, &ws))

	ok, err := s.IsMember(ctx, ws.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), s.membershipCount(t, ws.ID, owner.ID))
}

func TestAddMemberTwiceKeepsSingleRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "alice")
	member := seedUser(t, s, "bob")

	ws := model.Workspace{Title: "Acme renewal", OwnerID: owner.ID}
	require.NoError(t, s.CreateWorkspace(ctx, &ws))

	require.NoError(t, s.AddMember(ctx, ws.ID, member.ID, model.MemberRoleMember))

	err := s.AddMember(ctx, ws.ID, member.ID, model.MemberRoleAdmin)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.Equal(t, int64(1), s.membershipCount(t, ws.ID, member.ID))

	ok, err := s.IsMember(ctx, ws.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
