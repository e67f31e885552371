package dao

import (
	"context"
	"errors"

	"nexuscrm/model"

	"gorm.io/gorm"
)

// ErrAlreadyMember is returned when the (workspace, user) pair
// already has a membership row. The unique index catches the same
// race at the database level.
var ErrAlreadyMember = errors.New("user is already a member of this workspace")

func (s *Store) GetWorkspace(ctx context.Context, id uint) (*model.Workspace, error) {
	var ws model.Workspace
	if err := s.db.WithContext(ctx).First(&ws, id).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

// GetWorkspaceDetail loads a workspace with owner, members, items and
// contact for the detail endpoint.
func (s *Store) GetWorkspaceDetail(ctx context.Context, id uint) (*model.Workspace, error) {
	var ws model.Workspace
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Memberships.User").
		Preload("Items.Assignee").
		Preload("Contact").
		First(&ws, id).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// ListWorkspacesForUser returns workspaces where the user is the
// owner or holds a membership, newest first. Personal workspaces are
// only listed for their owner.
func (s *Store) ListWorkspacesForUser(
	ctx context.Context, userID uint, wsType model.WorkspaceType) ([]model.Workspace, error) {
	q := s.db.WithContext(ctx).
		Where("owner_id = ? OR id IN (?)", userID,
			s.db.Model(&model.Membership{}).Select("workspace_id").Where("user_id = ?", userID))
	if wsType == model.TypePersonal {
		q = q.Where("type = ? AND owner_id = ?", model.TypePersonal, userID)
	} else {
		q = q.Where("type <> ?", model.TypePersonal)
	}
	var workspaces []model.Workspace
	err := q.Preload("Owner").
		Preload("Memberships.User").
		Preload("Contact").
		Order("created_at DESC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

// CreateWorkspace inserts the workspace and the owner membership row
// in one transaction.
func (s *Store) CreateWorkspace(ctx context.Context, ws *model.Workspace) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ws).Error; err != nil {
			return err
		}
		member := model.Membership{
			WorkspaceID: ws.ID,
			UserID:      ws.OwnerID,
			Role:        model.MemberRoleOwner,
		}
		return tx.Create(&member).Error
	})
}

func (s *Store) UpdateWorkspace(ctx context.Context, ws *model.Workspace) error {
	return s.db.WithContext(ctx).Save(ws).Error
}

// DeleteWorkspace removes the workspace and cascades through its
// items, their notes and its memberships atomically.
func (s *Store) DeleteWorkspace(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&model.Item{}).Select("id").Where("workspace_id = ?", id)
		if err := tx.Where("item_id IN (?)", itemIDs).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Workspace{}, id).Error
	})
}

// IsMember reports whether the user has a membership row for the
// workspace. The owner is authorized through Workspace.OwnerID and is
// not required to appear here.
func (s *Store) IsMember(ctx context.Context, workspaceID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Membership{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMember inserts a membership row. Adding an existing member is an
// error, not a duplicate row.
func (s *Store) AddMember(ctx context.Context, workspaceID, userID uint, role model.MemberRole) error {
	exists, err := s.IsMember(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyMember
	}
	member := model.Membership{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
	return s.db.WithContext(ctx).Create(&member).Error
}
