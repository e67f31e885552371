package dao

import (
	"context"

	"nexuscrm/model"
)

// ItemFilter narrows item listings. Zero values mean no filter.
type ItemFilter struct {
	Status     model.ItemStatus
	AssigneeID uint
}

// GetItem fetches an item scoped to its workspace so an item id from
// another workspace misses instead of leaking.
func (s *Store) GetItem(ctx context.Context, workspaceID, itemID uint) (*model.Item, error) {
	var item model.Item
	err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByID fetches an item by id alone, for routes that address
// items without a workspace prefix.
func (s *Store) GetItemByID(ctx context.Context, itemID uint) (*model.Item, error) {
	var item model.Item
	if err := s.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetItemDetail(ctx context.Context, workspaceID, itemID uint) (*model.Item, error) {
	var item model.Item
	err := s.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Creator").
		Preload("Notes.Author").
		Where("workspace_id = ?", workspaceID).
		First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListItems(ctx context.Context, workspaceID uint, filter ItemFilter) ([]model.Item, error) {
	q := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.AssigneeID != 0 {
		q = q.Where("assignee_id = ?", filter.AssigneeID)
	}
	var items []model.Item
	err := q.Preload("Assignee").
		Preload("Creator").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListItemsByAssignee returns all items assigned to the user, newest
// first, with the parent workspace for display. Assignment alone is
// enough; membership is not re-checked here.
func (s *Store) ListItemsByAssignee(ctx context.Context, userID uint) ([]model.Item, error) {
	var items []model.Item
	err := s.db.WithContext(ctx).
		Where("assignee_id = ?", userID).
		Preload("Workspace").
		Preload("Workspace.Contact").
		Preload("Creator").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CreateItem(ctx context.Context, item *model.Item) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateItem(ctx context.Context, item *model.Item) error {
	return s.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes the item and its notes.
func (s *Store) DeleteItem(ctx context.Context, itemID uint) error {
	if err := s.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&model.Note{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.Item{}, itemID).Error
}
