package dao

import (
	"context"
	"time"

	"nexuscrm/dashboard"
	"nexuscrm/model"
)

// Aggregate queries backing dashboard.Store.

func (s *Store) CountWorkspacesForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Workspace{}).
		Where("owner_id = ? OR id IN (?)", userID,
			s.db.Model(&model.Membership{}).Select("workspace_id").Where("user_id = ?", userID)).
		Count(&count).Error
	return count, err
}

func (s *Store) SumWorkspaceValueByStages(
	ctx context.Context, ownerID uint, stages []model.Stage) (float64, error) {
	var sum float64
	err := s.db.WithContext(ctx).Model(&model.Workspace{}).
		Where("owner_id = ? AND stage IN ?", ownerID, stages).
		Select("COALESCE(SUM(value), 0)").
		Scan(&sum).Error
	return sum, err
}

func (s *Store) CountContactsByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Contact{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (s *Store) CountItemsByAssignee(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Item{}).
		Where("assignee_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *Store) CountItemsByAssigneeAndStatus(
	ctx context.Context, userID uint, status model.ItemStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Item{}).
		Where("assignee_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (s *Store) CountOverdueItemsByAssignee(
	ctx context.Context, userID uint, before time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Item{}).
		Where("assignee_id = ? AND status <> ? AND due_date IS NOT NULL AND due_date < ?",
			userID, model.StatusCompleted, before).
		Count(&count).Error
	return count, err
}

func (s *Store) RecentItemsByAssignee(
	ctx context.Context, userID uint, limit int) ([]model.Item, error) {
	var items []model.Item
	err := s.db.WithContext(ctx).
		Where("assignee_id = ?", userID).
		Preload("Workspace").
		Preload("Assignee").
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) StageBreakdownByOwner(
	ctx context.Context, ownerID uint) ([]dashboard.StageGroup, error) {
	var groups []dashboard.StageGroup
	err := s.db.WithContext(ctx).Model(&model.Workspace{}).
		Where("owner_id = ?", ownerID).
		Select("stage, COUNT(*) AS count, COALESCE(SUM(value), 0) AS value").
		Group("stage").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
