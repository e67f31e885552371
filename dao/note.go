package dao

import (
	"context"

	"nexuscrm/model"
)

// GetNote fetches a note scoped to its item.
func (s *Store) GetNote(ctx context.Context, itemID, noteID uint) (*model.Note, error) {
	var note model.Note
	err := s.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		First(&note, noteID).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes returns the item's notes, most recent first.
func (s *Store) ListNotes(ctx context.Context, itemID uint) ([]model.Note, error) {
	var notes []model.Note
	err := s.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Preload("Author").
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *Store) CreateNote(ctx context.Context, note *model.Note) error {
	return s.db.WithContext(ctx).Create(note).Error
}

func (s *Store) UpdateNote(ctx context.Context, note *model.Note) error {
	return s.db.WithContext(ctx).Save(note).Error
}

func (s *Store) DeleteNote(ctx context.Context, noteID uint) error {
	return s.db.WithContext(ctx).Delete(&model.Note{}, noteID).Error
}
