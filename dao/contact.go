package dao

import (
	"context"

	"nexuscrm/model"
)

func (s *Store) GetContact(ctx context.Context, id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := s.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListContactsByOwner returns the user's contacts, newest first.
func (s *Store) ListContactsByOwner(ctx context.Context, ownerID uint) ([]model.Contact, error) {
	var contacts []model.Contact
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *Store) CreateContact(ctx context.Context, contact *model.Contact) error {
	return s.db.WithContext(ctx).Create(contact).Error
}

func (s *Store) UpdateContact(ctx context.Context, contact *model.Contact) error {
	return s.db.WithContext(ctx).Save(contact).Error
}

func (s *Store) DeleteContact(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Contact{}, id).Error
}
