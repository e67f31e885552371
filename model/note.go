package model

import "gorm.io/gorm"

// Note is a remark attached to an item, exposed as "comment" on the
// wire. Only the author may edit or delete it.
type Note struct {
	gorm.Model
	ItemID   uint   `gorm:"index;not null" json:"task_id"`
	AuthorID uint   `gorm:"not null" json:"user_id"`
	Author   *User  `json:"user,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
}
