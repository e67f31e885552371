package model

import (
	"time"

	"gorm.io/gorm"
)

// Item is a unit of work inside a workspace, exposed as "task" or
// "activity" on the wire. The creator is set once and never changes.
type Item struct {
	gorm.Model
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	WorkspaceID uint       `gorm:"index;not null" json:"workspace_id"`
	Workspace   *Workspace `json:"workspace,omitempty"`
	AssigneeID  *uint      `gorm:"index" json:"assigned_to"`
	Assignee    *User      `json:"assignee,omitempty"`
	CreatorID   uint       `gorm:"not null" json:"created_by"`
	Creator     *User      `json:"creator,omitempty"`
	Priority    Priority   `gorm:"type:varchar(16);not null;default:medium" json:"priority"`
	Status      ItemStatus `gorm:"index;type:varchar(16);not null;default:todo" json:"status"`
	DueDate     *time.Time `json:"due_date"`

	Notes []Note `json:"comments,omitempty"`
}

// IsOverdue reports whether the item's due date is strictly in the
// past and the item is not completed. Items without a due date are
// never overdue.
func (i *Item) IsOverdue(now time.Time) bool {
	if i.DueDate == nil || i.Status == StatusCompleted {
		return false
	}
	return i.DueDate.Before(now)
}
