package model

import (
	"time"

	"gorm.io/gorm"
)

// Workspace is the shared container entity, exposed as "project" or
// "deal" on the wire. One owner, any number of members through the
// Membership join table.
type Workspace struct {
	gorm.Model
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	Description *string       `gorm:"type:text" json:"description"`
	OwnerID     uint          `gorm:"index;not null" json:"owner_id"`
	Owner       User          `json:"owner"`
	Type        WorkspaceType `gorm:"type:varchar(16);not null;default:team" json:"type"`
	Stage       Stage         `gorm:"index;type:varchar(32);not null;default:discovery" json:"pipeline_stage"`
	Value       float64       `gorm:"type:decimal(15,2);not null;default:0" json:"deal_value"`
	ContactID   *uint         `json:"contact_id"`
	Contact     *Contact      `json:"contact,omitempty"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`

	Memberships []Membership `json:"members,omitempty"`
	Items       []Item       `json:"tasks,omitempty"`
}

// Membership grants a non-owner user access to a workspace.
// The (workspace, user) pair is unique.
type Membership struct {
	gorm.Model
	WorkspaceID uint       `gorm:"uniqueIndex:idx_workspace_user;not null" json:"workspace_id"`
	UserID      uint       `gorm:"uniqueIndex:idx_workspace_user;not null" json:"user_id"`
	Role        MemberRole `gorm:"type:varchar(16);not null;default:member" json:"role"`
	User        User       `json:"user"`
}
