package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const InvalidUserID = 0

// Optional fields for user
type UserAttribute struct {
	Avatar  *string `json:"avatar,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
}

// User is the basic entity of the system
type User struct {
	gorm.Model
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    string  `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	Password *string `gorm:"type:varchar(256)" json:"-"`
	Role     Role    `gorm:"index:role;not null" json:"role"`

	Attributes datatypes.JSONType[UserAttribute] `json:"attributes"`

	Memberships []Membership `json:"-"`
}

// UserInfo is the projection embedded in responses that reference a user.
type UserInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email}
}
