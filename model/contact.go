package model

import "gorm.io/gorm"

// Contact is an externally-facing person record, owned by one user
// and optionally referenced by any number of workspaces.
type Contact struct {
	gorm.Model
	OwnerID  uint    `gorm:"index;not null" json:"owner_id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    *string `gorm:"type:varchar(255)" json:"email"`
	Phone    *string `gorm:"type:varchar(20)" json:"phone"`
	Company  *string `gorm:"type:varchar(255)" json:"company"`
	JobTitle *string `gorm:"type:varchar(255)" json:"job_title"`
}
