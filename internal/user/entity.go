package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"type:varchar(254);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)" json:"last_name"`
	Role         Role      `gorm:"type:varchar(10);not null;index" json:"role"`

	Phone string `gorm:"type:varchar(15)" json:"phone,omitempty"`
	Bio   string `gorm:"type:text" json:"bio,omitempty"`

	// Teacher profile fields
	Qualification  string `gorm:"type:varchar(100)" json:"qualification,omitempty"`
	Specialization string `gorm:"type:varchar(100)" json:"specialization,omitempty"`
	Institution    string `gorm:"type:varchar(200)" json:"institution,omitempty"`

	// Student profile fields
	Grade  string `gorm:"type:varchar(20)" json:"grade,omitempty"`
	School string `gorm:"type:varchar(200)" json:"school,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
