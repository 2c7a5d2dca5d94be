package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user account can hold. Residents file complaints, admins triage them.
const (
	RoleAdmin    = "admin"
	RoleResident = "resident"
)

// User represents an account in the system. Residents own complaints;
// admins may act on every complaint regardless of owner.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:resident" json:"role"`
	FlatNumber   string `json:"flatNumber,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

// BeforeCreate is a GORM hook that generates a UUID for the user
// if an ID has not been set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleResident
	}
	return
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
