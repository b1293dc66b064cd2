package models

import (
	"slices"
	"time"
)

// Role names stored on a user account. RoleUser is implied for every
// account; RoleAdmin unlocks report and category mutation.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User model
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Email          string   `gorm:"size:255;not null;unique"`
	HashedPassword []byte   `gorm:"not null"`
	Roles          []string `gorm:"serializer:json"`
}

// EffectiveRoles returns the stored roles with ROLE_USER always present.
func (u *User) EffectiveRoles() []string {
	roles := slices.Clone(u.Roles)
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.EffectiveRoles(), role)
}

// IsAdminRole reports whether the user may create, edit or delete reports.
func (u *User) IsAdminRole() bool {
	return u.HasRole(RoleAdmin)
}
