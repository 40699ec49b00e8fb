// Package models defines server-side data models persisted in the database.
package models

import "time"

// Role is the closed set of user roles. Every role must be classified in
// the permission table and in the workflow rules.
type Role string

const (
	RoleEmployee             Role = "EMPLOYEE"
	RoleSupervisor           Role = "SUPERVISOR"
	RoleSigner               Role = "SIGNER"
	RoleInstitutionalManager Role = "INSTITUTIONAL_MANAGER"
	RoleAdmin                Role = "ADMIN"
)

// Roles lists every role, in declaration order.
func Roles() []Role {
	return []Role{RoleEmployee, RoleSupervisor, RoleSigner, RoleInstitutionalManager, RoleAdmin}
}

// ParseRole maps a stored or user-supplied string onto a Role.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	IsActive     bool
	PasswordHash []byte
	CreatedAt    time.Time
}
