package models

import "time"

// Role determines what an authenticated principal may do.
type Role string

const (
	RoleFan    Role = "fan"
	RoleTalent Role = "talent"
	RoleAdmin  Role = "admin"

	// RoleSystem is used by background jobs such as the due-date sweep.
	RoleSystem Role = "system"
)

// Principal is the request-scoped authenticated identity. It is constructed
// by the auth middleware and passed explicitly into every service call.
type Principal struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the principal carries elevated privileges.
// System principals act with admin authority in background jobs.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleSystem
}

// Account is a platform login. Talent accounts additionally own a
// TalentProfile once their application is approved.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	DisplayName  string    `bson:"display_name" json:"display_name"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// RegisterInput is the body for account registration.
type RegisterInput struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

// LoginInput is the body for authentication.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}
