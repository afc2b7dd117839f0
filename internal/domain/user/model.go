package user

import "time"

// User represents a portal user who can receive notifications
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Phone           string    `json:"phone,omitempty"`
	PushToken       string    `json:"push_token,omitempty"`
	PermissionLevel int       `json:"permission_level"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// Roles
const (
	RoleAdmin         = "admin"
	RoleManager       = "manager"
	RoleCenterManager = "center_manager"
	RoleAgent         = "agent"
)
