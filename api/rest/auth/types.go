package auth

import "codeberg.org/vibecode/server/vibecode/users"

// AuthResponse is returned after a successful OAuth callback
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// UserResponse wraps a user profile
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse is a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// UpdateProfileRequest contains profile fields a user may change
type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"max=100"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url,max=500"`
}
