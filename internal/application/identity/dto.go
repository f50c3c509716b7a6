package identity

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/medistore/backend/internal/domain/identity"
)

// RegisterInput contains the input for account creation
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult contains tokens and user info returned after register or login
type AuthResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information
type UserInfo struct {
	ID       uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	Address  string      `json:"address,omitempty"`
	Role     domain.Role `json:"role"`
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// UpdateProfileInput contains the input for a profile update
type UpdateProfileInput struct {
	UserID   uuid.UUID
	FullName string
	Phone    string
	Address  string
}

// ChangePasswordInput contains the input for a password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

func toUserInfo(u *domain.User) UserInfo {
	return UserInfo{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		Address:  u.Address,
		Role:     u.Role,
	}
}
