package identity

import (
	"github.com/medistore/backend/internal/domain/shared"
)

const (
	EventTypeUserRegistered = "UserRegistered"
)

// UserRegisteredEvent fires when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserRegisteredEvent creates a user registered event
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, "User", u.GetID()),
		Email:           u.Email,
		Role:            u.Role,
	}
}
