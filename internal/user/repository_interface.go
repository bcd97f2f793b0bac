package user

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
	// SetAvatar stores url as the avatar; an empty url clears it.
	SetAvatar(ctx context.Context, id, url string) (*User, error)
	// Delete removes the member's bookings, then reviews, then the profile.
	Delete(ctx context.Context, id string) error
}
