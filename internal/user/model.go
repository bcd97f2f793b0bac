package user

import (
	"time"

	"github.com/lib/pq"
)

// User is a member profile.
type User struct {
	ID                    string         `db:"id" json:"id"`
	Email                 string         `db:"email" json:"email"`
	FullName              string         `db:"full_name" json:"full_name"`
	PasswordHash          string         `db:"password_hash" json:"-"`
	Phone                 string         `db:"phone" json:"phone"`
	AvatarURL             *string        `db:"avatar_url" json:"avatar_url"`
	DateOfBirth           string         `db:"date_of_birth" json:"date_of_birth"`
	FitnessGoal           string         `db:"fitness_goal" json:"fitness_goal"`
	PreferredClassTypes   pq.StringArray `db:"preferred_class_types" json:"preferred_class_types"`
	EmergencyContactName  string         `db:"emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone string         `db:"emergency_contact_phone" json:"emergency_contact_phone"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// UpdateProfileRequest replaces every editable profile field. Email and
// avatar are changed through their own endpoints.
type UpdateProfileRequest struct {
	FullName              string   `json:"full_name" validate:"required,min=2,max=100"`
	Phone                 string   `json:"phone" validate:"omitempty,max=30"`
	DateOfBirth           string   `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	FitnessGoal           string   `json:"fitness_goal" validate:"omitempty,max=100"`
	PreferredClassTypes   []string `json:"preferred_class_types" validate:"max=20,dive,min=1,max=50"`
	EmergencyContactName  string   `json:"emergency_contact_name" validate:"omitempty,max=100"`
	EmergencyContactPhone string   `json:"emergency_contact_phone" validate:"omitempty,max=30"`
}

type AvatarRequest struct {
	AvatarURL string `json:"avatar_url" validate:"required,url,max=500"`
}

type DeleteUserRequest struct {
	ID string `json:"id"`
}
