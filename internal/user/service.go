package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"gym24/internal/apperrors"
	"gym24/internal/audit"
	"gym24/internal/auth"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	GetByID(ctx context.Context, userID string) (*User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *User, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error)
	SetAvatar(ctx context.Context, userID, url string) (*User, error)
	ClearAvatar(ctx context.Context, userID string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, adminID, userID string) error
}

const dateLayout = "2006-01-02"

type service struct {
	repo      Repository
	audit     audit.Recorder
	jwtSecret string
}

func NewService(repo Repository, recorder audit.Recorder, jwtSecret string) Service {
	return &service{
		repo:      repo,
		audit:     recorder,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	email := strings.TrimSpace(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, "", "", apperrors.NewRemoteStoreError("failed to check email", err)
	}
	if exists {
		return nil, "", "", apperrors.NewConflictError("Email already registered")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", apperrors.NewInternalError("failed to hash password", err)
	}

	user, err := s.repo.Create(ctx, req.FullName, email, passwordHash)
	if err != nil {
		return nil, "", "", apperrors.NewRemoteStoreError("failed to create user", err)
	}

	return s.issue(user)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", "", apperrors.NewAuthenticationError("invalid email or password")
	}
	if err != nil {
		return nil, "", "", apperrors.NewRemoteStoreError("failed to load user", err)
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, "", "", apperrors.NewAuthenticationError("invalid email or password")
	}

	return s.issue(user)
}

func (s *service) issue(user *User) (*User, string, string, error) {
	accessToken, refreshToken, err := auth.GenerateTokens(user.ID, user.Email, s.jwtSecret)
	if err != nil {
		return nil, "", "", apperrors.NewInternalError("failed to generate tokens", err)
	}
	return user, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to load user", err)
	}
	return user, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, apperrors.NewAuthenticationError("invalid or expired refresh token")
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, apperrors.NewAuthenticationError("invalid or expired refresh token")
	}

	accessToken, err := auth.GenerateAccessToken(user.ID, user.Email, s.jwtSecret)
	if err != nil {
		return "", nil, apperrors.NewInternalError("failed to generate access token", err)
	}

	return accessToken, user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error) {
	if userID == "" {
		return nil, apperrors.NewAuthenticationError("not authenticated")
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("date_of_birth", "Date of birth must be YYYY-MM-DD")
		}
		if dob.After(time.Now()) {
			return nil, apperrors.NewValidationError("date_of_birth", "Date of birth cannot be in the future")
		}
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.FitnessGoal = strings.TrimSpace(req.FitnessGoal)
	req.EmergencyContactName = strings.TrimSpace(req.EmergencyContactName)
	req.EmergencyContactPhone = strings.TrimSpace(req.EmergencyContactPhone)
	req.PreferredClassTypes = normalizeClassTypes(req.PreferredClassTypes)

	user, err := s.repo.UpdateProfile(ctx, userID, req)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to update profile", err)
	}
	return user, nil
}

func (s *service) SetAvatar(ctx context.Context, userID, url string) (*User, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperrors.NewValidationError("avatar_url", "Avatar URL is required")
	}
	return s.setAvatar(ctx, userID, url)
}

func (s *service) ClearAvatar(ctx context.Context, userID string) (*User, error) {
	return s.setAvatar(ctx, userID, "")
}

func (s *service) setAvatar(ctx context.Context, userID, url string) (*User, error) {
	if userID == "" {
		return nil, apperrors.NewAuthenticationError("not authenticated")
	}

	user, err := s.repo.SetAvatar(ctx, userID, url)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to update avatar", err)
	}
	return user, nil
}

// normalizeClassTypes trims entries and drops blanks and repeats, keeping
// first-seen order.
func normalizeClassTypes(types []string) []string {
	out := make([]string, 0, len(types))
	seen := make(map[string]bool, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}

func (s *service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list users", err)
	}
	return users, nil
}

func (s *service) Delete(ctx context.Context, adminID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.NewValidationError("id", "Missing user id")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return apperrors.NewRemoteStoreError("failed to delete user", err)
	}

	s.audit.Record(ctx, audit.NewEntry(adminID, audit.ActionDelete, "profiles", userID, nil))
	return nil
}
