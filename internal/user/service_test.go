package user

import (
	"context"
	"testing"
	"time"

	"gym24/internal/apperrors"
	"gym24/internal/audit"
	"gym24/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	memberID   = "2b3c4d5e-6f70-4182-93a4-b5c6d7e8f901"
)

func newTestService() (Service, *MockRepository, *audit.Memory) {
	repo := new(MockRepository)
	rec := &audit.Memory{}
	return NewService(repo, rec, testSecret), repo, rec
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("EmailExists", ctx, "dana@example.com").Return(false, nil)
	repo.On("Create", ctx, "Dana", "dana@example.com", mock.AnythingOfType("string")).
		Return(&User{ID: memberID, Email: "dana@example.com", FullName: "Dana"}, nil)

	user, access, refresh, err := svc.Register(ctx, RegisterRequest{FullName: "Dana", Email: " dana@example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, memberID, user.ID)

	claims, err := auth.ValidateToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, memberID, claims.UserID)
	assert.NotEmpty(t, refresh)

	hash := repo.Calls[1].Arguments.String(3)
	assert.True(t, auth.VerifyPassword("password123", hash))
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("EmailExists", ctx, "dana@example.com").Return(true, nil)

	_, _, _, err := svc.Register(ctx, RegisterRequest{FullName: "Dana", Email: "dana@example.com", Password: "password123"})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		svc, repo, _ := newTestService()
		ctx := context.Background()
		repo.On("FindByEmail", ctx, "dana@example.com").Return(&User{ID: memberID, Email: "dana@example.com", PasswordHash: hash}, nil)

		user, access, _, err := svc.Login(ctx, LoginRequest{Email: "dana@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, memberID, user.ID)
		assert.NotEmpty(t, access)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		svc, repo, _ := newTestService()
		ctx := context.Background()
		repo.On("FindByEmail", ctx, "dana@example.com").Return(&User{ID: memberID, PasswordHash: hash}, nil)
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, ErrUserNotFound)

		_, _, _, errWrong := svc.Login(ctx, LoginRequest{Email: "dana@example.com", Password: "nope"})
		_, _, _, errGhost := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "nope"})

		assert.True(t, apperrors.Is(errWrong, apperrors.KindAuthentication))
		assert.Equal(t, errWrong.Error(), errGhost.Error())
	})
}

func TestRefreshToken(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, refresh, err := auth.GenerateTokens(memberID, "dana@example.com", testSecret)
	require.NoError(t, err)
	repo.On("FindByID", ctx, memberID).Return(&User{ID: memberID, Email: "dana@example.com"}, nil)

	access, user, err := svc.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, memberID, user.ID)
	assert.NotEmpty(t, access)

	_, _, err = svc.RefreshToken(ctx, "garbage")
	assert.True(t, apperrors.Is(err, apperrors.KindAuthentication))
}

func TestDelete(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		svc, repo, _ := newTestService()

		err := svc.Delete(context.Background(), "admin-1", "")
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("audited", func(t *testing.T) {
		svc, repo, rec := newTestService()
		ctx := context.Background()
		repo.On("Delete", ctx, memberID).Return(nil)

		require.NoError(t, svc.Delete(ctx, "admin-1", memberID))
		require.Len(t, rec.Entries(), 1)
		assert.Equal(t, "profiles", rec.Entries()[0].TableName)
		assert.Equal(t, memberID, rec.Entries()[0].RecordID)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("normalizes input", func(t *testing.T) {
		svc, repo, _ := newTestService()
		ctx := context.Background()

		want := UpdateProfileRequest{
			FullName:            "Dana Levi",
			Phone:               "050-1234567",
			DateOfBirth:         "1990-04-12",
			PreferredClassTypes: []string{"Yoga", "HIIT"},
		}
		repo.On("UpdateProfile", ctx, memberID, want).Return(&User{ID: memberID, FullName: "Dana Levi"}, nil)

		user, err := svc.UpdateProfile(ctx, memberID, UpdateProfileRequest{
			FullName:            "  Dana Levi ",
			Phone:               " 050-1234567",
			DateOfBirth:         "1990-04-12",
			PreferredClassTypes: []string{"Yoga", " HIIT ", "yoga", ""},
		})
		require.NoError(t, err)
		assert.Equal(t, "Dana Levi", user.FullName)
		repo.AssertExpectations(t)
	})

	t.Run("future date of birth", func(t *testing.T) {
		svc, repo, _ := newTestService()
		future := time.Now().AddDate(1, 0, 0).Format(dateLayout)

		_, err := svc.UpdateProfile(context.Background(), memberID, UpdateProfileRequest{FullName: "Dana", DateOfBirth: future})
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.UpdateProfile(context.Background(), "", UpdateProfileRequest{FullName: "Dana"})
		assert.True(t, apperrors.Is(err, apperrors.KindAuthentication))
	})

	t.Run("unknown member", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("UpdateProfile", mock.Anything, memberID, mock.Anything).Return(nil, ErrUserNotFound)

		_, err := svc.UpdateProfile(context.Background(), memberID, UpdateProfileRequest{FullName: "Dana"})
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})
}

func TestAvatar(t *testing.T) {
	url := "https://cdn.example.com/a.png"

	t.Run("set", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("SetAvatar", mock.Anything, memberID, url).Return(&User{ID: memberID, AvatarURL: &url}, nil)

		user, err := svc.SetAvatar(context.Background(), memberID, " "+url+" ")
		require.NoError(t, err)
		assert.Equal(t, url, *user.AvatarURL)
	})

	t.Run("blank url rejected", func(t *testing.T) {
		svc, repo, _ := newTestService()

		_, err := svc.SetAvatar(context.Background(), memberID, "  ")
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
		repo.AssertNotCalled(t, "SetAvatar", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("clear", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("SetAvatar", mock.Anything, memberID, "").Return(&User{ID: memberID}, nil)

		user, err := svc.ClearAvatar(context.Background(), memberID)
		require.NoError(t, err)
		assert.Nil(t, user.AvatarURL)
	})
}
