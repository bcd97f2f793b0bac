package integration_test

import (
	"context"
	"testing"

	"gym24/internal/audit"
	"gym24/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdate_Integration(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	memberID := createMember(t, database, "profile@test.com", "Noa")
	users := user.NewService(user.NewRepository(database), audit.Nop{}, "secret")

	before, err := users.GetByID(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, "", before.DateOfBirth)
	assert.Empty(t, before.PreferredClassTypes)
	assert.Nil(t, before.AvatarURL)

	updated, err := users.UpdateProfile(ctx, memberID, user.UpdateProfileRequest{
		FullName:            "Noa Cohen",
		DateOfBirth:         "1992-08-30",
		FitnessGoal:         "General Fitness",
		PreferredClassTypes: []string{"Pilates", "Spin", "pilates"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Noa Cohen", updated.FullName)
	assert.Equal(t, "1992-08-30", updated.DateOfBirth)
	assert.Equal(t, []string{"Pilates", "Spin"}, []string(updated.PreferredClassTypes))
	assert.False(t, updated.UpdatedAt.Before(before.UpdatedAt))

	withAvatar, err := users.SetAvatar(ctx, memberID, "https://cdn.example.com/noa.png")
	require.NoError(t, err)
	require.NotNil(t, withAvatar.AvatarURL)

	cleared, err := users.ClearAvatar(ctx, memberID)
	require.NoError(t, err)
	assert.Nil(t, cleared.AvatarURL)
	assert.Equal(t, "1992-08-30", cleared.DateOfBirth)

	// clearing the date stores NULL
	cleared, err = users.UpdateProfile(ctx, memberID, user.UpdateProfileRequest{FullName: "Noa Cohen"})
	require.NoError(t, err)
	assert.Equal(t, "", cleared.DateOfBirth)
}
