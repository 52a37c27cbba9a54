package repositories

import (
	"testing"

	"github.com/1Garv23/share-smote/models"

	"github.com/stretchr/testify/require"
)

func TestInMemoryUserStore_CreateAndFind(t *testing.T) {
	t.Parallel()

	store := NewInMemoryUserStore()
	user := &models.User{Username: "jane", Email: "jane@example.com", PasswordHash: "h"}
	require.NoError(t, store.Create(user))
	require.NotZero(t, user.ID)

	byEmail, err := store.FindByEmail("jane@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byUsername, err := store.FindByUsername("jane")
	require.NoError(t, err)
	require.Equal(t, user.ID, byUsername.ID)

	byID, err := store.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "jane", byID.Username)
}

func TestInMemoryUserStore_NotFound(t *testing.T) {
	t.Parallel()

	store := NewInMemoryUserStore()
	_, err := store.FindByEmail("nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = store.FindByUsername("nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = store.FindByID(99)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestInMemoryUserStore_UniqueEmailAndUsername(t *testing.T) {
	t.Parallel()

	store := NewInMemoryUserStore()
	require.NoError(t, store.Create(&models.User{Username: "jane", Email: "jane@example.com"}))

	err := store.Create(&models.User{Username: "other", Email: "jane@example.com"})
	require.ErrorIs(t, err, ErrUserExists)

	err = store.Create(&models.User{Username: "jane", Email: "other@example.com"})
	require.ErrorIs(t, err, ErrUserExists)
}
