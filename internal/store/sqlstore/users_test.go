package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pliu/messagely/internal/apperr"
	"github.com/pliu/messagely/internal/models"
)

func TestRegisterUser(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	ctx := context.Background()
	user, err := testStore.RegisterUser(ctx, &models.User{
		Username:  "alice",
		Password:  "hashed",
		FirstName: "Alice",
		LastName:  "Anderson",
		Phone:     "555-0101",
	})
	require.NoError(t, err)
	assert.False(t, user.JoinAt.IsZero(), "join_at should be set on registration")
	assert.Equal(t, user.JoinAt, user.LastLoginAt)

	// Duplicate username
	_, err = testStore.RegisterUser(ctx, &models.User{Username: "alice", Password: "x"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.ErrDuplicate), "expected DUPLICATE, got %v", err)
}

func TestGetUserByUsername(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	ctx := context.Background()
	seedUser(t, "alice")

	user, err := testStore.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "First-alice", user.FirstName)

	_, err = testStore.GetUserByUsername(ctx, "nonexistent")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestAllUsers(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	ctx := context.Background()
	seedUser(t, "carol")
	seedUser(t, "alice")
	seedUser(t, "bob")

	users, err := testStore.AllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "carol", users[2].Username)
}

func TestUpdateLoginTimestamp(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	ctx := context.Background()
	seedUser(t, "alice")
	before, err := testStore.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, testStore.UpdateLoginTimestamp(ctx, "alice"))

	after, err := testStore.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, after.LastLoginAt.Before(before.LastLoginAt))

	err = testStore.UpdateLoginTimestamp(ctx, "nonexistent")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestMessagesFrom(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	ctx := context.Background()
	seedUser(t, "alice")
	seedUser(t, "bob")
	seedUser(t, "carol")

	_, err := testStore.CreateMessage(ctx, "alice", "bob", "first")
	require.NoError(t, err)
	_, err = testStore.CreateMessage(ctx, "alice", "carol", "second")
	require.NoError(t, err)
	_, err = testStore.CreateMessage(ctx, "bob", "alice", "noise")
	require.NoError(t, err)

	messages, err := testStore.MessagesFrom(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Send order preserved, every recipient fully resolved.
	assert.Equal(t, "first", messages[0].Body)
	assert.Equal(t, "second", messages[1].Body)
	require.NotNil(t, messages[0].ToUser)
	require.NotNil(t, messages[1].ToUser)
	assert.Equal(t, "bob", messages[0].ToUser.Username)
	assert.Equal(t, "First-bob", messages[0].ToUser.FirstName)
	assert.Equal(t, "carol", messages[1].ToUser.Username)
	assert.Empty(t, messages[0].ToUsername, "raw username should be dropped once resolved")
	assert.Nil(t, messages[0].ReadAt)
}

func TestMessagesTo(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	ctx := context.Background()
	seedUser(t, "alice")
	seedUser(t, "bob")

	_, err := testStore.CreateMessage(ctx, "alice", "bob", "hi bob")
	require.NoError(t, err)

	messages, err := testStore.MessagesTo(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.NotNil(t, messages[0].FromUser)
	assert.Equal(t, "alice", messages[0].FromUser.Username)
	assert.Nil(t, messages[0].ToUser)

	// No inbound messages for alice besides none
	messages, err = testStore.MessagesTo(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, messages)
}
