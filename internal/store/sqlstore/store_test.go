package sqlstore

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/pliu/messagely/internal/models"
)

var testStore *SQLStore

func SetupTestDB(t *testing.T) {
	var err error
	testStore, err = New("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open test database")
}

func TeardownTestDB() {
	testStore.db.Close()
}

func seedUser(t *testing.T, username string) {
	t.Helper()
	_, err := testStore.RegisterUser(context.Background(), &models.User{
		Username:  username,
		Password:  "not-a-real-hash",
		FirstName: "First-" + username,
		LastName:  "Last-" + username,
		Phone:     "555-0100",
	})
	require.NoError(t, err)
}
