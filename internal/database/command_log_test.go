package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogCommand(t *testing.T) {
	db := setupTestDB(t)

	err := db.LogCommand(&CommandLog{UserID: "user1", GroupID: "group1", Command: "ping", Status: "Succeeded"})
	require.NoError(t, err)
	err = db.LogCommand(&CommandLog{UserID: "user1", Command: "warn", Status: "Denied"})
	require.NoError(t, err)

	count, err := db.CountCommandLogs("user1")
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	count, err = db.CountCommandLogs("nobody")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestRecentCommandLogs(t *testing.T) {
	db := setupTestDB(t)

	for _, cmd := range []string{"ping", "roll", "kick"} {
		require.NoError(t, db.LogCommand(&CommandLog{UserID: "user1", Command: cmd, Status: "Succeeded"}))
	}

	logs, err := db.RecentCommandLogs(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "kick", logs[0].Command)
	require.Equal(t, "roll", logs[1].Command)
}

func TestAddRemoveWarn(t *testing.T) {
	db := setupTestDB(t)

	count, err := db.AddWarn("user1", "group1")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	count, err = db.AddWarn("user1", "group1")
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	count, err = db.RemoveWarn("user1", "group1")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// Never goes below zero.
	_, err = db.RemoveWarn("user1", "group1")
	require.NoError(t, err)
	count, err = db.RemoveWarn("user1", "group1")
	require.NoError(t, err)
	require.Zero(t, count)
}
