package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/navbryce/yatube/config"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/sqldb"
	"github.com/navbryce/yatube/db/sqldb/sqldbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDatabase points the commands at a fresh sqlite file and returns its config
func useTempDatabase(t *testing.T) *config.DBConfig {
	path := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	return &config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path}
}

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func open(t *testing.T, cfg *config.DBConfig) db.Database {
	database, err := sqldb.GetDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestGroupCommands(t *testing.T) {
	cfg := useTempDatabase(t)

	out, err := run(t, "group", "create", "cats", "--title", "Коты", "--description", "Всё о котах")
	require.NoError(t, err)
	assert.Contains(t, out, "created group cats")

	_, err = run(t, "group", "create", "cats", "--title", "Коты")
	assert.ErrorContains(t, err, "already exists")
	_, err = run(t, "group", "create", "не-латиница", "--title", "Коты")
	assert.ErrorContains(t, err, "invalid slug")

	out, err = run(t, "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cats")
	assert.Contains(t, out, "Коты")

	database := open(t, cfg)
	group, err := database.GetGroupBySlug(context.Background(), "cats")
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, "Всё о котах", group.Description)

	out, err = run(t, "group", "delete", "cats")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted group cats")
	_, err = run(t, "group", "delete", "cats")
	assert.ErrorContains(t, err, "not found")
}

func TestUserCommands(t *testing.T) {
	cfg := useTempDatabase(t)

	out, err := run(t, "user", "create", "leo", "--password", "correct horse", "--display-name", "Лев")
	require.NoError(t, err)
	assert.Contains(t, out, "created user leo")

	_, err = run(t, "user", "create", "leo", "--password", "correct horse")
	assert.Error(t, err)
	_, err = run(t, "user", "create", "bob", "--password", "short")
	assert.Error(t, err)

	database := open(t, cfg)
	creds, err := database.GetCredentials(context.Background(), "leo")
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.NotEmpty(t, creds.PasswordHash)
}

func TestPostDelete(t *testing.T) {
	cfg := useTempDatabase(t)
	require.NoError(t, sqldb.MigrateUp(cfg))
	database := open(t, cfg)
	leo := sqldbtest.CreateUser(t, database, "leo")
	id := sqldbtest.CreatePosts(t, database, leo, nil, 1)[0]

	_, err := run(t, "post", "delete", "abc")
	assert.Error(t, err)

	out, err := run(t, "post", "delete", fmt.Sprint(id))
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("deleted post %d by leo", id))

	post, err := database.GetPostById(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, post)

	_, err = run(t, "post", "delete", fmt.Sprint(id))
	assert.ErrorContains(t, err, "not found")
}

func TestMigrateCommands(t *testing.T) {
	useTempDatabase(t)
	out, err := run(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date")

	out, err = run(t, "migrate", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "schema rolled back")
}
