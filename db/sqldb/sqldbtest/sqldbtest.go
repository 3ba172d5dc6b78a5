// Package sqldbtest opens throwaway sqlite stores for tests
package sqldbtest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/navbryce/yatube/config"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/sqldb"
	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/require"
)

func Config(t testing.TB) *config.DBConfig {
	return &config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "yatube.db"),
	}
}

// New returns a migrated store closed when the test ends
func New(t testing.TB) db.Database {
	t.Helper()
	database, err := sqldb.GetDatabase(Config(t))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func CreateUser(t testing.TB, database db.UserDatabase, username string) *model.User {
	t.Helper()
	user, err := database.CreateUser(context.Background(), &db.CreateUser{
		Id:       "uid-" + username,
		Username: username,
	})
	require.NoError(t, err)
	return user
}

func CreateGroup(t testing.TB, database db.GroupDatabase, slug string) *model.Group {
	t.Helper()
	req := &db.CreateGroup{
		Title:       fmt.Sprintf("Группа %v", slug),
		Slug:        slug,
		Description: "Тестовое описание",
	}
	id, err := database.CreateGroup(context.Background(), req)
	require.NoError(t, err)
	return &model.Group{Id: id, Title: req.Title, Slug: req.Slug, Description: req.Description}
}

// CreatePosts creates n posts by author, the last one being the newest
func CreatePosts(t testing.TB, database db.PostDatabase, author *model.User, group *model.Group, n int) []int64 {
	t.Helper()
	var groupId *int64
	if group != nil {
		groupId = &group.Id
	}
	ids := make([]int64, n)
	for i := range ids {
		id, err := database.CreatePost(context.Background(), &db.CreatePost{
			AuthorId: author.Id,
			Text:     fmt.Sprintf("Тестовый пост %d", i),
			GroupId:  groupId,
		})
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}
