package db

import (
	"context"
	"database/sql"

	"github.com/navbryce/yatube/model"
)

type Database interface {
	UserDatabase
	GroupDatabase
	PostDatabase
	CommentDatabase
	FollowDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type CreateUser struct {
	Id           string
	Username     string
	DisplayName  string
	PasswordHash string // empty for accounts managed by an external provider
}

type Credentials struct {
	UserId       string
	PasswordHash string
}

type UserDatabase interface {
	CreateUser(ctx context.Context, req *CreateUser) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetCredentials(ctx context.Context, username string) (*Credentials, error)
}

type CreateGroup struct {
	Title       string
	Slug        string
	Description string
}

type GroupDatabase interface {
	CreateGroup(ctx context.Context, req *CreateGroup) (groupId int64, err error)
	GetGroups(ctx context.Context) ([]*model.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetGroupById(ctx context.Context, id int64) (*model.Group, error)
	DeleteGroup(ctx context.Context, id int64) error
}

type CreatePost struct {
	AuthorId string
	Text     string
	GroupId  *int64
	Image    string
}

type UpdatePost struct {
	Id      int64
	Text    string
	GroupId *int64
	Image   string
}

// PostsFilter narrows post lists. The zero value matches every post
type PostsFilter struct {
	GroupId    int64
	AuthorId   string
	FollowedBy string // posts of the authors this user follows
}

type PostsListQueryOpts struct {
	Limit  int
	Offset int
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	UpdatePost(ctx context.Context, req *UpdatePost) error
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	// GetPost only finds the post when it was written by authorUsername
	GetPost(ctx context.Context, id int64, authorUsername string) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) error
	// GetPosts returns posts newest first
	GetPosts(ctx context.Context, filter *PostsFilter, opts *PostsListQueryOpts) ([]*model.Post, error)
	CountPosts(ctx context.Context, filter *PostsFilter) (int, error)
}

type CreateComment struct {
	PostId   int64
	AuthorId string
	Text     string
}

type CommentDatabase interface {
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	// GetComments returns the comments of a post oldest first
	GetComments(ctx context.Context, postId int64) ([]*model.Comment, error)
}

type FollowDatabase interface {
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, follow *model.Follow) error
	IsFollowing(ctx context.Context, follow *model.Follow) (bool, error)
	CountFollowers(ctx context.Context, authorId string) (int, error)
	CountFollowing(ctx context.Context, userId string) (int, error)
}
