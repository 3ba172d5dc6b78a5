package app

import (
	"context"

	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/paginate"
	"github.com/pkg/errors"
)

type FeedType string

const (
	FeedTypeAll      FeedType = "ALL"
	FeedTypeGroup    FeedType = "GROUP"
	FeedTypeAuthor   FeedType = "AUTHOR"
	FeedTypeFollowed FeedType = "FOLLOWED"
)

// ImageResolver turns a stored object name into a public URL
type ImageResolver interface {
	URL(name string) string
}

type PostPage = paginate.Page[*model.Post]

// Feed is a paginated list of posts, newest first
type Feed struct {
	Type   FeedType
	db     db.PostDatabase
	images ImageResolver
	filter *db.PostsFilter
}

func AllPosts(database db.PostDatabase, images ImageResolver) *Feed {
	return &Feed{Type: FeedTypeAll, db: database, images: images, filter: &db.PostsFilter{}}
}

func GroupPosts(database db.PostDatabase, images ImageResolver, group *model.Group) *Feed {
	return &Feed{Type: FeedTypeGroup, db: database, images: images, filter: &db.PostsFilter{GroupId: group.Id}}
}

func AuthorPosts(database db.PostDatabase, images ImageResolver, author *model.User) *Feed {
	return &Feed{Type: FeedTypeAuthor, db: database, images: images, filter: &db.PostsFilter{AuthorId: author.Id}}
}

// FollowedPosts lists the posts of every author user follows
func FollowedPosts(database db.PostDatabase, images ImageResolver, user *model.User) *Feed {
	return &Feed{Type: FeedTypeFollowed, db: database, images: images, filter: &db.PostsFilter{FollowedBy: user.Id}}
}

// Page loads the page named by the raw ?page= value
func (f *Feed) Page(ctx context.Context, rawPage string, perPage int) (*PostPage, error) {
	count, err := f.db.CountPosts(ctx, f.filter)
	if err != nil {
		return nil, errors.Wrapf(err, "counting %v feed", f.Type)
	}
	paginator := paginate.New(count, perPage)
	number := paginator.Number(rawPage)

	posts := []*model.Post{}
	if count > 0 {
		offset, limit := paginator.Bounds(number)
		if posts, err = f.db.GetPosts(ctx, f.filter, &db.PostsListQueryOpts{Limit: limit, Offset: offset}); err != nil {
			return nil, errors.Wrapf(err, "loading %v feed", f.Type)
		}
	}
	ResolveImages(f.images, posts...)
	return paginate.NewPage(posts, number, paginator), nil
}

func ResolveImages(images ImageResolver, posts ...*model.Post) {
	for _, post := range posts {
		if post.Image != "" && images != nil {
			post.ImageURL = images.URL(post.Image)
		}
	}
}
