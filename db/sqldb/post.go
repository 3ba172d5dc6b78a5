package sqldb

import (
	"context"
	"strings"
	"time"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/dao"
	"github.com/navbryce/yatube/model"
	"github.com/pkg/errors"
	"github.com/upper/db/v4"
)

type flattenedPost struct {
	Id               int64          `db:"id"`
	Text             string         `db:"text"`
	CreatedAt        time.Time      `db:"created_at"`
	Image            dao.NullString `db:"image"`
	AuthorId         string         `db:"author_id"`
	Username         string         `db:"username"`
	DisplayName      string         `db:"display_name"`
	AuthorCreatedAt  time.Time      `db:"author_created_at"`
	GroupId          dao.NullInt64  `db:"group_id"`
	GroupTitle       dao.NullString `db:"group_title"`
	GroupSlug        dao.NullString `db:"group_slug"`
	GroupDescription dao.NullString `db:"group_description"`
}

func (fp *flattenedPost) toPost() *model.Post {
	post := &model.Post{
		Id:        fp.Id,
		Text:      fp.Text,
		CreatedAt: fp.CreatedAt,
		Image:     fp.Image.OrEmpty(),
		Author: &model.User{
			Id:          fp.AuthorId,
			Username:    fp.Username,
			DisplayName: fp.DisplayName,
			CreatedAt:   fp.AuthorCreatedAt,
		},
	}
	if groupId := fp.GroupId.AsPtr(); groupId != nil {
		post.Group = &model.Group{
			Id:          *groupId,
			Title:       fp.GroupTitle.OrEmpty(),
			Slug:        fp.GroupSlug.OrEmpty(),
			Description: fp.GroupDescription.OrEmpty(),
		}
	}
	return post
}

var postColumns = []interface{}{
	"p.id as id",
	"p.text as text",
	"p.created_at as created_at",
	"p.image as image",
	"p.author_id as author_id",
	"u.username as username",
	"u.display_name as display_name",
	"u.created_at as author_created_at",
	"p.group_id as group_id",
	"g.title as group_title",
	"g.slug as group_slug",
	"g.description as group_description",
}

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	var id int64
	err := pdb.sess.TxContext(ctx, func(sess db.Session) error {
		res, err := sess.SQL().
			InsertInto("post").
			Columns("text", "created_at", "author_id", "group_id", "image").
			Values(req.Text, now(), req.AuthorId, dao.Int64OrNull(req.GroupId), dao.StringOrNull(req.Image)).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	}, nil)
	if err != nil {
		return 0, errors.Wrap(err, "inserting post")
	}
	return id, nil
}

func (pdb *PostDB) UpdatePost(ctx context.Context, req *appDb.UpdatePost) error {
	err := pdb.sess.TxContext(ctx, func(sess db.Session) error {
		_, err := sess.SQL().ExecContext(ctx, db.Raw(`
UPDATE post
	SET text = ?, group_id = ?, image = ?
	WHERE id = ?
`, req.Text, dao.Int64OrNull(req.GroupId), dao.StringOrNull(req.Image), req.Id))
		return err
	}, nil)
	return errors.Wrap(err, "updating post")
}

func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	err := pdb.sess.TxContext(ctx, func(sess db.Session) error {
		return sess.Collection("post").
			Find("id = ?", id).
			Delete()
	}, nil)
	return errors.Wrap(err, "deleting post")
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	return pdb.getPostWhere(ctx, "p.id = ?", id)
}

func (pdb *PostDB) GetPost(ctx context.Context, id int64, authorUsername string) (*model.Post, error) {
	return pdb.getPostWhere(ctx, "p.id = ? AND u.username = ?", id, authorUsername)
}

func (pdb *PostDB) getPostWhere(ctx context.Context, conds ...interface{}) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.joinPosts(pdb.sess.SQL().Select(postColumns...)).
		Where(conds...).
		IteratorContext(ctx).
		One(&post); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "selecting post")
	}
	return post.toPost(), nil
}

func (pdb *PostDB) GetPosts(ctx context.Context, filter *appDb.PostsFilter, opts *appDb.PostsListQueryOpts) ([]*model.Post, error) {
	query := filterPosts(pdb.joinPosts(pdb.sess.SQL().Select(postColumns...)), filter).
		OrderBy("p.created_at DESC", "p.id DESC")
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}

	var flattened []flattenedPost
	if err := query.IteratorContext(ctx).All(&flattened); err != nil {
		return nil, errors.Wrap(err, "selecting posts")
	}
	posts := make([]*model.Post, len(flattened))
	for i := range flattened {
		posts[i] = flattened[i].toPost()
	}
	return posts, nil
}

func (pdb *PostDB) CountPosts(ctx context.Context, filter *appDb.PostsFilter) (int, error) {
	var res struct {
		Total int `db:"total"`
	}
	query := pdb.sess.SQL().
		Select(db.Raw("COUNT(*) AS total")).
		From("post as p")
	if err := filterPosts(query, filter).
		IteratorContext(ctx).
		One(&res); err != nil {
		return 0, errors.Wrap(err, "counting posts")
	}
	return res.Total, nil
}

func (pdb *PostDB) joinPosts(sel db.Selector) db.Selector {
	return sel.From("post as p").
		Join("person as u").On("p.author_id = u.id").
		LeftJoin("post_group as g").On("p.group_id = g.id")
}

// filterPosts expects the post table aliased as p
func filterPosts(sel db.Selector, filter *appDb.PostsFilter) db.Selector {
	if filter == nil {
		return sel
	}
	if filter.FollowedBy != "" {
		sel = sel.Join("follow as f").On("f.author_id = p.author_id AND f.user_id = ?", filter.FollowedBy)
	}

	var conds []string
	var args []interface{}
	if filter.GroupId != 0 {
		conds = append(conds, "p.group_id = ?")
		args = append(args, filter.GroupId)
	}
	if filter.AuthorId != "" {
		conds = append(conds, "p.author_id = ?")
		args = append(args, filter.AuthorId)
	}
	if len(conds) == 0 {
		return sel
	}
	return sel.Where(append([]interface{}{strings.Join(conds, " AND ")}, args...)...)
}
