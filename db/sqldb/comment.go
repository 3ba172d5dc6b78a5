package sqldb

import (
	"context"
	"time"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/pkg/errors"
	"github.com/upper/db/v4"
)

type flattenedComment struct {
	Id          int64     `db:"id"`
	PostId      int64     `db:"post_id"`
	Text        string    `db:"text"`
	CreatedAt   time.Time `db:"created_at"`
	AuthorId    string    `db:"author_id"`
	Username    string    `db:"username"`
	DisplayName string    `db:"display_name"`
}

type CommentDB struct {
	sess db.Session
}

func getCommentDB(sess db.Session) *CommentDB {
	return &CommentDB{sess}
}

func (cdb *CommentDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	var id int64
	err := cdb.sess.TxContext(ctx, func(sess db.Session) error {
		res, err := sess.SQL().
			InsertInto("comment").
			Columns("post_id", "author_id", "text", "created_at").
			Values(req.PostId, req.AuthorId, req.Text, now()).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	}, nil)
	if err != nil {
		return 0, errors.Wrap(err, "inserting comment")
	}
	return id, nil
}

func (cdb *CommentDB) GetComments(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattened []flattenedComment
	if err := cdb.sess.SQL().
		Select(
			"c.id as id",
			"c.post_id as post_id",
			"c.text as text",
			"c.created_at as created_at",
			"c.author_id as author_id",
			"u.username as username",
			"u.display_name as display_name",
		).
		From("comment as c").
		Join("person as u").On("c.author_id = u.id").
		Where("c.post_id = ?", postId).
		OrderBy("c.created_at", "c.id").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, errors.Wrap(err, "selecting comments")
	}

	comments := make([]*model.Comment, len(flattened))
	for i, fc := range flattened {
		comments[i] = &model.Comment{
			Id:        fc.Id,
			PostId:    fc.PostId,
			Text:      fc.Text,
			CreatedAt: fc.CreatedAt,
			Author: &model.User{
				Id:          fc.AuthorId,
				Username:    fc.Username,
				DisplayName: fc.DisplayName,
			},
		}
	}
	return comments, nil
}
