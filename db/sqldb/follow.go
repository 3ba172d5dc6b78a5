package sqldb

import (
	"context"

	"github.com/navbryce/yatube/model"
	"github.com/pkg/errors"
	"github.com/upper/db/v4"
)

type FollowDB struct {
	sess db.Session
}

func getFollowDB(sess db.Session) *FollowDB {
	return &FollowDB{sess}
}

func (fdb *FollowDB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	err := fdb.sess.TxContext(ctx, func(sess db.Session) error {
		_, err := sess.SQL().
			InsertInto("follow").
			Columns("user_id", "author_id", "created_at").
			Values(follow.UserId, follow.AuthorId, now()).
			ExecContext(ctx)
		return err
	}, nil)
	return errors.Wrap(err, "inserting follow")
}

func (fdb *FollowDB) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	err := fdb.sess.TxContext(ctx, func(sess db.Session) error {
		return sess.Collection("follow").
			Find("user_id = ? AND author_id = ?", follow.UserId, follow.AuthorId).
			Delete()
	}, nil)
	return errors.Wrap(err, "deleting follow")
}

func (fdb *FollowDB) IsFollowing(ctx context.Context, follow *model.Follow) (bool, error) {
	count, err := fdb.count(ctx, "user_id = ? AND author_id = ?", follow.UserId, follow.AuthorId)
	return count > 0, err
}

func (fdb *FollowDB) CountFollowers(ctx context.Context, authorId string) (int, error) {
	return fdb.count(ctx, "author_id = ?", authorId)
}

func (fdb *FollowDB) CountFollowing(ctx context.Context, userId string) (int, error) {
	return fdb.count(ctx, "user_id = ?", userId)
}

func (fdb *FollowDB) count(ctx context.Context, conds ...interface{}) (int, error) {
	count, err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Find(conds...).
		Count()
	if err != nil {
		return 0, errors.Wrap(err, "counting follows")
	}
	return int(count), nil
}
