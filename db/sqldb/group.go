package sqldb

import (
	"context"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/pkg/errors"
	"github.com/upper/db/v4"
)

var groupColumns = []interface{}{"id", "title", "slug", "description"}

type GroupDB struct {
	sess db.Session
}

func getGroupDB(sess db.Session) *GroupDB {
	return &GroupDB{sess}
}

func (gdb *GroupDB) CreateGroup(ctx context.Context, req *appDb.CreateGroup) (int64, error) {
	var id int64
	err := gdb.sess.TxContext(ctx, func(sess db.Session) error {
		res, err := sess.SQL().
			InsertInto("post_group").
			Columns("title", "slug", "description").
			Values(req.Title, req.Slug, req.Description).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	}, nil)
	if err != nil {
		return 0, errors.Wrap(err, "inserting group")
	}
	return id, nil
}

func (gdb *GroupDB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	groups := []*model.Group{}
	if err := gdb.sess.SQL().
		Select(groupColumns...).
		From("post_group").
		OrderBy("title", "id").
		IteratorContext(ctx).
		All(&groups); err != nil {
		return nil, errors.Wrap(err, "selecting groups")
	}
	return groups, nil
}

func (gdb *GroupDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return gdb.getGroupWhere(ctx, "slug = ?", slug)
}

func (gdb *GroupDB) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	return gdb.getGroupWhere(ctx, "id = ?", id)
}

func (gdb *GroupDB) getGroupWhere(ctx context.Context, cond string, arg interface{}) (*model.Group, error) {
	var group model.Group
	if err := gdb.sess.SQL().
		Select(groupColumns...).
		From("post_group").
		Where(cond, arg).
		IteratorContext(ctx).
		One(&group); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "selecting group")
	}
	return &group, nil
}

// DeleteGroup keeps the group's posts, they just lose their group
func (gdb *GroupDB) DeleteGroup(ctx context.Context, id int64) error {
	err := gdb.sess.TxContext(ctx, func(sess db.Session) error {
		return sess.Collection("post_group").
			Find("id = ?", id).
			Delete()
	}, nil)
	return errors.Wrap(err, "deleting group")
}
