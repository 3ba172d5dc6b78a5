package sqldb

import (
	"context"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/dao"
	"github.com/navbryce/yatube/model"
	"github.com/pkg/errors"
	"github.com/upper/db/v4"
)

var userColumns = []interface{}{"id", "username", "display_name", "created_at"}

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, req *appDb.CreateUser) (*model.User, error) {
	user := &model.User{
		Id:          req.Id,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		CreatedAt:   now(),
	}
	err := udb.sess.TxContext(ctx, func(sess db.Session) error {
		_, err := sess.SQL().
			InsertInto("person").
			Columns("id", "username", "display_name", "password_hash", "created_at").
			Values(user.Id, user.Username, user.DisplayName, dao.StringOrNull(req.PasswordHash), user.CreatedAt).
			ExecContext(ctx)
		return err
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "inserting person")
	}
	return user, nil
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	return udb.getUserWhere(ctx, "id = ?", id)
}

func (udb *UserDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return udb.getUserWhere(ctx, "username = ?", username)
}

func (udb *UserDB) getUserWhere(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select(userColumns...).
		From("person").
		Where(cond, arg).
		IteratorContext(ctx).
		One(&user); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "selecting person")
	}
	return &user, nil
}

type credentialsRow struct {
	Id           string         `db:"id"`
	PasswordHash dao.NullString `db:"password_hash"`
}

// GetCredentials returns nil when no such username exists
func (udb *UserDB) GetCredentials(ctx context.Context, username string) (*appDb.Credentials, error) {
	var row credentialsRow
	if err := udb.sess.SQL().
		Select("id", "password_hash").
		From("person").
		Where("username = ?", username).
		IteratorContext(ctx).
		One(&row); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "selecting credentials")
	}
	return &appDb.Credentials{
		UserId:       row.Id,
		PasswordHash: row.PasswordHash.OrEmpty(),
	}, nil
}
