package sqldb

import (
	"database/sql"
	"time"

	"github.com/navbryce/yatube/config"
	appDb "github.com/navbryce/yatube/db"
	"github.com/pkg/errors"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
	"github.com/upper/db/v4/adapter/sqlite"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

type SQLDB struct {
	*UserDB
	*GroupDB
	*PostDB
	*CommentDB
	*FollowDB
	sess  db.Session
	sqlDB *sql.DB
}

// GetDatabase connects, migrates the schema to the latest version and returns the store
func GetDatabase(cfg *config.DBConfig) (appDb.Database, error) {
	if err := MigrateUp(cfg); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(cfg.DriverName(), cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	maxConns := cfg.MaxConns
	if cfg.Driver == config.DriverSQLite {
		// sqlite serializes writers anyway
		maxConns = 1
	}
	sqlDB.SetMaxIdleConns(maxConns)
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := newSession(cfg.Driver, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "binding session")
	}

	return &SQLDB{
		UserDB:    getUserDB(sess),
		GroupDB:   getGroupDB(sess),
		PostDB:    getPostDB(sess),
		CommentDB: getCommentDB(sess),
		FollowDB:  getFollowDB(sess),
		sess:      sess,
		sqlDB:     sqlDB,
	}, nil
}

func newSession(driver string, sqlDB *sql.DB) (db.Session, error) {
	switch driver {
	case config.DriverMySQL:
		return mysql.New(sqlDB)
	case config.DriverSQLite:
		return sqlite.New(sqlDB)
	}
	return nil, errors.Errorf("unsupported driver %q", driver)
}

func (sdb *SQLDB) GetSQLDB() *sql.DB {
	return sdb.sqlDB
}

func (sdb *SQLDB) Close() error {
	return sdb.sess.Close()
}

// now is the timestamp stored for new rows. Both drivers keep microseconds
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func isNoRows(err error) bool {
	return errors.Is(err, db.ErrNoMoreRows)
}
