package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

type followRoutes struct {
	db db.Database
}

func AddFollowRoutes(group *gin.RouterGroup, database db.Database) {
	routes := followRoutes{db: database}
	follows := group.Group("/:username", middleware.RequireAccount())
	follows.Match(formMethods, "/follow/", util.HandlerWrapper(routes.follow))
	follows.Match(formMethods, "/unfollow/", util.HandlerWrapper(routes.unfollow))
}

// follow is a no-op for the user's own profile and for authors already followed
func (fr *followRoutes) follow(c *gin.Context) (util.Response, *util.HTTPError) {
	author, httpErr := loadAuthor(c, fr.db)
	if httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetUser(c)
	if user.Is(author) {
		return util.RedirectTo(util.ProfileURL(author.Username)), nil
	}

	follow := &model.Follow{UserId: user.Id, AuthorId: author.Id}
	following, err := fr.db.IsFollowing(c, follow)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !following {
		// a concurrent follow of the same author loses the race on the primary key
		if err := fr.db.CreateFollow(c, follow); err != nil && !db.IsDupKeyErr(err) {
			return nil, util.BuildDbHTTPErr(err)
		}
	}
	return util.RedirectTo(util.ProfileURL(author.Username)), nil
}

func (fr *followRoutes) unfollow(c *gin.Context) (util.Response, *util.HTTPError) {
	author, httpErr := loadAuthor(c, fr.db)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := fr.db.DeleteFollow(c, &model.Follow{
		UserId:   middleware.MustGetUser(c).Id,
		AuthorId: author.Id,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return util.RedirectTo(util.ProfileURL(author.Username)), nil
}
