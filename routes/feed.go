package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/cache"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/util"
)

type feedRoutes struct {
	db      db.PostDatabase
	images  app.ImageResolver
	perPage int
}

func AddFeedRoutes(group *gin.RouterGroup, database db.PostDatabase, images app.ImageResolver, perPage int, store cache.Store, ttl time.Duration) {
	routes := feedRoutes{db: database, images: images, perPage: perPage}
	group.GET("/", cache.Page(store, ttl, middleware.IsSignedIn), util.HandlerWrapper(routes.index))
	group.GET("/follow/", middleware.RequireAccount(), util.HandlerWrapper(routes.followIndex))
}

func (fr *feedRoutes) index(c *gin.Context) (util.Response, *util.HTTPError) {
	page, err := app.AllPosts(fr.db, fr.images).Page(c, c.Query("page"), fr.perPage)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	cache.ServedPage(c, page.Number)
	return &util.Page{Template: "index.html", Data: gin.H{
		"page": page,
	}}, nil
}

func (fr *feedRoutes) followIndex(c *gin.Context) (util.Response, *util.HTTPError) {
	feed := app.FollowedPosts(fr.db, fr.images, middleware.MustGetUser(c))
	page, err := feed.Page(c, c.Query("page"), fr.perPage)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &util.Page{Template: "posts/follow.html", Data: gin.H{
		"title": "Избранные авторы",
		"page":  page,
	}}, nil
}
