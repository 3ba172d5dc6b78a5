package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

type userRoutes struct {
	db      db.Database
	images  app.ImageResolver
	perPage int
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, images app.ImageResolver, perPage int) {
	routes := userRoutes{db: database, images: images, perPage: perPage}
	group.GET("/:username/", util.HandlerWrapper(routes.profile))
}

func (ur *userRoutes) profile(c *gin.Context) (util.Response, *util.HTTPError) {
	author, httpErr := loadAuthor(c, ur.db)
	if httpErr != nil {
		return nil, httpErr
	}
	page, err := app.AuthorPosts(ur.db, ur.images, author).Page(c, c.Query("page"), ur.perPage)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	followers, err := ur.db.CountFollowers(c, author.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	follows, err := ur.db.CountFollowing(c, author.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}

	viewer := middleware.GetUserMaybe(c)
	following := false
	if viewer != nil && !viewer.Is(author) {
		following, err = ur.db.IsFollowing(c, &model.Follow{UserId: viewer.Id, AuthorId: author.Id})
		if err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
	}

	return &util.Page{Template: "posts/profile.html", Data: gin.H{
		"title":       author.FullName(),
		"author":      author,
		"page":        page,
		"count_posts": page.Paginator.Count,
		"following":   following,
		"followers":   followers,
		"follows":     follows,
		"is_self":     viewer.Is(author),
	}}, nil
}

// loadAuthor finds the user named by the :username path parameter
func loadAuthor(c *gin.Context, database db.UserDatabase) (*model.User, *util.HTTPError) {
	author, err := database.GetUserByUsername(c, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if author == nil {
		return nil, util.NotFound("user")
	}
	return author, nil
}
