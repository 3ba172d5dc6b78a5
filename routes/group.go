package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/util"
)

type groupRoutes struct {
	controller *controllers.GroupController
	db         db.PostDatabase
	images     app.ImageResolver
	perPage    int
}

func AddGroupRoutes(group *gin.RouterGroup, controller *controllers.GroupController, database db.PostDatabase, images app.ImageResolver, perPage int) {
	routes := groupRoutes{controller: controller, db: database, images: images, perPage: perPage}
	groups := group.Group("/group")
	groups.GET("/:slug/", util.HandlerWrapper(routes.groupPosts))
}

func (gr *groupRoutes) groupPosts(c *gin.Context) (util.Response, *util.HTTPError) {
	group, httpErr := gr.controller.GetGroupBySlug(c, c.Param("slug"))
	if httpErr != nil {
		return nil, httpErr
	}
	page, err := app.GroupPosts(gr.db, gr.images, group).Page(c, c.Query("page"), gr.perPage)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &util.Page{Template: "group.html", Data: gin.H{
		"title": group.Title,
		"group": group,
		"page":  page,
	}}, nil
}
