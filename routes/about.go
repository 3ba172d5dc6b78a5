package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/util"
)

func AddAboutRoutes(group *gin.RouterGroup) {
	about := group.Group("/about")
	about.GET("/author/", staticPage("about/author.html", "Об авторе"))
	about.GET("/tech/", staticPage("about/tech.html", "Технологии"))
}

func staticPage(template, title string) gin.HandlerFunc {
	return util.HandlerWrapper(func(c *gin.Context) (util.Response, *util.HTTPError) {
		return &util.Page{Template: template, Data: gin.H{"title": title}}, nil
	})
}
