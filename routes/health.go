package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/util"
)

type healthRoutes struct {
	db db.Database
}

func AddHealthCheckRoutes(group *gin.RouterGroup, database db.Database) {
	routes := healthRoutes{db: database}
	health := group.Group("/health")
	health.GET("", util.HandlerWrapper(routes.aliveCheck))
}

func (hr *healthRoutes) aliveCheck(c *gin.Context) (util.Response, *util.HTTPError) {
	if err := hr.db.GetSQLDB().PingContext(c); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
