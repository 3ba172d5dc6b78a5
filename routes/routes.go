package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/auth"
	"github.com/navbryce/yatube/cache"
	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/util"
	"github.com/navbryce/yatube/web"
)

// Env holds what the handlers share
type Env struct {
	DB       db.Database
	Groups   *controllers.GroupController
	Media    services.MediaStorage
	Auth     *middleware.AuthConfig
	Local    *auth.LocalProvider    // set when the local auth provider is used
	Firebase *auth.FirebaseProvider // set when the firebase auth provider is used
	Cache    cache.Store
	CacheTTL time.Duration
	PerPage  int
	// MediaRoot is served under /media when uploads live on local disk
	MediaRoot string
}

func Register(r *gin.Engine, env *Env) {
	AddHealthCheckRoutes(&r.RouterGroup, env.DB)
	r.StaticFS("/static", web.Static())
	if env.MediaRoot != "" {
		r.Static("/media", env.MediaRoot)
	}

	r.Use(middleware.GenAuth(env.DB, env.Auth))
	AddFeedRoutes(&r.RouterGroup, env.DB, env.Media, env.PerPage, env.Cache, env.CacheTTL)
	AddGroupRoutes(&r.RouterGroup, env.Groups, env.DB, env.Media, env.PerPage)
	AddAboutRoutes(&r.RouterGroup)
	AddAuthRoutes(&r.RouterGroup, env.DB, env.Auth, env.Local, env.Firebase)
	AddPostRoutes(&r.RouterGroup, env.DB, env.Groups, env.Media)
	AddUserRoutes(&r.RouterGroup, env.DB, env.Media, env.PerPage)
	AddFollowRoutes(&r.RouterGroup, env.DB)
	r.NoRoute(util.HandlerWrapper(NotFound))
}

func NotFound(c *gin.Context) (util.Response, *util.HTTPError) {
	return nil, &util.NotFoundHTTPErr
}

// Recovery renders the 500 page for handlers that panic
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		slog.Error("recovered from panic", "path", c.Request.URL.Path, "panic", err)
		util.HandleHTTPErrorRes(c, &util.ServerHTTPErr)
	})
}
