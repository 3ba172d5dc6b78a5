package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/auth"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

const (
	SESSION_COOKIE = "session"
	USER_KEY       = util.ContextUserKey
)

type AuthConfig struct {
	Provider     auth.SessionProvider
	CookieSecure bool
}

// GenAuth loads the user behind the session cookie, if any. It never rejects a request
func GenAuth(userDB db.UserDatabase, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := c.Cookie(SESSION_COOKIE)
		if err != nil || session == "" {
			return
		}
		uid, err := config.Provider.Verify(c, session)
		if err != nil {
			ClearSession(c, config)
			return
		}
		user, err := userDB.GetUser(c, uid)
		if err != nil {
			slog.Error("loading session user", "uid", uid, "err", err)
			return
		}
		if user == nil {
			return
		}
		c.Set(USER_KEY, user)
	}
}

// RequireAccount sends anonymous visitors to the login page
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserMaybe(c) == nil {
			c.Redirect(http.StatusFound, util.LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
		}
	}
}

func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

// MustGetUser only works behind RequireAccount
func MustGetUser(c *gin.Context) *model.User {
	return c.MustGet(USER_KEY).(*model.User)
}

func IsSignedIn(c *gin.Context) bool {
	return GetUserMaybe(c) != nil
}

func SetSession(c *gin.Context, config *AuthConfig, session string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SESSION_COOKIE, session, int(time.Until(expiresAt).Seconds()), "/", "", config.CookieSecure, true)
}

func ClearSession(c *gin.Context, config *AuthConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SESSION_COOKIE, "", -1, "/", "", config.CookieSecure, true)
}

// ForgetUser drops the signed in user from the rest of the request
func ForgetUser(c *gin.Context) {
	delete(c.Keys, USER_KEY)
}
