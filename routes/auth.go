package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/auth"
	"github.com/navbryce/yatube/config"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/forms"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
)

type authRoutes struct {
	db       db.UserDatabase
	config   *middleware.AuthConfig
	local    *auth.LocalProvider
	firebase *auth.FirebaseProvider
}

// AddAuthRoutes registers the login flow of whichever provider is set
func AddAuthRoutes(group *gin.RouterGroup, database db.UserDatabase, config *middleware.AuthConfig, local *auth.LocalProvider, firebase *auth.FirebaseProvider) {
	routes := authRoutes{db: database, config: config, local: local, firebase: firebase}
	users := group.Group("/auth")
	users.GET("/login/", util.HandlerWrapper(routes.login))
	users.Match(formMethods, "/logout/", util.HandlerWrapper(routes.logout))
	if local != nil {
		users.POST("/login/", util.HandlerWrapper(routes.login))
		users.Match(formMethods, "/signup/", util.HandlerWrapper(routes.signup))
	}
	if firebase != nil {
		users.POST("/session/", util.HandlerWrapper(routes.session))
	}
}

func (ar *authRoutes) provider() string {
	if ar.local != nil {
		return config.AuthLocal
	}
	return config.AuthFirebase
}

func (ar *authRoutes) loginPage(c *gin.Context, data gin.H) *util.Page {
	page := &util.Page{Template: "auth/login.html", Data: gin.H{
		"title":    "Войти",
		"provider": ar.provider(),
		"next":     c.Query("next"),
	}}
	for k, v := range data {
		page.Data[k] = v
	}
	return page
}

func (ar *authRoutes) login(c *gin.Context) (util.Response, *util.HTTPError) {
	form := forms.NewLoginForm()
	if c.Request.Method != http.MethodPost {
		return ar.loginPage(c, gin.H{"form": form}), nil
	}

	_ = c.Request.ParseForm()
	if !form.Bind(c.Request.PostForm) {
		return ar.loginPage(c, gin.H{"form": form}), nil
	}
	creds, err := ar.db.GetCredentials(c, form.Username.Value)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if creds == nil || auth.CheckPassword(creds.PasswordHash, c.Request.PostForm.Get(form.Password.Name)) != nil {
		form.Reject()
		return ar.loginPage(c, gin.H{"form": form}), nil
	}
	if httpErr := ar.startLocalSession(c, creds.UserId); httpErr != nil {
		return nil, httpErr
	}
	return util.RedirectTo(util.SafeNext(c.Query("next"), "/")), nil
}

func (ar *authRoutes) signup(c *gin.Context) (util.Response, *util.HTTPError) {
	form := forms.NewSignupForm()
	page := &util.Page{Template: "auth/signup.html", Data: gin.H{
		"title": "Регистрация",
		"form":  form,
	}}
	if c.Request.Method != http.MethodPost {
		return page, nil
	}

	_ = c.Request.ParseForm()
	if !form.Bind(c.Request.PostForm) {
		return page, nil
	}
	data := form.Cleaned()
	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		return nil, util.BuildServerHTTPErr("an error occurred while hashing a password", err)
	}
	user, httpErr := ar.createUser(c, &db.CreateUser{
		Id:           ar.local.NewUserId(),
		Username:     data.Username,
		DisplayName:  data.DisplayName,
		PasswordHash: hash,
	})
	if httpErr != nil {
		return nil, httpErr
	}
	if user == nil {
		form.Username.AddError(forms.ErrUsernameTaken)
		return page, nil
	}
	if httpErr := ar.startLocalSession(c, user.Id); httpErr != nil {
		return nil, httpErr
	}
	return util.RedirectTo("/"), nil
}

// session trades a firebase ID token for a session cookie. The first login
// also picks the username
func (ar *authRoutes) session(c *gin.Context) (util.Response, *util.HTTPError) {
	_ = c.Request.ParseForm()
	username := c.Request.PostForm.Get("username")
	retry := func(msg string) *util.Page {
		return ar.loginPage(c, gin.H{"username": username, "errors": []string{msg}})
	}

	session, uid, expiresAt, err := ar.firebase.Exchange(c, c.Request.PostForm.Get("id_token"))
	if errors.Is(err, auth.ErrInvalidSession) {
		return retry(forms.ErrInvalidLogin), nil
	} else if err != nil {
		return nil, util.BuildServerHTTPErr("an error occurred while creating a firebase session", err)
	}

	user, err := ar.db.GetUser(c, uid)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		if msg := forms.UsernameError(username); msg != "" {
			return retry(msg), nil
		}
		var httpErr *util.HTTPError
		if user, httpErr = ar.createUser(c, &db.CreateUser{Id: uid, Username: username}); httpErr != nil {
			return nil, httpErr
		}
		if user == nil {
			return retry(forms.ErrUsernameTaken), nil
		}
	}
	middleware.SetSession(c, ar.config, session, expiresAt)
	return util.RedirectTo(util.SafeNext(c.Query("next"), "/")), nil
}

func (ar *authRoutes) logout(c *gin.Context) (util.Response, *util.HTTPError) {
	middleware.ClearSession(c, ar.config)
	middleware.ForgetUser(c)
	return &util.Page{Template: "auth/logged_out.html", Data: gin.H{
		"title": "Выход",
	}}, nil
}

// createUser returns a nil user when the username is already taken
func (ar *authRoutes) createUser(c *gin.Context, req *db.CreateUser) (*model.User, *util.HTTPError) {
	existing, err := ar.db.GetUserByUsername(c, req.Username)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if existing != nil {
		return nil, nil
	}
	user, err := ar.db.CreateUser(c, req)
	if db.IsDupKeyErr(err) {
		return nil, nil
	} else if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return user, nil
}

func (ar *authRoutes) startLocalSession(c *gin.Context, uid string) *util.HTTPError {
	session, expiresAt, err := ar.local.Issue(uid)
	if err != nil {
		return util.BuildServerHTTPErr("an error occurred while signing a session", err)
	}
	middleware.SetSession(c, ar.config, session, expiresAt)
	return nil
}
