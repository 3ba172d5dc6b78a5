package util

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the auth middleware keeps the signed in *model.User
const ContextUserKey = "user"

type HTTPError struct {
	Status  int
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var (
	DbHTTPErr = HTTPError{
		Message: "database error",
		Status:  http.StatusInternalServerError,
	}
	MalformedIdHTTPErr = HTTPError{
		Message: "id malformed",
		Status:  http.StatusNotFound,
	}
	NotFoundHTTPErr = HTTPError{
		Message: "page not found",
		Status:  http.StatusNotFound,
	}
	ServerHTTPErr = HTTPError{
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
	}
)

func BuildDbHTTPErr(err error) *HTTPError {
	slog.Error("database error", "err", err)
	return &DbHTTPErr
}

func BuildServerHTTPErr(msg string, err error) *HTTPError {
	slog.Error(msg, "err", err)
	return &ServerHTTPErr
}

func NotFound(what string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: what + " not found"}
}

/*
HandleHTTPErrorRes renders the error page for the HTTP error.
break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	template := "misc/500.html"
	if err.Status == http.StatusNotFound {
		template = "misc/404.html"
	}
	c.HTML(err.Status, template, pageData(c, gin.H{
		"message": err.Message,
	}))
	c.Abort()
}

// Response is what a page handler produces on success
type Response interface {
	Respond(c *gin.Context)
}

type Page struct {
	Template string
	Data     gin.H
}

func (p *Page) Respond(c *gin.Context) {
	c.HTML(http.StatusOK, p.Template, pageData(c, p.Data))
}

type Redirect struct {
	Location string
}

func (r *Redirect) Respond(c *gin.Context) {
	c.Redirect(http.StatusFound, r.Location)
}

func RedirectTo(location string) *Redirect {
	return &Redirect{Location: location}
}

// HandlerWrapper adapts a page handler to gin. A nil response with no error is an empty 200
func HandlerWrapper(handler func(c *gin.Context) (Response, *HTTPError)) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := handler(c)
		if err != nil {
			HandleHTTPErrorRes(c, err)
			return
		}
		if res == nil {
			c.Status(http.StatusOK)
			return
		}
		res.Respond(c)
	}
}

// pageData adds what every template needs: the signed in user and the request path
func pageData(c *gin.Context, data gin.H) gin.H {
	merged := gin.H{
		"path": c.Request.URL.Path,
	}
	if user, ok := c.Get(ContextUserKey); ok {
		merged["user"] = user
	}
	for k, v := range data {
		merged[k] = v
	}
	return merged
}

// SafeNext returns next when it points inside this site, otherwise fallback
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return next
}

func ProfileURL(username string) string {
	return "/" + url.PathEscape(username) + "/"
}

func PostURL(username string, postId int64) string {
	return fmt.Sprintf("%v%d/", ProfileURL(username), postId)
}

func GroupURL(slug string) string {
	return "/group/" + url.PathEscape(slug) + "/"
}

func LoginURL(next string) string {
	return "/auth/login/?next=" + url.QueryEscape(next)
}
