package routes

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/forms"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/util"
)

// maxFormSize leaves room for the text fields next to the largest accepted image
const maxFormSize = forms.MaxImageSize + 1<<20

var formMethods = []string{http.MethodGet, http.MethodPost}

type postRoutes struct {
	db     db.Database
	groups *controllers.GroupController
	media  services.MediaStorage
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, groups *controllers.GroupController, media services.MediaStorage) {
	routes := postRoutes{db: database, groups: groups, media: media}
	group.Match(formMethods, "/new/", middleware.RequireAccount(), util.HandlerWrapper(routes.newPost))

	posts := group.Group("/:username/:post_id")
	posts.GET("/", util.HandlerWrapper(routes.postView))
	posts.Match(formMethods, "/edit/", util.HandlerWrapper(routes.editPost))
	posts.Match(formMethods, "/comment/", middleware.RequireAccount(), util.HandlerWrapper(routes.addComment))
}

func (pr *postRoutes) newPost(c *gin.Context) (util.Response, *util.HTTPError) {
	form := forms.NewPostForm(pr.groups.Groups())
	if c.Request.Method == http.MethodPost {
		values, image, httpErr := readMultipartForm(c)
		if httpErr != nil {
			return nil, httpErr
		}
		valid, httpErr := pr.bindPostForm(c, form, values, image)
		if httpErr != nil {
			return nil, httpErr
		}
		if valid {
			data := form.Cleaned()
			req := &db.CreatePost{
				AuthorId: middleware.MustGetUser(c).Id,
				Text:     data.Text,
				GroupId:  data.GroupId,
			}
			if data.Image != nil {
				if req.Image, httpErr = pr.saveImage(c, data.Image); httpErr != nil {
					return nil, httpErr
				}
			}
			if _, err := pr.db.CreatePost(c, req); err != nil {
				pr.deleteImage(c, req.Image)
				return nil, util.BuildDbHTTPErr(err)
			}
			return util.RedirectTo("/"), nil
		}
	}
	return &util.Page{Template: "posts/new.html", Data: gin.H{
		"title":   "Новая запись",
		"form":    form,
		"is_edit": false,
	}}, nil
}

func (pr *postRoutes) postView(c *gin.Context) (util.Response, *util.HTTPError) {
	post, httpErr := pr.loadPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	countPosts, err := pr.db.CountPosts(c, &db.PostsFilter{AuthorId: post.Author.Id})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	comments, err := pr.db.GetComments(c, post.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &util.Page{Template: "posts/post.html", Data: gin.H{
		"title":       post.String(),
		"post":        post,
		"author":      post.Author,
		"count_posts": countPosts,
		"comments":    comments,
		"form":        forms.NewCommentForm(),
		"is_author":   post.IsAuthor(middleware.GetUserMaybe(c)),
	}}, nil
}

// editPost sends everyone but the author back to the post
func (pr *postRoutes) editPost(c *gin.Context) (util.Response, *util.HTTPError) {
	post, httpErr := pr.loadPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	postURL := util.PostURL(post.Author.Username, post.Id)
	if !post.IsAuthor(middleware.GetUserMaybe(c)) {
		return util.RedirectTo(postURL), nil
	}

	form := forms.EditPostForm(post, pr.groups.Groups())
	if c.Request.Method == http.MethodPost {
		values, image, httpErr := readMultipartForm(c)
		if httpErr != nil {
			return nil, httpErr
		}
		valid, httpErr := pr.bindPostForm(c, form, values, image)
		if httpErr != nil {
			return nil, httpErr
		}
		if valid {
			data := form.Cleaned()
			req := &db.UpdatePost{
				Id:      post.Id,
				Text:    data.Text,
				GroupId: data.GroupId,
				Image:   post.Image,
			}
			var replaced string
			switch {
			case data.Image != nil:
				if req.Image, httpErr = pr.saveImage(c, data.Image); httpErr != nil {
					return nil, httpErr
				}
				replaced = post.Image
			case data.ClearImage:
				req.Image = ""
				replaced = post.Image
			}
			if err := pr.db.UpdatePost(c, req); err != nil {
				if data.Image != nil {
					pr.deleteImage(c, req.Image)
				}
				return nil, util.BuildDbHTTPErr(err)
			}
			pr.deleteImage(c, replaced)
			return util.RedirectTo(postURL), nil
		}
	}
	return &util.Page{Template: "posts/new.html", Data: gin.H{
		"title":   "Редактировать запись",
		"form":    form,
		"post":    post,
		"is_edit": true,
	}}, nil
}

// addComment always returns to the post. An empty comment is dropped
func (pr *postRoutes) addComment(c *gin.Context) (util.Response, *util.HTTPError) {
	post, httpErr := pr.loadPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	postURL := util.PostURL(post.Author.Username, post.Id)
	if c.Request.Method != http.MethodPost {
		return util.RedirectTo(postURL), nil
	}

	form := forms.NewCommentForm()
	if err := c.Request.ParseForm(); err == nil && form.Bind(c.Request.PostForm) {
		if _, err := pr.db.CreateComment(c, &db.CreateComment{
			PostId:   post.Id,
			AuthorId: middleware.MustGetUser(c).Id,
			Text:     form.CleanedText(),
		}); err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
	}
	return util.RedirectTo(postURL), nil
}

// loadPost finds the post named by the path, 404ing when it belongs to someone else
// bindPostForm also confirms the chosen group still exists, the choices come
// from the cached group list
func (pr *postRoutes) bindPostForm(c *gin.Context, form *forms.PostForm, values url.Values, image *multipart.FileHeader) (bool, *util.HTTPError) {
	if !form.Bind(values, image) {
		return false, nil
	}
	groupId := form.Cleaned().GroupId
	if groupId == nil {
		return true, nil
	}
	exists, err := pr.groups.GroupExists(c, *groupId)
	if err != nil {
		return false, util.BuildDbHTTPErr(err)
	}
	if !exists {
		form.RejectGroup()
		return false, nil
	}
	return true, nil
}

func (pr *postRoutes) loadPost(c *gin.Context) (*model.Post, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("post_id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPost(c, id, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.NotFound("post")
	}
	app.ResolveImages(pr.media, post)
	return post, nil
}

func (pr *postRoutes) saveImage(c *gin.Context, upload *forms.Upload) (string, *util.HTTPError) {
	name := services.ObjectName(upload.Ext)
	if err := pr.media.Save(c, name, upload.ContentType, upload.Reader(), upload.Size()); err != nil {
		return "", util.BuildServerHTTPErr("an error occurred while saving an uploaded image", err)
	}
	return name, nil
}

// deleteImage only logs failures, a stray object does not break the post
func (pr *postRoutes) deleteImage(c *gin.Context, name string) {
	if name == "" {
		return
	}
	if err := pr.media.Delete(c, name); err != nil {
		slog.Warn("an error occurred while deleting an image", "name", name, "err", err)
	}
}

// readMultipartForm returns the submitted values and the image upload, if any
func readMultipartForm(c *gin.Context) (url.Values, *multipart.FileHeader, *util.HTTPError) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormSize)
	if err := c.Request.ParseMultipartForm(maxFormSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, &util.HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "upload too large"}
		}
		return nil, nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "malformed form"}
	}
	var image *multipart.FileHeader
	if c.Request.MultipartForm != nil {
		if files := c.Request.MultipartForm.File["image"]; len(files) > 0 {
			image = files[0]
		}
	}
	return c.Request.PostForm, image, nil
}
