package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/navbryce/yatube/auth"
	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/sqldb/sqldbtest"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef"

// renderRecorder stands in for the templates and keeps what the last page was given
type renderRecorder struct {
	name string
	data gin.H
}

func (rr *renderRecorder) Instance(name string, data any) render.Render {
	rr.name = name
	rr.data, _ = data.(gin.H)
	return render.Data{ContentType: "text/html; charset=utf-8", Data: []byte(name)}
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     db.Database
	groups *controllers.GroupController
	media  *services.LocalStorage
	local  *auth.LocalProvider
	render *renderRecorder
}

func newTestServer(t *testing.T, opts ...func(env *Env)) *testServer {
	gin.SetMode(gin.TestMode)
	database := sqldbtest.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	groups, err := controllers.NewGroupController(ctx, database, time.Hour)
	require.NoError(t, err)
	media, err := services.NewLocalStorage(t.TempDir(), "/media/")
	require.NoError(t, err)
	local := auth.NewLocalProvider(testSecret, time.Hour)

	env := &Env{
		DB:        database,
		Groups:    groups,
		Media:     media,
		Auth:      &middleware.AuthConfig{Provider: local},
		Local:     local,
		PerPage:   10,
		MediaRoot: media.Root,
	}
	for _, opt := range opts {
		opt(env)
	}

	recorder := &renderRecorder{}
	r := gin.New()
	r.Use(Recovery(), middleware.SecureHeaders())
	r.HTMLRender = recorder
	Register(r, env)

	return &testServer{
		t:      t,
		engine: r,
		db:     database,
		groups: groups,
		media:  media,
		local:  local,
		render: recorder,
	}
}

func (ts *testServer) do(req *http.Request, user *model.User) *httptest.ResponseRecorder {
	ts.t.Helper()
	if user != nil {
		session, _, err := ts.local.Issue(user.Id)
		require.NoError(ts.t, err)
		req.AddCookie(&http.Cookie{Name: middleware.SESSION_COOKIE, Value: session})
	}
	ts.render.name, ts.render.data = "", nil
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func (ts *testServer) get(path string, user *model.User) *httptest.ResponseRecorder {
	ts.t.Helper()
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil), user)
}

func (ts *testServer) post(path string, values url.Values, user *model.User) *httptest.ResponseRecorder {
	ts.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req, user)
}

func (ts *testServer) postBody(path string, body io.Reader, contentType string, user *model.User) *httptest.ResponseRecorder {
	ts.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	return ts.do(req, user)
}

func (ts *testServer) user(username string) *model.User {
	ts.t.Helper()
	return sqldbtest.CreateUser(ts.t, ts.db, username)
}

func (ts *testServer) group(slug string) *model.Group {
	ts.t.Helper()
	group := sqldbtest.CreateGroup(ts.t, ts.db, slug)
	require.NoError(ts.t, ts.groups.Refresh(context.Background()))
	return group
}

func (ts *testServer) countPosts(filter *db.PostsFilter) int {
	ts.t.Helper()
	count, err := ts.db.CountPosts(context.Background(), filter)
	require.NoError(ts.t, err)
	return count
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))
}

func TestStaticPages(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path     string
		template string
	}{
		{"/about/author/", "about/author.html"},
		{"/about/tech/", "about/tech.html"},
		{"/auth/login/", "auth/login.html"},
		{"/auth/signup/", "auth/signup.html"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := ts.get(tt.path, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.template, ts.render.name)
		})
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get("/no/such/page/here/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "misc/404.html", ts.render.name)
	assert.Equal(t, "/no/such/page/here/", ts.render.data["path"])
}

func TestRecovery(t *testing.T) {
	ts := newTestServer(t)
	ts.engine.GET("/boom/", func(c *gin.Context) {
		panic("boom")
	})
	w := ts.get("/boom/", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "misc/500.html", ts.render.name)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get("/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaticFiles(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get("/static/css/style.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".post")
}

func TestSecurityHeaders(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get("/", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
