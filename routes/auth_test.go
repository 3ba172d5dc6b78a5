package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/navbryce/yatube/auth"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/forms"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.SESSION_COOKIE {
			return cookie
		}
	}
	require.Fail(t, "no session cookie was set")
	return nil
}

func (ts *testServer) passwordUser(username, password string) *model.User {
	ts.t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(ts.t, err)
	user, err := ts.db.CreateUser(context.Background(), &db.CreateUser{
		Id:           "uid-" + username,
		Username:     username,
		PasswordHash: hash,
	})
	require.NoError(ts.t, err)
	return user
}

func TestSignup(t *testing.T) {
	ts := newTestServer(t)
	values := url.Values{
		"username":     {"newbie"},
		"display_name": {"Новичок"},
		"password1":    {"supersecret"},
		"password2":    {"supersecret"},
	}

	w := ts.post("/auth/signup/", values, nil)
	assertRedirect(t, w, "/")
	cookie := sessionCookie(t, w.Result())
	assert.True(t, cookie.HttpOnly)

	user, err := ts.db.GetUserByUsername(context.Background(), "newbie")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Новичок", user.FullName())

	req := httptest.NewRequest(http.MethodGet, "/new/", nil)
	req.AddCookie(cookie)
	w = ts.do(req, nil)
	assert.Equal(t, http.StatusOK, w.Code, "the new session is signed in")

	w = ts.post("/auth/signup/", values, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "auth/signup.html", ts.render.name)
	form := ts.render.data["form"].(*forms.SignupForm)
	assert.Equal(t, []string{forms.ErrUsernameTaken}, form.Username.Errors)

	values.Set("username", "follow")
	ts.post("/auth/signup/", values, nil)
	form = ts.render.data["form"].(*forms.SignupForm)
	assert.Equal(t, []string{forms.ErrUsernameReserved}, form.Username.Errors)
}

// staleUsernames misses a username taken by a concurrent signup
type staleUsernames struct {
	db.Database
}

func (su staleUsernames) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, nil
}

func TestSignupLosingTheRace(t *testing.T) {
	ts := newTestServer(t, func(env *Env) {
		env.DB = staleUsernames{env.DB}
	})
	ts.passwordUser("leo", "correct horse")
	values := url.Values{
		"username":  {"leo"},
		"password1": {"supersecret"},
		"password2": {"supersecret"},
	}

	w := ts.post("/auth/signup/", values, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	form := ts.render.data["form"].(*forms.SignupForm)
	assert.Equal(t, []string{forms.ErrUsernameTaken}, form.Username.Errors)

	values.Set("username", "newbie")
	assertRedirect(t, ts.post("/auth/signup/", values, nil), "/")
	user, err := ts.db.GetUserByUsername(context.Background(), "newbie")
	require.NoError(t, err)
	assert.NotNil(t, user, "the store still takes writes")
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.passwordUser("leo", "correct horse")

	w := ts.post("/auth/login/", url.Values{"username": {"leo"}, "password": {"wrong horse"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "auth/login.html", ts.render.name)
	form := ts.render.data["form"].(*forms.LoginForm)
	assert.Equal(t, []string{forms.ErrInvalidLogin}, form.Errors)
	assert.Empty(t, w.Result().Cookies())

	w = ts.post("/auth/login/", url.Values{"username": {"ghost"}, "password": {"correct horse"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.post("/auth/login/?next=%2Fnew%2F", url.Values{"username": {"leo"}, "password": {"correct horse"}}, nil)
	assertRedirect(t, w, "/new/")
	sessionCookie(t, w.Result())

	w = ts.post("/auth/login/?next=https%3A%2F%2Fevil.example%2F", url.Values{"username": {"leo"}, "password": {"correct horse"}}, nil)
	assertRedirect(t, w, "/")
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	leo := ts.user("leo")

	ts.get("/", leo)
	assert.Equal(t, leo.Id, ts.render.data["user"].(*model.User).Id)

	w := ts.post("/auth/logout/", nil, leo)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "auth/logged_out.html", ts.render.name)
	assert.NotContains(t, ts.render.data, "user")
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SESSION_COOKIE+"=;")
}

type fakeFirebase struct {
	idTokens map[string]string
}

func (ff *fakeFirebase) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	uid, ok := ff.idTokens[idToken]
	if !ok {
		return nil, errors.New("bad id token")
	}
	return &fbauth.Token{UID: uid}, nil
}

func (ff *fakeFirebase) SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	return "session-" + idToken, nil
}

func (ff *fakeFirebase) VerifySessionCookie(ctx context.Context, sessionCookie string) (*fbauth.Token, error) {
	return ff.VerifyIDToken(ctx, strings.TrimPrefix(sessionCookie, "session-"))
}

func TestFirebaseSession(t *testing.T) {
	firebase := auth.NewFirebaseProvider(&fakeFirebase{
		idTokens: map[string]string{"id-token": "fb-uid"},
	}, time.Hour)
	ts := newTestServer(t, func(env *Env) {
		env.Local = nil
		env.Firebase = firebase
		env.Auth = &middleware.AuthConfig{Provider: firebase}
	})

	ts.get("/auth/login/", nil)
	assert.Equal(t, "auth/login.html", ts.render.name)
	assert.Equal(t, "firebase", ts.render.data["provider"])

	w := ts.get("/auth/signup/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	ts.post("/auth/session/", url.Values{"id_token": {"forged"}}, nil)
	assert.Equal(t, []string{forms.ErrInvalidLogin}, ts.render.data["errors"])

	ts.post("/auth/session/", url.Values{"id_token": {"id-token"}}, nil)
	assert.Equal(t, []string{forms.ErrRequired}, ts.render.data["errors"], "the first login picks a username")

	w = ts.post("/auth/session/?next=%2Ffollow%2F", url.Values{"id_token": {"id-token"}, "username": {"fbuser"}}, nil)
	assertRedirect(t, w, "/follow/")
	cookie := sessionCookie(t, w.Result())
	assert.Equal(t, "session-id-token", cookie.Value)

	user, err := ts.db.GetUser(context.Background(), "fb-uid")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "fbuser", user.Username)

	req := httptest.NewRequest(http.MethodGet, "/follow/", nil)
	req.AddCookie(cookie)
	w = ts.do(req, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.post("/auth/session/", url.Values{"id_token": {"id-token"}}, nil)
	assertRedirect(t, w, "/")
}
