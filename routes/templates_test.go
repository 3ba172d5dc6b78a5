package routes

import (
	"context"
	"net/http"
	"testing"

	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/sqldb/sqldbtest"
	"github.com/navbryce/yatube/model"
	"github.com/navbryce/yatube/util"
	"github.com/navbryce/yatube/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTemplatesRender runs every page through the real templates
func TestTemplatesRender(t *testing.T) {
	ts := newTestServer(t)
	tmpl, err := web.Templates()
	require.NoError(t, err)
	ts.engine.SetHTMLTemplate(tmpl)

	leo := ts.user("leo")
	bob := ts.user("bob")
	cats := ts.group("cats")
	ids := sqldbtest.CreatePosts(t, ts.db, leo, cats, 12)
	ctx := context.Background()
	_, err = ts.db.CreateComment(ctx, &db.CreateComment{PostId: ids[0], AuthorId: bob.Id, Text: "Первая строка\nвторая <b>строка</b>"})
	require.NoError(t, err)
	require.NoError(t, ts.db.CreateFollow(ctx, &model.Follow{UserId: bob.Id, AuthorId: leo.Id}))
	postURL := util.PostURL("leo", ids[0])

	tests := []struct {
		path     string
		user     *model.User
		status   int
		contains string
	}{
		{"/", nil, http.StatusOK, "Последние обновления на сайте"},
		{"/?page=2", bob, http.StatusOK, "Тестовый пост 1"},
		{"/group/cats/", nil, http.StatusOK, "Группа cats"},
		{"/leo/", nil, http.StatusOK, "Записей: 12"},
		{"/leo/", bob, http.StatusOK, "Отписаться"},
		{"/bob/", leo, http.StatusOK, "Подписаться"},
		{postURL, nil, http.StatusOK, "вторая &lt;b&gt;строка&lt;/b&gt;"},
		{postURL, leo, http.StatusOK, "Редактировать"},
		{postURL + "edit/", leo, http.StatusOK, "Редактировать запись"},
		{"/new/", leo, http.StatusOK, "Текст поста"},
		{"/follow/", bob, http.StatusOK, "Избранные авторы"},
		{"/about/author/", nil, http.StatusOK, "Об авторе проекта"},
		{"/about/tech/", nil, http.StatusOK, "Технологии"},
		{"/auth/login/?next=%2Fnew%2F", nil, http.StatusOK, "Войти на сайт"},
		{"/auth/signup/", nil, http.StatusOK, "Подтверждение пароля"},
		{"/missing/page/at/all/", nil, http.StatusNotFound, "Ошибка 404"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := ts.get(tt.path, tt.user)
			assert.Equal(t, tt.status, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, tt.contains)
			assert.Contains(t, body, "</html>", "the page rendered to the end")
		})
	}
}
