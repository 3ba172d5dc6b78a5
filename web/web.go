// Package web holds the embedded templates and static assets
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/navbryce/yatube/util"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page. Each page is defined under its path relative
// to templates/, e.g. "posts/post.html"
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS,
		"templates/*.html",
		"templates/*/*.html",
	)
}

func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"date":       FormatDate,
		"truncate":   Truncate,
		"linebreaks": Linebreaks,
		"avatar":     util.Avatar,
		"profileURL": util.ProfileURL,
		"postURL":    util.PostURL,
		"groupURL":   util.GroupURL,
	}
}

var months = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatDate renders "2 января 2006 15:04" in UTC
func FormatDate(t time.Time) string {
	t = t.UTC()
	return t.Format("2 ") + months[t.Month()-1] + t.Format(" 2006 15:04")
}

// Truncate cuts text to n runes, adding an ellipsis when something was cut
func Truncate(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "…"
}

// Linebreaks escapes text and keeps its line breaks
func Linebreaks(text string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
