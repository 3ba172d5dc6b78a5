package model

import (
	"time"
)

// StrLen is how many runes of the text String keeps
const StrLen = 15

type Post struct {
	Id        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *User     `json:"author"`
	Group     *Group    `json:"group"` // nil when posted outside of any group
	Image     string    `json:"-"`     // object name, empty when there is no image
	ImageURL  string    `json:"image"`
}

func (p *Post) String() string {
	return truncate(p.Text, StrLen)
}

func (p *Post) IsAuthor(user *User) bool {
	return p.Author.Is(user)
}

type Comment struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"postId"`
	Author    *User     `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Comment) String() string {
	return truncate(c.Text, StrLen)
}

func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
