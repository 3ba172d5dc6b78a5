package model

import "regexp"

const (
	GroupTitleMaxLen = 200
	GroupSlugMaxLen  = 50
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidSlug reports whether slug can appear in a group URL
func ValidSlug(slug string) bool {
	return len(slug) <= GroupSlugMaxLen && slugPattern.MatchString(slug)
}

type Group struct {
	Id          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}

func (g *Group) String() string {
	return g.Title
}
