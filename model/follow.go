package model

// Follow subscribes User to the posts of Author
type Follow struct {
	UserId   string `db:"user_id" json:"userId"`
	AuthorId string `db:"author_id" json:"authorId"`
}
