package model

import "time"

// User holds the local profile. Id is the uid issued by the session provider
type User struct {
	Id          string    `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"displayName"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// FullName falls back to the username when no display name was given
func (u *User) FullName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

func (u *User) String() string {
	return u.Username
}

// Is reports whether both users are the same account. nil never matches
func (u *User) Is(other *User) bool {
	return u != nil && other != nil && u.Id == other.Id
}
