package models

import (
	"errors"
	"time"
)

var (
	ErrNameTaken          = errors.New("name already exists")
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrNotAuthorized      = errors.New("not the creator of this post")
)

// DateLayout renders timestamps the way posts display them, e.g. "9/5/2024, 10:30 AM".
const DateLayout = "1/2/2006, 3:04 PM"

func Stamp(t time.Time) string {
	return t.Format(DateLayout)
}

type User struct {
	ID        int
	Name      string
	Password  string // bcrypt hash, never the clear text
	CreatedAt time.Time
}

type Session struct {
	ID        string
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type Post struct {
	ID          int
	CreatorID   int
	CreatorName string
	Title       string
	Body        string
	Date        string
}
