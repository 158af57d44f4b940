package models

import "time"

type Post struct {
	PostID    int64     `json:"post_id" gorm:"primaryKey;autoIncrement;column:post_id"`
	UserID    string    `json:"user_id" gorm:"not null;index"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	Image     *string   `json:"image"`
	IsSpoiler bool      `json:"is_spoiler" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

type Reply struct {
	ReplyID   int64     `json:"reply_id" gorm:"primaryKey;autoIncrement;column:reply_id"`
	PostID    int64     `json:"post_id" gorm:"not null;index"`
	UserID    string    `json:"user_id" gorm:"not null;index"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// Like targets exactly one of a post or a reply; the check constraint makes
// the XOR a database invariant rather than a code convention.
type Like struct {
	LikeID  int64  `json:"like_id" gorm:"primaryKey;autoIncrement;column:like_id"`
	UserID  string `json:"user_id" gorm:"not null;index"`
	PostID  *int64 `json:"post_id" gorm:"index;check:likes_one_target,(post_id IS NULL) <> (reply_id IS NULL)"`
	ReplyID *int64 `json:"reply_id" gorm:"index"`
}

// MovieSelection associates a post with a movie it discusses.
type MovieSelection struct {
	PostID  int64 `json:"post_id" gorm:"primaryKey;column:post_id"`
	MovieID int64 `json:"movie_id" gorm:"primaryKey;column:movie_id"`
}

func (Post) TableName() string {
	return "posts"
}

func (Reply) TableName() string {
	return "replies"
}

func (Like) TableName() string {
	return "likes"
}

func (MovieSelection) TableName() string {
	return "movie_selections"
}
