package models

// User mirrors an identity-provider account. The primary key is the Cognito
// subject claim, so rows are only created once a registration is confirmed.
type User struct {
	UserID         string  `json:"user_id" gorm:"primaryKey;column:user_id"`
	UserName       string  `json:"user_name" gorm:"not null"`
	ProfilePicture *string `json:"profile_picture"`
	CoverPicture   *string `json:"cover_picture"`
}

// UserFollower is a directed follow edge: FollowerID follows UserID.
type UserFollower struct {
	UserID     string `json:"user_id" gorm:"primaryKey;column:user_id"`
	FollowerID string `json:"follower_id" gorm:"primaryKey;column:follower_id"`
}

// UserMovie is a user's personal watched/saved movie list entry.
type UserMovie struct {
	UserID  string `json:"user_id" gorm:"primaryKey;column:user_id"`
	MovieID int64  `json:"movie_id" gorm:"primaryKey;column:movie_id"`
}

func (User) TableName() string {
	return "users"
}

func (UserFollower) TableName() string {
	return "user_followers"
}

func (UserMovie) TableName() string {
	return "user_movies"
}
