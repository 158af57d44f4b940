package models

// Response-shaped aggregates assembled per request; none of these are persisted.

// SimpleMovie is the trimmed movie reference attached to posts and search results.
type SimpleMovie struct {
	MovieID     int64   `json:"movie_id"`
	Title       string  `json:"title"`
	ReleaseYear string  `json:"release_year"`
	Poster      *string `json:"poster,omitempty"`
}

type CastCredit struct {
	PersonID int64  `json:"person_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// MovieDetails is the full detail view joined from the movie cache tables.
type MovieDetails struct {
	Movie   Movie        `json:"movie"`
	Genres  []string     `json:"genres"`
	Studios []string     `json:"studios"`
	Cast    []CastCredit `json:"cast"`
}

// PostDetails combines a post with its author, engagement counts, the
// viewer's like state and the movies the post references.
type PostDetails struct {
	Post           Post          `json:"post"`
	UserName       string        `json:"user_name"`
	ProfilePicture *string       `json:"profile_picture"`
	LikesCount     int64         `json:"likes_count"`
	CommentsCount  int64         `json:"comments_count"`
	YouLike        bool          `json:"you_like"`
	Movies         []SimpleMovie `json:"movies"`
}

type ReplyDetails struct {
	Reply          Reply   `json:"reply"`
	UserName       string  `json:"user_name"`
	ProfilePicture *string `json:"profile_picture"`
	LikesCount     int64   `json:"likes_count"`
	YouLike        bool    `json:"you_like"`
}

// UserProfile merges the identity-provider account with the local row and
// follow-graph counts.
type UserProfile struct {
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name"`
	ProfilePicture *string `json:"profile_picture"`
	CoverPicture   *string `json:"cover_picture"`
	FollowerCount  int64   `json:"follower_count"`
	FollowingCount int64   `json:"following_count"`
}

// FollowEntry is one edge endpoint joined with its display name.
type FollowEntry struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// LikeRef identifies a like's target for the user activity listing.
type LikeRef struct {
	PostID  *int64 `json:"post_id"`
	ReplyID *int64 `json:"reply_id"`
}
