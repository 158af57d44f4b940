package models

import "time"

// Movie is a write-once cached copy of TMDb metadata. MovieID matches the
// upstream id; rows are populated on first request and never refreshed.
type Movie struct {
	MovieID     int64      `json:"movie_id" gorm:"primaryKey;column:movie_id"`
	Title       string     `json:"title"`
	ReleaseDate *time.Time `json:"release_date"`
	Director    *string    `json:"director"`
	Poster      *string    `json:"poster"`
	Banner      *string    `json:"banner"`
	Language    string     `json:"language"`
	RunningTime string     `json:"running_time"`
	Overview    string     `json:"overview" gorm:"type:text"`
}

type Person struct {
	PersonID   int64  `json:"person_id" gorm:"primaryKey;column:person_id"`
	PersonName string `json:"person_name" gorm:"not null"`
}

type CastMember struct {
	MovieID  int64  `json:"movie_id" gorm:"primaryKey;column:movie_id"`
	PersonID int64  `json:"person_id" gorm:"primaryKey;column:person_id"`
	Role     string `json:"role" gorm:"not null"`

	Person Person `json:"-" gorm:"foreignKey:PersonID"`
}

type MovieGenre struct {
	MovieID int64  `json:"movie_id" gorm:"primaryKey;column:movie_id"`
	Genre   string `json:"genre" gorm:"primaryKey"`
}

type Studio struct {
	StudioID   int64  `json:"studio_id" gorm:"primaryKey;column:studio_id"`
	StudioName string `json:"studio_name" gorm:"not null"`
}

type MovieStudio struct {
	MovieID  int64 `json:"movie_id" gorm:"primaryKey;column:movie_id"`
	StudioID int64 `json:"studio_id" gorm:"primaryKey;column:studio_id"`

	Studio Studio `json:"-" gorm:"foreignKey:StudioID"`
}

func (Movie) TableName() string {
	return "movies"
}

func (Person) TableName() string {
	return "people"
}

func (CastMember) TableName() string {
	return "cast_members"
}

func (MovieGenre) TableName() string {
	return "movie_genres"
}

func (Studio) TableName() string {
	return "studios"
}

func (MovieStudio) TableName() string {
	return "movie_studios"
}
