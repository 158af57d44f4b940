package tmdb

import "errors"

// ErrNotFound reports an id unknown to the upstream database.
var ErrNotFound = errors.New("tmdb: movie not found")
