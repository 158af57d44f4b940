package storage

import (
	"context"
	"mime/multipart"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Subpaths images are filed under; clients get them back prefixed with the
// configured serve location.
const (
	PostFiles  = "posts"
	UserFiles  = "users"
	MovieFiles = "movies"
)

// FileStorage saves binary blobs under a logical subpath and reports the
// generated filename. Implementations: local disk and S3.
type FileStorage interface {
	Upload(ctx context.Context, file *multipart.FileHeader, subpath string) (string, error)
	// Download fetches url and stores the body under subpath.
	Download(ctx context.Context, url, subpath string) (string, error)
}

// newFileName keeps the original extension but replaces the name with a uuid
// so uploads can never collide or traverse paths.
func newFileName(original string) string {
	return uuid.New().String() + filepath.Ext(original)
}

func newFileNameFromURL(url string) string {
	return uuid.New().String() + path.Ext(url)
}
