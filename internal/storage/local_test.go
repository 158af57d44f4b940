package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, fieldName, fileName, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File[fieldName][0]
}

func TestLocalUploadGeneratesUUIDName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	file := multipartFile(t, "image", "selfie.png", "png-bytes")

	name, err := store.Upload(context.Background(), file, UserFiles)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".png"))
	_, err = uuid.Parse(strings.TrimSuffix(name, ".png"))
	assert.NoError(t, err, "name should be a uuid plus the original extension")

	saved, err := os.ReadFile(filepath.Join(dir, UserFiles, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(saved))
}

func TestLocalUploadsNeverCollide(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	a, err := store.Upload(context.Background(), multipartFile(t, "image", "same.jpg", "one"), PostFiles)
	require.NoError(t, err)
	b, err := store.Upload(context.Background(), multipartFile(t, "image", "same.jpg", "two"), PostFiles)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestLocalDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("poster-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	name, err := store.Download(context.Background(), srv.URL+"/poster.jpg", MovieFiles)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	saved, err := os.ReadFile(filepath.Join(dir, MovieFiles, name))
	require.NoError(t, err)
	assert.Equal(t, "poster-bytes", string(saved))
}

func TestLocalDownloadNon200Fails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Download(context.Background(), srv.URL+"/gone.jpg", MovieFiles)
	assert.Error(t, err)
}
