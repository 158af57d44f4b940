package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

type LocalStorage struct {
	basePath string
	client   *http.Client
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		client:   http.DefaultClient,
	}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, file *multipart.FileHeader, subpath string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	fileName := newFileName(file.Filename)
	if err := s.write(subpath, fileName, src); err != nil {
		return "", err
	}
	return fileName, nil
}

func (s *LocalStorage) Download(ctx context.Context, url, subpath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}

	fileName := newFileNameFromURL(url)
	if err := s.write(subpath, fileName, resp.Body); err != nil {
		return "", err
	}
	return fileName, nil
}

func (s *LocalStorage) write(subpath, fileName string, src io.Reader) error {
	dir := filepath.Join(s.basePath, subpath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}
