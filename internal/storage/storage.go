package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage keeps uploaded post media and avatars.
type Storage interface {
	Upload(ctx context.Context, folder, ownerID, fileName string, file io.Reader, size int64) (objectName string, url string, err error)
	Delete(ctx context.Context, objectName string) error
}

// ObjectName lays objects out as <folder>/<owner>/<yyyy>/<mm>/<uuid><ext>.
func ObjectName(folder, ownerID, fileName string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d/%02d/%s%s",
		folder,
		ownerID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		extension(fileName))
}

func extension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return ".jpg"
	}
	return ext
}

func contentType(fileName string) string {
	ct := mime.TypeByExtension(extension(fileName))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

// Placeholder stores nothing and hands back a stock image URL.
type Placeholder struct{}

func NewPlaceholder() *Placeholder { return &Placeholder{} }

func (Placeholder) Upload(ctx context.Context, folder, ownerID, fileName string, file io.Reader, size int64) (string, string, error) {
	seed := uuid.New().String()
	return "", fmt.Sprintf("https://picsum.photos/seed/%s/800/600", seed), nil
}

func (Placeholder) Delete(ctx context.Context, objectName string) error { return nil }
