package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

const MaxObjectSize = 20 * 1024 * 1024

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrForeignURL      = errors.New("url does not belong to this store")
)

// AllowedMimeTypes lists what may be stored as a portfolio image or message
// attachment.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// ObjectStore keeps binary objects addressed by key and exposes them by URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// Upload is a file handed in by a client.
type Upload struct {
	Filename string
	Data     []byte
}

// ObjectKey builds "{ownerID}/{unixMillis}.{ext}".
func ObjectKey(ownerID, filename, contentType string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		ext = mimeToExt(contentType)
	}
	return fmt.Sprintf("%s/%d.%s", ownerID, now.UnixMilli(), ext)
}

// Sniff validates the upload and returns its detected MIME type.
func Sniff(u Upload) (string, error) {
	if len(u.Data) == 0 {
		return "", ErrEmptyFile
	}
	if len(u.Data) > MaxObjectSize {
		return "", ErrFileTooLarge
	}
	mimeType := strings.Split(http.DetectContentType(u.Data), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return "", ErrInvalidMimeType
	}
	return mimeType, nil
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "application/pdf":
		return "pdf"
	default:
		return "bin"
	}
}
