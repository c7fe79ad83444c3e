package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Bucket string

const (
	BucketCovers  Bucket = "covers"
	BucketAlbums  Bucket = "albums"
	BucketAvatars Bucket = "avatars"
	BucketVideos  Bucket = "videos"
)

// ObjectStorage is the namespaced file store behind covers, albums, avatars
// and videos.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket Bucket, path string, body []byte, contentType string) error
	PublicURL(bucket Bucket, path string) string
	PathFromURL(bucket Bucket, url string) (string, bool)
	Remove(ctx context.Context, bucket Bucket, paths []string) error
	List(ctx context.Context, bucket Bucket, prefix string) ([]StoredObject, error)
}

// StoredObject is a listed file and when it was last written.
type StoredObject struct {
	Path         string
	LastModified time.Time
}

func CoverPath(randomID, ext string) string {
	return fmt.Sprintf("covers/%s.%s", randomID, ext)
}

func AlbumPath(eventID int64, randomID, ext string) string {
	return fmt.Sprintf("albums/%d/%s.%s", eventID, randomID, ext)
}

func AvatarPath(userID uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/avatar.%s", userID, ext)
}

func VideoPath(eventID int64, randomID, ext string) string {
	return fmt.Sprintf("event-videos/%d/%s.%s", eventID, randomID, ext)
}

func publicURL(base string, bucket Bucket, path string) string {
	return strings.TrimRight(base, "/") + "/" + string(bucket) + "/" + path
}

// pathFromURL recovers the object path of a URL produced by publicURL. Any
// other shape, such as an externally supplied link, is reported as not found.
func pathFromURL(base string, bucket Bucket, url string) (string, bool) {
	if base == "" || url == "" {
		return "", false
	}
	prefix := publicURL(base, bucket, "")
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	path := strings.TrimPrefix(url, prefix)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "", false
	}
	return path, true
}
