package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/maheshrc27/salidas/internal/transfer"
)

var (
	imageTypes = map[string]struct{}{
		"jpg": {}, "png": {}, "gif": {}, "webp": {},
	}
	videoTypes = map[string]struct{}{
		"mp4": {}, "mov": {}, "webm": {}, "mkv": {},
	}
)

func detectType(file transfer.File, allowed map[string]struct{}) (types.Type, error) {
	if len(file.Content) == 0 {
		return types.Unknown, fmt.Errorf("%w: %s is empty", ErrUnsupportedFile, file.Filename)
	}
	kind, err := filetype.Match(file.Content)
	if err != nil || kind == types.Unknown {
		return types.Unknown, fmt.Errorf("%w: %s", ErrUnsupportedFile, file.Filename)
	}
	if _, ok := allowed[kind.Extension]; !ok {
		return types.Unknown, fmt.Errorf("%w: %s is %s", ErrUnsupportedFile, file.Filename, kind.Extension)
	}
	return kind, nil
}

func randomID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return id, nil
}

// store uploads one file at the path produced by pathFor and returns its
// public URL.
func store(ctx context.Context, storage ObjectStorage, bucket Bucket, file transfer.File, allowed map[string]struct{}, pathFor func(id, ext string) string) (string, error) {
	kind, err := detectType(file, allowed)
	if err != nil {
		return "", err
	}

	id, err := randomID()
	if err != nil {
		return "", err
	}

	path := pathFor(id, kind.Extension)
	if err := storage.Upload(ctx, bucket, path, file.Content, kind.MIME.Value); err != nil {
		return "", fmt.Errorf("error uploading %s: %w", file.Filename, err)
	}

	return storage.PublicURL(bucket, path), nil
}
