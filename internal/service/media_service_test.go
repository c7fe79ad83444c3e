package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/salidas/internal/transfer"
)

func TestUploadPhotosRequiresDoneEvent(t *testing.T) {
	f := newFixture()
	event := createEvent(t, f, "Cena")

	_, err := f.media.UploadPhotos(context.Background(), f.user, event.ID, []transfer.File{{Filename: "a.png", Content: pngBytes}})
	assert.ErrorIs(t, err, ErrEventNotDone)

	_, err = f.media.ListPhotos(context.Background(), event.ID)
	assert.ErrorIs(t, err, ErrEventNotDone)
}

func TestUploadPhotosSequentialAbort(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := createEvent(t, f, "Cena")
	_, err := f.events.ToggleStatus(ctx, event.ID)
	require.NoError(t, err)

	saved, err := f.media.UploadPhotos(ctx, f.user, event.ID, []transfer.File{
		{Filename: "a.png", Content: pngBytes},
		{Filename: "b.txt", Content: []byte("plain text")},
		{Filename: "c.png", Content: pngBytes},
	})

	assert.ErrorIs(t, err, ErrUnsupportedFile)
	require.Len(t, saved, 1)
	assert.Equal(t, event.ID, saved[0].EventID)

	photos, err := f.media.ListPhotos(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, photos, 1)
	// cover + first photo
	assert.Equal(t, 2, f.storage.count())

	path, ok := f.storage.PathFromURL(BucketAlbums, saved[0].PhotoURL)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(path, "albums/"))
}

func TestUploadPhotosNeedsFiles(t *testing.T) {
	f := newFixture()
	_, err := f.media.UploadPhotos(context.Background(), f.user, 1, nil)

	var verrs ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestUploadPhotosRowFailureCleansObject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := createEvent(t, f, "Cena")
	_, err := f.events.ToggleStatus(ctx, event.ID)
	require.NoError(t, err)
	f.db.fail["photos.Create"] = errBoom

	saved, err := f.media.UploadPhotos(ctx, f.user, event.ID, []transfer.File{{Filename: "a.png", Content: pngBytes}})
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, saved)
	assert.Equal(t, 1, f.storage.count())
}

func TestUploadVideoPathAndRemove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := createEvent(t, f, "Cena")
	_, err := f.events.ToggleStatus(ctx, event.ID)
	require.NoError(t, err)

	saved, err := f.media.UploadVideos(ctx, f.user, event.ID, []transfer.File{{Filename: "v.mp4", Content: mp4Bytes}})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	path, ok := f.storage.PathFromURL(BucketVideos, saved[0].VideoURL)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(path, "event-videos/"))
	assert.True(t, strings.HasSuffix(path, ".mp4"))

	require.NoError(t, f.media.RemoveVideo(ctx, saved[0].ID))
	assert.False(t, f.storage.has(BucketVideos, path))
	assert.ErrorIs(t, f.media.RemoveVideo(ctx, saved[0].ID), ErrVideoNotFound)
}

func TestUploadVideosRejectsImages(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := createEvent(t, f, "Cena")
	_, err := f.events.ToggleStatus(ctx, event.ID)
	require.NoError(t, err)

	_, err = f.media.UploadVideos(ctx, f.user, event.ID, []transfer.File{{Filename: "a.png", Content: pngBytes}})
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestRemovePhotoKeepsRowDeletionOnStorageFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := createEvent(t, f, "Cena")
	_, err := f.events.ToggleStatus(ctx, event.ID)
	require.NoError(t, err)
	saved, err := f.media.UploadPhotos(ctx, f.user, event.ID, []transfer.File{{Filename: "a.png", Content: pngBytes}})
	require.NoError(t, err)

	f.storage.failRemove = errBoom
	require.NoError(t, f.media.RemovePhoto(ctx, saved[0].ID))

	photos, err := f.media.ListPhotos(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)
}
