package main

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "230908_185654.png")
	require.NoError(t, imaging.Save(imaging.New(400, 100, color.NRGBA{R: 200, A: 255}), src))

	thumbDir := filepath.Join(dir, "thumbs")
	thumbPath, err := processThumbnail(src, thumbDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(thumbDir, "230908_185654.png"), thumbPath)

	img, err := imaging.Open(thumbPath)
	require.NoError(t, err)
	assert.Equal(t, thumbnailSize, img.Bounds().Dx())
	assert.Equal(t, thumbnailSize/4, img.Bounds().Dy())
}

func TestProcessThumbnail_JPEGName(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "shot.tif")
	require.NoError(t, imaging.Save(imaging.New(50, 80, color.White), src))

	thumbPath, err := processThumbnail(src, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shot.jpg"), thumbPath)
	assert.FileExists(t, thumbPath)
}

func TestProcessThumbnail_SkipsNonImages(t *testing.T) {
	thumbPath, err := processThumbnail("clip.mov", t.TempDir())
	assert.NoError(t, err)
	assert.Empty(t, thumbPath)
}
