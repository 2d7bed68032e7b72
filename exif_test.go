package main

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractExif_NoExifBlock(t *testing.T) {
	src := filepath.Join(t.TempDir(), "plain.jpg")
	require.NoError(t, imaging.Save(imaging.New(8, 8, color.Black), src))

	record, err := ExtractExif(src)
	assert.Error(t, err)
	assert.Nil(t, record)
}

func TestExtractExif_MissingFile(t *testing.T) {
	_, err := ExtractExif(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestIsImageExt(t *testing.T) {
	assert.True(t, isImageExt(".jpg"))
	assert.True(t, isImageExt(".nef"))
	assert.False(t, isImageExt(".mov"))
	assert.False(t, isImageExt(".JPG"))
}
