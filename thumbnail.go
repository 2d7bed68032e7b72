package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// thumbnailSize bounds the longer edge of a thumbnail.
const thumbnailSize = 200

// isImageFile reports whether imaging can decode the file.
func isImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".tif":
		return true
	}
	return false
}

// generateThumbnail scales srcPath to fit in maxSize x maxSize, honouring
// the EXIF orientation, and writes it to destPath.
func generateThumbnail(srcPath, destPath string, maxSize int) error {
	srcImg, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	thumbImg := imaging.Fit(srcImg, maxSize, maxSize, imaging.Lanczos)

	if err := ensureDirectory(filepath.Dir(destPath)); err != nil {
		return fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if strings.EqualFold(filepath.Ext(destPath), ".png") {
		err = imaging.Save(thumbImg, destPath)
	} else {
		err = imaging.Save(thumbImg, destPath, imaging.JPEGQuality(85))
	}
	if err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return nil
}

// processThumbnail writes a thumbnail of a renamed image into thumbDir,
// named after the image's new name. PNGs stay PNG, everything else becomes
// JPEG. It returns the thumbnail path, or "" for non-images.
func processThumbnail(imagePath, thumbDir string) (string, error) {
	if !isImageFile(imagePath) {
		return "", nil
	}

	base := filepath.Base(imagePath)
	ext := filepath.Ext(base)
	thumbExt := ".jpg"
	if strings.EqualFold(ext, ".png") {
		thumbExt = ".png"
	}
	thumbPath := filepath.Join(thumbDir, strings.TrimSuffix(base, ext)+thumbExt)

	if _, err := os.Stat(thumbPath); err == nil {
		return thumbPath, nil
	}

	if err := generateThumbnail(imagePath, thumbPath, thumbnailSize); err != nil {
		return "", fmt.Errorf("thumbnail generation failed for %s: %w", base, err)
	}
	return thumbPath, nil
}
