package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"photoRenamer/naming"
)

// ErrNoMetadata is returned when a source file has neither a sidecar dump
// nor readable embedded EXIF.
var ErrNoMetadata = errors.New("no metadata")

// ReadMetadataFile reads a sidecar dump of `key: value` lines.
func ReadMetadataFile(path string) (naming.Vars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}
	return naming.ParseMetadata(string(data)), nil
}

// LoadRecord returns the metadata record for src. An explicit sidecar wins,
// then src+sidecarExt, then the EXIF block embedded in src itself.
func LoadRecord(src, exifFile, sidecarExt string) (naming.Vars, error) {
	if exifFile != "" {
		return ReadMetadataFile(exifFile)
	}

	if sidecarExt != "" {
		sidecar := src + sidecarExt
		if _, err := os.Stat(sidecar); err == nil {
			logrus.WithFields(logrus.Fields{"file": src, "sidecar": sidecar}).Debug("using sidecar metadata")
			return ReadMetadataFile(sidecar)
		}
	}

	if !isImageExt(strings.ToLower(filepath.Ext(src))) {
		return nil, fmt.Errorf("%w for %s: no sidecar and not an image", ErrNoMetadata, src)
	}
	record, err := ExtractExif(src)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrNoMetadata, src, err)
	}
	logrus.WithField("file", src).Debug("using embedded exif")
	return record, nil
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".tif", ".tiff", ".heic", ".heif", ".nef", ".cr2", ".arw", ".dng":
		return true
	default:
		return false
	}
}
