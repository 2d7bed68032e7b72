package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"photoRenamer/naming"
)

// exifTimeLayout is how EXIF (and exiftool) print timestamps.
const exifTimeLayout = "2006:01:02 15:04:05"

// exifStringFields are copied verbatim, keyed by their exiftool tag name.
var exifStringFields = map[string]exif.FieldName{
	"Make":             exif.Make,
	"Model":            exif.Model,
	"DateTimeOriginal": exif.DateTimeOriginal,
	"Software":         exif.Software,
	"Artist":           exif.Artist,
}

func init() {
	// Register manufacturer-specific note parsers so some vendor fields decode correctly.
	exif.RegisterParsers(mknote.All...)
}

// ExtractExif reads the EXIF block embedded in an image and returns it as a
// metadata record using exiftool tag names, so that it can stand in for a
// sidecar dump. FileName is always set to the base name of path.
func ExtractExif(path string) (naming.Vars, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode exif %s: %w", path, err)
	}

	record := naming.Vars{
		naming.FieldFileName: filepath.Base(path),
	}
	for name, field := range exifStringFields {
		if s, ok := exifString(x, field); ok {
			record[name] = s
		}
	}

	// CreateDate is DateTimeDigitized in EXIF terms.
	if s, ok := exifString(x, exif.DateTimeDigitized); ok {
		record[naming.FieldCreateDate] = s
	} else if s, ok := record["DateTimeOriginal"]; ok {
		record[naming.FieldCreateDate] = s
	} else if t, err := x.DateTime(); err == nil {
		record[naming.FieldCreateDate] = t.Format(exifTimeLayout)
	}

	if tag, err := x.Get(exif.Orientation); err == nil {
		if i, err2 := tag.Int(0); err2 == nil {
			record["Orientation"] = strconv.Itoa(i)
		}
	}

	if lat, lon, err := x.LatLong(); err == nil {
		record["GPSLatitude"] = strconv.FormatFloat(lat, 'f', 6, 64)
		record["GPSLongitude"] = strconv.FormatFloat(lon, 'f', 6, 64)
	}

	return record, nil
}

func exifString(x *exif.Exif, field exif.FieldName) (string, bool) {
	tag, err := x.Get(field)
	if err != nil {
		return "", false
	}
	s, err := tag.StringVal()
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}
