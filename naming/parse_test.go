package naming

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMetadata(t *testing.T) {
	text := strings.Join([]string{
		"---- ExifTool ----",
		"FileName        : IMG_9876.JPG",
		"CreateDate      : 2023:09:08 18:56:54",
		"",
		"Model: iPhone 14",
		"Make:Apple",
	}, "\n")

	got := ParseMetadata(text)

	assert.Equal(t, Vars{
		"FileName":   "IMG_9876.JPG",
		"CreateDate": "2023:09:08 18:56:54",
		"Model":      "iPhone 14",
		"Make":       "Apple",
	}, got)
}

func TestParseMetadata_LastDuplicateWins(t *testing.T) {
	got := ParseMetadata("Model: first\nModel: second\n")
	assert.Equal(t, Vars{"Model": "second"}, got)
}

func TestParseMetadata_CRLF(t *testing.T) {
	got := ParseMetadata("Make: Canon\r\nModel: EOS R5\r\n")
	assert.Equal(t, Vars{"Make": "Canon", "Model": "EOS R5"}, got)
}

func TestParseMetadata_NoColonLinesDropped(t *testing.T) {
	got := ParseMetadata("header line\nno separator here\n   \n")
	assert.Empty(t, got)
}

func TestParseMetadata_OneEntryPerLine(t *testing.T) {
	lines := []string{"A: 1", " B :2", "C:  three: with colon ", "Date Time: 12:00:00"}
	got := ParseMetadata(strings.Join(lines, "\n"))

	assert.Len(t, got, len(lines))
	assert.Equal(t, "three: with colon", got["C"])
	assert.Equal(t, "12:00:00", got["Date Time"])
}

func TestParseMetadata_RoundTrip(t *testing.T) {
	first := ParseMetadata("junk\nA: 1\nB: two words\nC: 2023:01:01 00:00:00\n\n")

	keys := make([]string, 0, len(first))
	for k := range first {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, first[k])
	}

	assert.Equal(t, first, ParseMetadata(b.String()))
}
