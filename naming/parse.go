package naming

import "strings"

// ParseMetadata reads `key: value` lines into a Vars record. The first colon
// splits the line, so values such as timestamps keep their own colons.
// Lines without a colon are dropped and a repeated key keeps its last value.
func ParseMetadata(text string) Vars {
	vars := make(Vars)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := splitMetadataLine(line)
		if !ok {
			continue
		}
		vars[key] = value
	}
	return vars
}

func splitMetadataLine(line string) (string, string, bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}
