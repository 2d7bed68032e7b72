package naming

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingVariable means a placeholder names a variable that is not set.
	ErrMissingVariable = errors.New("missing variable")
	// ErrUnbalancedBrace means an unterminated "{" or a stray "}".
	ErrUnbalancedBrace = errors.New("unbalanced brace")
	// ErrEmptyPlaceholder means the pattern contains "{}".
	ErrEmptyPlaceholder = errors.New("empty placeholder")
)

// FormatError reports why a pattern could not be formatted.
type FormatError struct {
	Pattern string
	Key     string // set for ErrMissingVariable
	Offset  int    // byte offset of the offending placeholder or brace
	Err     error
}

func (e *FormatError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("format %q: %v %q", e.Pattern, e.Err, e.Key)
	}
	return fmt.Sprintf("format %q: %v at offset %d", e.Pattern, e.Err, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// FormatPattern substitutes every {name} in pattern with vars[name]. "{{"
// and "}}" produce literal braces. Substituted values are not scanned
// again. Any unresolved placeholder fails the whole call.
func FormatPattern(pattern string, vars Vars) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern))
	err := scanPattern(pattern, func(literal string) {
		b.WriteString(literal)
	}, func(name string, offset int) error {
		v, ok := vars[name]
		if !ok {
			return &FormatError{Pattern: pattern, Key: name, Offset: offset, Err: ErrMissingVariable}
		}
		b.WriteString(v)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Placeholders returns the variable names referenced by pattern in order of
// first appearance.
func Placeholders(pattern string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	err := scanPattern(pattern, func(string) {}, func(name string, _ int) error {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Missing returns the placeholders of pattern that vars does not define.
func Missing(pattern string, vars Vars) ([]string, error) {
	names, err := Placeholders(pattern)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, name := range names {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func scanPattern(pattern string, literal func(string), placeholder func(name string, offset int) error) error {
	start := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			literal(pattern[start:i])
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				literal("{")
				i++
				start = i + 1
				continue
			}
			end := strings.IndexAny(pattern[i+1:], "{}")
			if end < 0 || pattern[i+1+end] == '{' {
				return &FormatError{Pattern: pattern, Offset: i, Err: ErrUnbalancedBrace}
			}
			if end == 0 {
				return &FormatError{Pattern: pattern, Offset: i, Err: ErrEmptyPlaceholder}
			}
			if err := placeholder(pattern[i+1:i+1+end], i); err != nil {
				return err
			}
			i += end + 1
			start = i + 1
		case '}':
			literal(pattern[start:i])
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				literal("}")
				i++
				start = i + 1
				continue
			}
			return &FormatError{Pattern: pattern, Offset: i, Err: ErrUnbalancedBrace}
		}
	}
	literal(pattern[start:])
	return nil
}
