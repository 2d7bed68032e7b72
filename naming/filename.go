package naming

import "regexp"

// Derived filename keys.
const (
	KeyName      = "f"
	KeySequence  = "r"
	KeyExtension = "e"
)

// filenamePattern splits "IMG_1234.JPG" into the stem through its last
// non-digit, the trailing digit run and the extension. Digits are any
// Unicode decimal digit; the extension is ASCII alphanumeric.
var filenamePattern = regexp.MustCompile(`^(.*\P{Nd})(\p{Nd}*)\.([a-zA-Z0-9]+)$`)

// FileVars is the structured form of the filename variables.
type FileVars struct {
	Name      string
	Sequence  string
	Extension string
}

// SplitFilename decomposes name. ok is false when name has no
// "<stem><digits>.<ext>" shape.
func SplitFilename(name string) (fv FileVars, ok bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return FileVars{}, false
	}
	return FileVars{Name: m[1], Sequence: m[2], Extension: m[3]}, true
}

// Vars returns f keyed by the short variable names.
func (f FileVars) Vars() Vars {
	return Vars{
		KeyName:      f.Name,
		KeySequence:  f.Sequence,
		KeyExtension: f.Extension,
	}
}

// DeriveFileVars returns f, r and e for name, or an empty set when name
// does not match.
func DeriveFileVars(name string) Vars {
	fv, ok := SplitFilename(name)
	if !ok {
		return Vars{}
	}
	return fv.Vars()
}
