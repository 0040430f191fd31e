// Package naming derives the identifiers a scaffolding template needs from a
// user-supplied file path or feature name. Every function here is pure and
// safe for concurrent use.
package naming

import "strings"

// Separator is the path separator used to split and rejoin answers.
const Separator = "/"

// CaseConvert selects how IdentifierName is derived from BaseName.
type CaseConvert int

const (
	// CaseNone uses BaseName unchanged.
	CaseNone CaseConvert = iota
	// CasePascal converts a snake_case BaseName to PascalCase.
	CasePascal
)

// String returns the flag spelling of the conversion.
func (c CaseConvert) String() string {
	switch c {
	case CaseNone:
		return "none"
	case CasePascal:
		return "pascal"
	default:
		return "unknown"
	}
}

// Extension sets used by the built-in generators.
var (
	TSExtensions     = []string{".tsx", ".ts"}
	PythonExtensions = []string{".py"}
)

// DerivedName holds the identifiers derived from one path answer.
type DerivedName struct {
	BaseName       string
	Directory      string
	IdentifierName string
}

// Resolve splits rawPath on "/" and derives the base name, directory and
// identifier. The longest suffix in stripExtensions that matches the last
// segment is removed. Resolve never fails: an empty input or a trailing
// separator yields an empty BaseName, which callers must reject themselves.
func Resolve(rawPath string, stripExtensions []string, convert CaseConvert) DerivedName {
	segments := strings.Split(rawPath, Separator)
	last := segments[len(segments)-1]

	d := DerivedName{
		BaseName:  stripLongestSuffix(last, stripExtensions),
		Directory: strings.Join(segments[:len(segments)-1], Separator),
	}

	switch convert {
	case CasePascal:
		d.IdentifierName = PascalCase(d.BaseName)
	default:
		d.IdentifierName = d.BaseName
	}
	return d
}

// stripLongestSuffix removes the longest suffix of s found in suffixes.
func stripLongestSuffix(s string, suffixes []string) string {
	best := ""
	for _, suf := range suffixes {
		if len(suf) > len(best) && strings.HasSuffix(s, suf) {
			best = suf
		}
	}
	return s[:len(s)-len(best)]
}

// Field keys exposed to template engines. Each value is published under a
// long and a short key.
const (
	KeyBaseName       = "baseName"
	KeyName           = "name"
	KeyDirectory      = "directory"
	KeyDir            = "dir"
	KeyIdentifierName = "identifierName"
	KeyClassName      = "className"
)

// Fields returns the flat mapping consumed by template engines.
func (d DerivedName) Fields() map[string]string {
	return map[string]string{
		KeyBaseName:       d.BaseName,
		KeyName:           d.BaseName,
		KeyDirectory:      d.Directory,
		KeyDir:            d.Directory,
		KeyIdentifierName: d.IdentifierName,
		KeyClassName:      d.IdentifierName,
	}
}
