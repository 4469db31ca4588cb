package includes

import (
	"path"
	"strings"

	"cpplint/internal/regex"
)

// Order selects how angle-bracket headers are split between C and other
// system headers.
type Order int

const (
	// OrderDefault treats every angle-bracket header that is not C++ as a
	// C system header.
	OrderDefault Order = iota
	// OrderStdCFirst only counts known C headers and glibc/kernel folders.
	OrderStdCFirst
)

// ParseOrder parses the --includeorder value.
func ParseOrder(s string) (Order, bool) {
	switch s {
	case "", "default":
		return OrderDefault, true
	case "standardcfirst":
		return OrderStdCFirst, true
	}
	return OrderDefault, false
}

func (o Order) String() string {
	if o == OrderStdCFirst {
		return "standardcfirst"
	}
	return "default"
}

// Classifier decides the HeaderType of an include relative to the file
// being checked.
type Classifier struct {
	HeaderExtensions    []string
	NonHeaderExtensions []string
	Order               Order
}

var (
	firstComponent = regex.MustCompile(`^[^-_.]+`)
	cHeaderFolders = regex.MustCompile(`(?:` + strings.Join(cStandardHeaderFolders, "|") + `)/.*\.h`)
	cppExtensions  = map[string]bool{".hh": true, ".hpp": true, ".hxx": true, ".h++": true}
	testSuffixes   = []string{"test", "regtest", "unittest"}
	headerSuffixes = []string{"inl", "imp", "internal"}
)

// DropCommonSuffixes strips test and internal-header suffixes together with
// the extension, so foo/foo_test.cc, foo/foo-inl.h and foo/foo.cc all map
// to foo/foo.
func (c Classifier) DropCommonSuffixes(file string) string {
	if s, ok := dropSuffix(file, testSuffixes, c.NonHeaderExtensions); ok {
		return s
	}
	if s, ok := dropSuffix(file, headerSuffixes, c.HeaderExtensions); ok {
		return s
	}
	return strings.TrimSuffix(file, path.Ext(file))
}

func dropSuffix(file string, suffixes, exts []string) (string, bool) {
	for _, ext := range exts {
		for _, s := range suffixes {
			suffix := s + "." + ext
			if len(file) > len(suffix) && strings.HasSuffix(file, suffix) {
				cut := len(file) - len(suffix) - 1
				if file[cut] == '-' || file[cut] == '_' {
					return file[:cut], true
				}
			}
		}
	}
	return "", false
}

// IsCppHeader reports whether include names a standard C++ header.
func IsCppHeader(include string) bool {
	return cppHeaders[include]
}

// IsCHeader reports whether include names a standard C or POSIX header.
func IsCHeader(include string) bool {
	return cHeaders[include]
}

// Classify returns the HeaderType of include as seen from fromRepo, the
// checked file's path relative to its repository.
func (c Classifier) Classify(fromRepo, include string, angle bool) HeaderType {
	isCppHeader := cppHeaders[include]
	isStdCHeader := c.Order == OrderDefault || cHeaders[include] || cHeaderFolders.MatchString(include)

	// Headers with C++ extensions are never C system headers.
	if angle && !cppExtensions[path.Ext(include)] {
		switch {
		case isCppHeader:
			return CppSysHeader
		case isStdCHeader:
			return CSysHeader
		default:
			return OtherSysHeader
		}
	}

	// Same basename after dropping suffixes, and the include lives next to
	// the file or in ../public.
	targetDir, targetBase := splitPath(c.DropCommonSuffixes(fromRepo))
	includeDir, includeBase := splitPath(c.DropCommonSuffixes(include))
	targetDirPub := path.Clean(targetDir + "/../public")
	if targetBase == includeBase && (includeDir == targetDir || includeDir == targetDirPub) {
		return LikelyMyHeader
	}

	// A shared first component means the file may implement the header.
	tm := firstComponent.Match(targetBase)
	im := firstComponent.Match(includeBase)
	if tm != nil && im != nil && tm.Group(0) == im.Group(0) {
		return PossibleMyHeader
	}
	return OtherHeader
}

// splitPath splits at the last slash without the trailing slash on dir.
func splitPath(p string) (dir, base string) {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "", p
	}
	dir = strings.TrimRight(p[:i], "/")
	if dir == "" {
		dir = "/"
	}
	return dir, p[i+1:]
}
