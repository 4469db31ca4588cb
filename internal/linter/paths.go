package linter

import (
	"path/filepath"
	"strings"

	"cpplint/internal/project"
	"cpplint/internal/regex"
)

var (
	flymakeHeader = regex.MustCompile(`_flymake\.h$`)
	flymakeDir    = regex.MustCompile(`/\.flymake/([^/]*)$`)
	nonIdentChar  = regex.MustCompile(`[^a-zA-Z0-9]`)
)

// repositoryName returns abs relative to its repository root, slash
// separated. Without a repository the file's directory is the root.
func (f *fileLinter) repositoryName(abs string) string {
	root := project.RepositoryRoot(f.l.fs, filepath.Dir(abs), f.opts.Repository)
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// headerGuardVariable derives the expected include guard, e.g.
// CHROME_BROWSER_UI_BROWSER_H_ for chrome/browser/ui/browser.h.
func (f *fileLinter) headerGuardVariable() string {
	name := filepath.ToSlash(f.abs)
	name, _ = flymakeHeader.ReplaceFirst(name, ".h")
	name, _ = flymakeDir.ReplaceFirst(name, "/${1}")
	name = strings.ReplaceAll(name, "C++", "cpp")
	name = strings.ReplaceAll(name, "c++", "cpp")

	fromRoot := f.fixupPathFromRoot(name, f.repositoryName(filepath.FromSlash(name)))
	guard, _ := nonIdentChar.ReplaceAll(fromRoot, "_")
	return strings.ToUpper(guard) + "_"
}

// fixupPathFromRoot strips --root from the repository relative path, or,
// failing that, from the absolute path. Without a match the repository
// relative path is kept.
func (f *fileLinter) fixupPathFromRoot(full, fromRepo string) string {
	root := f.opts.Root
	if root == "" {
		return fromRepo
	}
	if rest, ok := stripPathPrefix(splitPath(fromRepo), splitPath(filepath.ToSlash(root))); ok {
		return strings.Join(rest, "/")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fromRepo
	}
	if rest, ok := stripPathPrefix(splitPath(full), splitPath(filepath.ToSlash(absRoot))); ok {
		return strings.Join(rest, "/")
	}
	return fromRepo
}

// splitPath splits a slash path into its components; "." components and
// empty ones are dropped, a leading "/" is kept as its own component.
func splitPath(p string) []string {
	var out []string
	if strings.HasPrefix(p, "/") {
		out = append(out, "/")
	}
	for _, part := range strings.Split(p, "/") {
		if part == "" || part == "." {
			continue
		}
		out = append(out, part)
	}
	return out
}

// stripPathPrefix removes prefix from parts. The rest must not be empty.
func stripPathPrefix(parts, prefix []string) ([]string, bool) {
	if len(prefix) == 0 || len(parts) <= len(prefix) {
		return nil, false
	}
	for i, p := range prefix {
		if parts[i] != p {
			return nil, false
		}
	}
	return parts[len(prefix):], true
}
