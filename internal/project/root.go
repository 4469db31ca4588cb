package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ManifestName is the project configuration file looked up by FindManifest.
const ManifestName = "cpplint.toml"

// vcsMarkers name the directories that mark a repository top level.
var vcsMarkers = []string{".git", ".hg", ".svn"}

func exists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %q: %w", path, err)
}

// FindManifest walks up from startDir to locate cpplint.toml.
func FindManifest(fs afero.Fs, startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		found, err := exists(fs, candidate)
		if err != nil {
			return "", false, err
		}
		if found {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// RepositoryRoot returns the directory file paths are made relative to when
// header guards are derived.
//
// An explicit repository wins when it contains dir. Otherwise an SVN
// checkout is followed up to its top, and failing that the nearest
// directory holding .git, .hg or .svn is used. When nothing is found dir
// itself is returned.
func RepositoryRoot(fs afero.Fs, dir, repository string) string {
	if repository != "" {
		repo, err := filepath.Abs(repository)
		if err == nil {
			for cur := dir; ; {
				if cur == repo {
					return cur
				}
				parent := filepath.Dir(cur)
				if parent == cur {
					break
				}
				cur = parent
			}
		}
	}

	if ok, _ := exists(fs, filepath.Join(dir, ".svn")); ok {
		root := dir
		for {
			parent := filepath.Dir(root)
			if parent == root {
				break
			}
			if ok, _ := exists(fs, filepath.Join(parent, ".svn")); !ok {
				break
			}
			root = parent
		}
		return root
	}

	for cur := dir; ; {
		for _, marker := range vcsMarkers {
			if ok, _ := exists(fs, filepath.Join(cur, marker)); ok {
				return cur
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return dir
}
