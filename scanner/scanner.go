package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileInfo describes a template found in the scan directory.
type FileInfo struct {
	Path   string
	Output string
	Size   int64
}

// Scanner lists the templates of a single directory. It does not recurse.
type Scanner struct {
	rootDir  string
	suffix   string
	excludes []string
}

// New returns a scanner for templates in rootDir whose names end with suffix.
// Names matching any of the doublestar exclude patterns are skipped.
func New(rootDir, suffix string, excludes ...string) *Scanner {
	return &Scanner{
		rootDir:  rootDir,
		suffix:   suffix,
		excludes: excludes,
	}
}

// Scan returns the templates in name order.
func (s *Scanner) Scan() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !s.isTargetFile(entry.Name()) {
			continue
		}
		path := filepath.Join(s.rootDir, entry.Name())
		// Stat follows symlinks: a link to a template is kept, a dangling
		// link or a link to anything but a regular file is not.
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, FileInfo{
			Path:   path,
			Output: OutputPath(path, s.suffix),
			Size:   info.Size(),
		})
	}
	return files, nil
}

// IsTemplate reports whether name would be picked up by the scanner.
func (s *Scanner) IsTemplate(name string) bool {
	return s.isTargetFile(filepath.Base(name))
}

func (s *Scanner) isTargetFile(name string) bool {
	// a file named exactly like the suffix would produce an empty output name
	if len(name) <= len(s.suffix) || !strings.HasSuffix(name, s.suffix) {
		return false
	}
	for _, pattern := range s.excludes {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return false
		}
	}
	return true
}

// OutputPath removes exactly len(suffix) bytes from the end of path.
func OutputPath(path, suffix string) string {
	return path[:len(path)-len(suffix)]
}
