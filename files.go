package setpath

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IsMarkdown reports whether path names a Markdown document.
func IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// Accepts reports whether path is processed under the configuration.
func (c *Config) Accepts(path string) bool {
	if IsMarkdown(path) {
		return c.Input.MarkdownEnabled()
	}
	return c.HasExtension(strings.ToLower(filepath.Ext(path)))
}

// Excluded reports whether the base name of path matches an exclude pattern.
func (c *Config) Excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range c.Input.Exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// TransformFile runs the pipeline matching the file type of path.
func TransformFile(path string, src []byte, c *Config) (*Result, error) {
	opts := c.Options(path)
	switch {
	case IsMarkdown(path) && c.Input.MarkdownEnabled():
		return TransformMarkdown(string(src), opts)
	case c.Accepts(path):
		return Transform(string(src), opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

// CollectFiles expands paths into the list of files to process. Files given
// explicitly are always kept; directories are walked for accepted files,
// skipping excluded entries.
func CollectFiles(paths []string, c *Config) ([]string, error) {
	var files []string
	seen := map[string]bool{}
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && c.Excluded(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && c.Accepts(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoInputFiles
	}
	return files, nil
}
