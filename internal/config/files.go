package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandGlobs expands transcript paths and glob patterns into a sorted unique
// list. Literal paths must exist; a glob that matches nothing is an error so
// a typo does not silently filter zero files.
func ExpandGlobs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input files provided")
	}

	files := make([]string, 0)
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		if hasGlobMeta(pattern) {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no matches for pattern %q", pattern)
			}
			for _, match := range matches {
				if _, ok := seen[match]; ok {
					continue
				}
				seen[match] = struct{}{}
				files = append(files, match)
			}
			continue
		}

		if _, err := os.Stat(pattern); err != nil {
			return nil, err
		}
		if _, ok := seen[pattern]; ok {
			continue
		}
		seen[pattern] = struct{}{}
		files = append(files, pattern)
	}

	sort.Strings(files)
	return files, nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// DeriveOutputPath returns the output path for an input transcript: the
// input's base name prefixed with "filtered_", placed in outputDir when set
// and next to the input otherwise.
func DeriveOutputPath(inputPath, outputDir string) string {
	name := "filtered_" + filepath.Base(inputPath)
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}

// WriteDocument writes a filtered transcript to path, creating missing parent
// directories. Unless overwrite is set, an existing file at path is refused
// rather than replaced.
func WriteDocument(path, document string, overwrite bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory for %s: %w", path, err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	if _, err := f.WriteString(document); err != nil {
		f.Close()
		return fmt.Errorf("writing output file %s: %w", path, err)
	}
	return f.Close()
}
