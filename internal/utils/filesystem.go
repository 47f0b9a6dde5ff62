package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	filepathx "github.com/yargevad/filepathx"
)

func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func hasGlobMeta(p string) bool {
	return strings.ContainsAny(p, "*?[")
}

// ExpandDocumentArgs turns command-line arguments into a list of files.
// Globs may use ** to cross directories, a directory expands to every .md
// file beneath it, and anything else is taken as a literal path. Order is
// preserved and duplicates are dropped.
func ExpandDocumentArgs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}

	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		pattern := ""
		switch {
		case hasGlobMeta(arg):
			pattern = arg
		case DirectoryExists(arg):
			pattern = filepath.Join(arg, "**", "*.md")
		default:
			add(arg)
			continue
		}

		matches, err := filepathx.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
		}
		files := matches[:0]
		for _, m := range matches {
			if !DirectoryExists(m) {
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		for _, m := range files {
			add(m)
		}
	}
	return out, nil
}
