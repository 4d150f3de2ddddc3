package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoCorpusFiles is returned when a root names no corpus file.
var ErrNoCorpusFiles = errors.New("no corpus files found")

// CorpusFSAdapter expands command-line roots into corpus file paths.
//
// A root is a file, a directory (its own corpus files only) or a directory
// followed by "/..." (every corpus file below it).
type CorpusFSAdapter interface {
	Find(roots []string) ([]string, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalCorpusFSAdapter finds corpus files on the local filesystem.
type LocalCorpusFSAdapter struct{}

// NewLocalCorpusFSAdapter constructs a LocalCorpusFSAdapter.
func NewLocalCorpusFSAdapter() *LocalCorpusFSAdapter {
	return &LocalCorpusFSAdapter{}
}

// Find returns the corpus files named by roots in argument order, each path
// once. Explicit files are kept whatever their extension; directories
// contribute their .yaml and .yml files in lexical order.
func (a *LocalCorpusFSAdapter) Find(roots []string) ([]string, error) {
	seen := make(map[string]struct{})

	var files []string

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(root)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(rootPath)
		if err != nil {
			return nil, fmt.Errorf("failed to find corpus %s: %w", root, err)
		}

		if !info.IsDir() {
			add(rootPath)
			continue
		}

		before := len(files)

		err = a.Walk(rootPath, recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() && isCorpusFile(path) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}

		if len(files) == before {
			return nil, fmt.Errorf("%w in %s", ErrNoCorpusFiles, root)
		}
	}

	return files, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalCorpusFSAdapter) Walk(root string, recursive bool, fn FilepathWalkFunc) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != root && (!recursive || strings.HasPrefix(info.Name(), ".")) {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

func isCorpusFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if trimmed, ok := strings.CutSuffix(rootStr, "/..."); ok {
		return trimmed, true
	}

	return rootStr, false
}
