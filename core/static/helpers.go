package static

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var errOutsideRoot = errors.New("invalid path: outside root directory")

// resolvePath joins requestPath onto root and ensures the result stays
// within root.
func resolvePath(root, requestPath string) (string, error) {
	if root == "" {
		root = "."
	}
	cleanRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve base dir: %w", err)
	}

	full := filepath.Join(cleanRoot, filepath.FromSlash(requestPath))
	if err := validatePathSecurity(cleanRoot, full); err != nil {
		return "", err
	}
	return full, nil
}

// validatePathSecurity ensures the requested path is within the root directory.
func validatePathSecurity(root, requestPath string) error {
	cleanPath := filepath.Clean(requestPath)
	cleanRoot := filepath.Clean(root)

	if !strings.HasPrefix(cleanPath, cleanRoot+string(filepath.Separator)) && cleanPath != cleanRoot {
		return errOutsideRoot
	}

	return nil
}

// validateStartup checks that a directory exists and is accessible at startup.
func validateStartup(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}
