// Package validation checks input and output paths before any chart work starts.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is wrapped by every path validation failure.
var ErrInvalidPath = errors.New("invalid path")

// ValidateOutputPath checks that outputPath has one of the allowed extensions
// and that its directory exists and is writable. A path without an extension is
// accepted when "" is among the allowed extensions or when allowed is empty.
func ValidateOutputPath(outputPath string, allowed []string) error {
	if outputPath == "" {
		return fmt.Errorf("%w: output path cannot be empty", ErrInvalidPath)
	}

	cleanPath := filepath.Clean(outputPath)
	if err := checkExtension(cleanPath, allowed); err != nil {
		return err
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	dir := filepath.Dir(absPath)
	dirInfo, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: output directory does not exist: %s", ErrInvalidPath, dir)
		}
		return fmt.Errorf("failed to access output directory: %w", err)
	}
	if !dirInfo.IsDir() {
		return fmt.Errorf("%w: output path parent is not a directory: %s", ErrInvalidPath, dir)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return fmt.Errorf("%w: output path is a directory: %s", ErrInvalidPath, absPath)
	}

	// Check if directory is writable by attempting to create a temp file
	f, err := os.CreateTemp(dir, ".chartkit_write_test")
	if err != nil {
		return fmt.Errorf("%w: output directory is not writable: %s: %v", ErrInvalidPath, dir, err)
	}
	f.Close()
	os.Remove(f.Name())

	return nil
}

func checkExtension(path string, allowed []string) error {
	if len(allowed) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported output extension %q (supported: %s)",
		ErrInvalidPath, ext, strings.Join(allowed, ", "))
}

// ValidateInputPath checks that inputPath names an existing regular file.
func ValidateInputPath(inputPath string) error {
	if inputPath == "" {
		return fmt.Errorf("%w: input path cannot be empty", ErrInvalidPath)
	}

	cleanPath := filepath.Clean(inputPath)
	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: input path does not exist: %s", ErrInvalidPath, cleanPath)
		}
		return fmt.Errorf("failed to access input path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: input path must be a file: %s", ErrInvalidPath, cleanPath)
	}
	return nil
}

// ValidateDataPath behaves like ValidateInputPath for local files and accepts
// http and https URLs without touching the network.
func ValidateDataPath(dataPath string) error {
	lower := strings.ToLower(dataPath)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := url.Parse(dataPath)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: invalid data URL: %s", ErrInvalidPath, dataPath)
		}
		return nil
	}
	return ValidateInputPath(dataPath)
}
