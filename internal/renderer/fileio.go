package renderer

import (
	"fmt"
	"os"
)

// createFile creates a new file for writing
func createFile(path string) (*os.File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	return file, nil
}
