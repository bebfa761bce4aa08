package validation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var imageExts = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}

func TestValidateOutputPath(t *testing.T) {
	// Create a temporary directory for testing
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
		setup   func() string
	}{
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:    "valid path in temp dir",
			wantErr: false,
			setup: func() string {
				return filepath.Join(tmpDir, "chart.png")
			},
		},
		{
			name:    "no extension",
			wantErr: false,
			setup: func() string {
				return filepath.Join(tmpDir, "chart")
			},
		},
		{
			name:    "upper case extension",
			wantErr: false,
			setup: func() string {
				return filepath.Join(tmpDir, "chart.JPG")
			},
		},
		{
			name:    "unsupported extension",
			wantErr: true,
			setup: func() string {
				return filepath.Join(tmpDir, "chart.svg")
			},
		},
		{
			name:    "path in non-existent directory",
			path:    "/nonexistent/directory/chart.png",
			wantErr: true,
		},
		{
			name:    "parent relative path",
			wantErr: false,
			setup: func() string {
				nested := filepath.Join(tmpDir, "nested", "dir")
				os.MkdirAll(nested, 0755)
				return filepath.Join(nested, "..", "chart.png")
			},
		},
		{
			name:    "output is a directory",
			wantErr: true,
			setup: func() string {
				dir := filepath.Join(tmpDir, "out.png")
				os.MkdirAll(dir, 0755)
				return dir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if tt.setup != nil {
				path = tt.setup()
			}

			err := ValidateOutputPath(path, imageExts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && tt.name != "path in non-existent directory" && !errors.Is(err, ErrInvalidPath) {
				t.Errorf("ValidateOutputPath() error = %v, want ErrInvalidPath", err)
			}
		})
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".chartkit_write_test") {
			t.Errorf("write test file left behind: %s", e.Name())
		}
	}
}

func TestValidateInputPath(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data.json")
	if err := os.WriteFile(file, []byte("[]"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty path", "", true},
		{"existing file", file, false},
		{"directory", tmpDir, true},
		{"missing file", filepath.Join(tmpDir, "missing.json"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDataPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"https url", "https://example.com/data.csv", false},
		{"http url", "HTTP://example.com/data.json", false},
		{"url without host", "https://", true},
		{"missing local file", filepath.Join(t.TempDir(), "nope.json"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDataPath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
