package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Format identifies how a data file is encoded.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf picks the data format from the extension of path. Paths without a
// recognized extension are read as JSON.
func FormatOf(path string) (Format, error) {
	if IsRemote(path) {
		if u, err := url.Parse(path); err == nil {
			path = u.Path
		}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return "", fmt.Errorf("unsupported data format %s (save the workbook as .xlsx)", ext)
	}
	return FormatJSON, nil
}

// IsRemote reports whether path is an http or https URL.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Loader reads tables from local files or HTTP endpoints.
type Loader struct {
	// Logger receives debug output and retry notices. A nil Logger discards.
	Logger hclog.Logger

	// RetryMax bounds the number of retries for remote data. Zero means 3.
	RetryMax int
}

// Load reads the data file at path and returns its table.
// It respects the provided context for cancellation.
func (l *Loader) Load(ctx context.Context, path string) (*Table, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var data []byte
	if IsRemote(path) {
		data, err = l.fetch(ctx, path)
		if err != nil {
			return nil, err
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read data file: %w", err)
		}
	}

	t, err := Parse(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	l.logger().Debug("loaded table", "path", path, "format", format, "rows", t.Len(), "columns", len(t.columns))
	return t, nil
}

// Parse decodes r in the given format.
func Parse(r io.Reader, format Format) (*Table, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseXLSX(r)
	case FormatJSON, "":
		return ParseJSON(r)
	}
	return nil, fmt.Errorf("unsupported data format %q", format)
}

// Load reads path with a default Loader.
func Load(ctx context.Context, path string) (*Table, error) {
	return (&Loader{}).Load(ctx, path)
}

func (l *Loader) logger() hclog.Logger {
	if l.Logger == nil {
		return hclog.NewNullLogger()
	}
	return l.Logger
}
