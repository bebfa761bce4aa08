package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr, hclog.NewNullLogger())
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestNoParamsFile(t *testing.T) {
	code, stdout, stderr := run(t)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if strings.TrimSpace(stderr) != "No parameters file provided!" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRenderChart(t *testing.T) {
	if testing.Short() {
		t.Skip("renders a full-size image")
	}
	dir := t.TempDir()
	data := writeFile(t, dir, "data.json", `[{"v": 1}, {"v": 2}, {"v": 2}, {"v": 3}, {"v": 5}]`)
	out := filepath.Join(dir, "hist.png")

	params, err := json.Marshal(map[string]string{
		"chartType":  "histogram",
		"dataPath":   data,
		"outputPath": out,
		"xColumn":    "v",
	})
	if err != nil {
		t.Fatal(err)
	}
	paramsPath := writeFile(t, dir, "params.json", string(params))

	code, stdout, stderr := run(t, paramsPath)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if want := "Chart created successfully: " + out + "\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty output file, err = %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.json", `[{"v": 1}]`)

	tests := []struct {
		name    string
		params  string
		wantErr string
	}{
		{
			name:    "missing params file",
			params:  "",
			wantErr: "failed to read parameters file",
		},
		{
			name:    "malformed params",
			params:  `{"chartType": `,
			wantErr: "failed to parse parameters file",
		},
		{
			name:    "unknown chart type",
			params:  `{"chartType": "radar", "dataPath": "` + data + `", "outputPath": "` + filepath.Join(dir, "x.png") + `"}`,
			wantErr: "unknown chart type",
		},
		{
			name:    "missing column",
			params:  `{"chartType": "pie", "dataPath": "` + data + `", "outputPath": "` + filepath.Join(dir, "x.png") + `", "xColumn": "nope"}`,
			wantErr: "nope",
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "absent.json")
			if tt.params != "" {
				path = writeFile(t, dir, "params"+string(rune('a'+i))+".json", tt.params)
			}

			code, stdout, stderr := run(t, path)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if stdout != "" {
				t.Errorf("unexpected stdout: %q", stdout)
			}
			if !strings.HasPrefix(stderr, "Error: ") || !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want Error: ...%s", stderr, tt.wantErr)
			}
		})
	}
}

func TestTooManyArgs(t *testing.T) {
	code, _, stderr := run(t, "a.json", "b.json")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr, "Error: ") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "data.csv", "name,score\nann,3\nbob,\n")

	code, stdout, stderr := run(t, "convert", csvPath)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	want := `[{"name":"ann","score":3},{"name":"bob","score":null}]` + "\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	out := filepath.Join(dir, "data.json")
	code, stdout, stderr = run(t, "convert", csvPath, "-o", out, "--pretty")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Converted 2 rows") {
		t.Errorf("stdout = %q", stdout)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(got, &rows); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(rows) != 2 || rows[0]["name"] != "ann" {
		t.Errorf("rows = %v", rows)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run(t, "version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "chartkit dev\n" {
		t.Errorf("stdout = %q", stdout)
	}
}
