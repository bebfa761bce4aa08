package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/config"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/renderer"
)

type fakeLoader struct {
	table *dataset.Table
	err   error
	paths []string
}

func (f *fakeLoader) Load(_ context.Context, path string) (*dataset.Table, error) {
	f.paths = append(f.paths, path)
	return f.table, f.err
}

type fakeRenderer struct {
	called bool
	req    chart.Request
	opts   renderer.Options
	err    error
}

func (f *fakeRenderer) Render(_ context.Context, req chart.Request, _ *dataset.Table, _ string, opts renderer.Options) error {
	f.called = true
	f.req = req
	f.opts = opts
	return f.err
}

type allowAll struct{}

func (allowAll) ValidateOutputPath(string) error { return nil }
func (allowAll) ValidateDataPath(string) error   { return nil }

func tableOf(t *testing.T, doc string) *dataset.Table {
	t.Helper()
	table, err := dataset.ParseJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("failed to parse table: %v", err)
	}
	return table
}

func TestGenerate(t *testing.T) {
	loader := &fakeLoader{table: tableOf(t, `[{"x": "a"}, {"x": "b"}, {"x": "a"}]`)}
	rend := &fakeRenderer{}
	g := &Generator{Loader: loader, Renderer: rend, Validator: allowAll{}}

	res, err := g.Generate(context.Background(), config.Params{
		ChartType:  "pie",
		DataPath:   "data.json",
		OutputPath: "pie.png",
		XColumn:    "x",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.ChartType != chart.TypePie || res.RowCount != 3 || res.OutputPath != "pie.png" {
		t.Errorf("Generate() = %+v", res)
	}
	if len(loader.paths) != 1 || loader.paths[0] != "data.json" {
		t.Errorf("loader called with %v", loader.paths)
	}
	if rend.opts.Title != "Pie Chart" {
		t.Errorf("title = %q, want %q", rend.opts.Title, "Pie Chart")
	}
	if _, ok := rend.req.(chart.Pie); !ok {
		t.Errorf("request = %T, want chart.Pie", rend.req)
	}
}

func TestGenerateErrors(t *testing.T) {
	loadErr := errors.New("disk on fire")
	renderErr := errors.New("out of ink")

	tests := []struct {
		name       string
		params     config.Params
		loader     *fakeLoader
		renderer   *fakeRenderer
		wantErr    error
		wantRender bool
	}{
		{
			name:     "unknown chart type",
			params:   config.Params{ChartType: "radar", DataPath: "d.json", OutputPath: "o.png"},
			loader:   &fakeLoader{},
			renderer: &fakeRenderer{},
			wantErr:  chart.ErrUnknownChartType,
		},
		{
			name:     "missing column parameter",
			params:   config.Params{ChartType: "histogram", DataPath: "d.json", OutputPath: "o.png"},
			loader:   &fakeLoader{},
			renderer: &fakeRenderer{},
		},
		{
			name:     "load failure",
			params:   config.Params{ChartType: "heatmap", DataPath: "d.json", OutputPath: "o.png"},
			loader:   &fakeLoader{err: loadErr},
			renderer: &fakeRenderer{},
			wantErr:  loadErr,
		},
		{
			name:     "column absent from data",
			params:   config.Params{ChartType: "bar", DataPath: "d.json", OutputPath: "o.png", XColumn: "a", YColumn: "b", GroupColumn: "c"},
			loader:   &fakeLoader{table: tableOf(t, `[{"a": "x", "b": 1}]`)},
			renderer: &fakeRenderer{},
			wantErr:  dataset.ErrColumnNotFound,
		},
		{
			name:       "render failure",
			params:     config.Params{ChartType: "heatmap", DataPath: "d.json", OutputPath: "o.png"},
			loader:     &fakeLoader{table: tableOf(t, `[{"a": 1}]`)},
			renderer:   &fakeRenderer{err: renderErr},
			wantErr:    renderErr,
			wantRender: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Generator{Loader: tt.loader, Renderer: tt.renderer, Validator: allowAll{}}
			_, err := g.Generate(context.Background(), tt.params)
			if err == nil {
				t.Fatal("Generate() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.renderer.called != tt.wantRender {
				t.Errorf("renderer called = %v, want %v", tt.renderer.called, tt.wantRender)
			}
		})
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	dataPath := filepath.Join(tmpDir, "data.csv")
	if err := os.WriteFile(dataPath, []byte("region,sales\nnorth,10\nsouth,4\nnorth,6\n"), 0644); err != nil {
		t.Fatalf("failed to write data: %v", err)
	}

	style := renderer.DefaultStyle()
	style.DPI = 40
	g := New(nil)
	g.Style = &style

	tests := []struct {
		name    string
		params  config.Params
		wantErr bool
	}{
		{
			name: "bar chart",
			params: config.Params{
				ChartType: "bar", DataPath: dataPath, OutputPath: filepath.Join(tmpDir, "bar.png"),
				XColumn: "region", YColumn: "sales", Title: "Sales",
			},
		},
		{
			name: "missing data file",
			params: config.Params{
				ChartType: "pie", DataPath: filepath.Join(tmpDir, "missing.json"),
				OutputPath: filepath.Join(tmpDir, "pie.png"), XColumn: "region",
			},
			wantErr: true,
		},
		{
			name: "output directory missing",
			params: config.Params{
				ChartType: "pie", DataPath: dataPath,
				OutputPath: filepath.Join(tmpDir, "nope", "pie.png"), XColumn: "region",
			},
			wantErr: true,
		},
		{
			name: "unsupported output extension",
			params: config.Params{
				ChartType: "pie", DataPath: dataPath,
				OutputPath: filepath.Join(tmpDir, "pie.svg"), XColumn: "region",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.Generate(context.Background(), tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if res.RowCount != 3 {
				t.Errorf("RowCount = %d, want 3", res.RowCount)
			}
			if _, err := os.Stat(tt.params.OutputPath); err != nil {
				t.Errorf("output not written: %v", err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	if !NewLogger().IsWarn() || NewLogger().IsInfo() {
		t.Error("default level should be warn")
	}
	t.Setenv(LogLevelEnv, "debug")
	if !NewLogger().IsDebug() {
		t.Error("CHARTKIT_LOG_LEVEL=debug should enable debug logging")
	}
}
