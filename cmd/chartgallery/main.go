// Command chartgallery renders one chart of every type from a synthetic
// dataset, for checking the renderer output by eye.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/renderer"
)

func main() {
	dir := flag.String("dir", "gallery", "directory the charts are written to")
	dpi := flag.Int("dpi", 100, "output resolution")
	rows := flag.Int("rows", 300, "rows in the synthetic dataset")
	flag.Parse()

	style := renderer.DefaultStyle()
	style.DPI = *dpi

	paths, err := renderGallery(context.Background(), *dir, sampleTable(*rows, 1), style)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

// galleryRequests returns one request per chart type over the sampleTable columns.
func galleryRequests() ([]chart.Request, error) {
	columns := map[chart.Type][3]string{
		chart.TypeBoxplot:   {"", "y", "group"},
		chart.TypeScatter:   {"x", "y", "group"},
		chart.TypeLine:      {"t", "y", "group"},
		chart.TypeBar:       {"group", "z", "segment"},
		chart.TypeHistogram: {"x", "", ""},
		chart.TypeViolin:    {"", "y", "group"},
		chart.TypeDensity:   {"x", "", "group"},
		chart.TypeHeatmap:   {"", "", ""},
		chart.TypeRidgeline: {"x", "y", ""},
		chart.TypePie:       {"segment", "", ""},
	}

	reqs := make([]chart.Request, 0, len(chart.Types))
	for _, t := range chart.Types {
		c := columns[t]
		req, err := chart.NewRequest(t, c[0], c[1], c[2])
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// renderGallery writes <dir>/<type>.png for every chart type and returns the
// written paths in chart type order.
func renderGallery(ctx context.Context, dir string, table *dataset.Table, style renderer.Style) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create gallery directory: %w", err)
	}

	reqs, err := galleryRequests()
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(reqs))
	for _, req := range reqs {
		t := req.ChartType()
		path := filepath.Join(dir, string(t)+".png")
		opts := renderer.Options{Title: t.DefaultTitle(), Style: style}
		if err := renderer.Render(ctx, req, table, path, opts); err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// sampleTable builds n rows of correlated normal data split into three groups
// and two segments. The same seed always yields the same table.
func sampleTable(n int, seed uint64) *dataset.Table {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	groups := []string{"A", "B", "C"}
	segments := []string{"north", "south"}

	keys := []string{"t", "x", "y", "z", "group", "segment"}
	b := dataset.NewBuilder()
	for i := 0; i < n; i++ {
		g := i % len(groups)
		x := noise.Rand() + float64(g)
		y := 2*x + 0.5*noise.Rand()
		z := 10 + 3*noise.Rand()
		b.AddRow(keys, []dataset.Value{
			dataset.Number(float64(i / len(groups))),
			dataset.Number(x),
			dataset.Number(y),
			dataset.Number(z),
			dataset.String(groups[g]),
			dataset.String(segments[(i/len(groups))%len(segments)]),
		})
	}
	return b.Table()
}
