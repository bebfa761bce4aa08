package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/ankek/terraform-provider-chartkit/internal/stats"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#667eea", color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}, false},
		{"f093fb", color.RGBA{R: 0xf0, G: 0x93, B: 0xfb, A: 0xff}, false},
		{"#fff", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseHex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDarkenColor(t *testing.T) {
	got := darkenColor(color.RGBA{R: 200, G: 100, B: 50, A: 255}, 50)
	want := color.RGBA{R: 100, G: 50, B: 25, A: 255}
	if got != want {
		t.Errorf("darkenColor() = %v, want %v", got, want)
	}
}

func TestTextColorOn(t *testing.T) {
	if textColorOn(color.Black) != color.White {
		t.Error("expected white text on black")
	}
	if textColorOn(color.White) != color.Black {
		t.Error("expected black text on white")
	}
}

func TestCategoryColors(t *testing.T) {
	s := DefaultStyle()
	colors := s.CategoryColors(3)
	if len(colors) != 3 {
		t.Fatalf("CategoryColors(3) returned %d colors", len(colors))
	}
	// Ends of the gradient are skipped.
	if colors[0] == viridis.Colors[0] || colors[2] == viridis.Colors[len(viridis.Colors)-1] {
		t.Error("CategoryColors should not use the gradient end points")
	}
	if s.SeriesColor(10) != s.SeriesColor(0) {
		t.Error("SeriesColor should cycle")
	}
}

func TestSplitByCodes(t *testing.T) {
	groups := splitByCodes([]int{0, 1, -1, 0, 1}, 3, []float64{1, 2, 3, math.NaN(), 5})
	if len(groups[0]) != 1 || len(groups[1]) != 2 || len(groups[2]) != 0 {
		t.Errorf("splitByCodes() = %v", groups)
	}
}

func TestPointsAt(t *testing.T) {
	xs := []float64{1, 2, math.NaN(), 4}
	ys := []float64{1, math.NaN(), 3, 4}
	if pts := pointsAt(xs, ys, nil); len(pts) != 2 {
		t.Errorf("pointsAt(all) = %v, want 2 points", pts)
	}
	if pts := pointsAt(xs, ys, []int{3}); len(pts) != 1 || pts[0].X != 4 {
		t.Errorf("pointsAt([3]) = %v", pts)
	}
}

func TestWhiskers(t *testing.T) {
	values := []float64{1, 2, 3, 4, 100}
	lo, hi := whiskers(values, 2, 4)
	if lo != 1 || hi != 4 {
		t.Errorf("whiskers() = %v, %v, want 1, 4", lo, hi)
	}
}

func TestReversed(t *testing.T) {
	got := reversed([]string{"a", "b", "c"})
	if got[0] != "c" || got[2] != "a" {
		t.Errorf("reversed() = %v", got)
	}
}

func TestGradientColors(t *testing.T) {
	s := DefaultStyle()
	colors := s.GradientColors(4)
	if len(colors) != 4 {
		t.Fatalf("GradientColors(4) returned %d colors", len(colors))
	}
	if colors[0] != viridis.Colors[0] {
		t.Errorf("first color = %v, want %v", colors[0], viridis.Colors[0])
	}
	if last := viridis.Colors[len(viridis.Colors)-1]; colors[3] != last {
		t.Errorf("last color = %v, want %v", colors[3], last)
	}
	if one := s.GradientColors(1); len(one) != 1 || one[0] != viridis.Colors[0] {
		t.Errorf("GradientColors(1) = %v", one)
	}
}

func TestPercentLabel(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{200.0 / 3, "66.7%"},
		{100.0 / 3, "33.3%"},
		{100, "100.0%"},
		{0.04, "0.0%"},
	}
	for _, tt := range tests {
		if got := (Slice{Percent: tt.percent}).PercentLabel(); got != tt.want {
			t.Errorf("PercentLabel(%v) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestPresentRuns(t *testing.T) {
	// Rows A..D, cols p, q. (B, p) and (D, p) are absent; q only has C.
	rowCodes := []int{0, 2, 2}
	colCodes := []int{0, 0, 1}
	pivot := stats.Pivot(rowCodes, 4, colCodes, 2, []float64{1, 2, 3})

	tests := []struct {
		col  int
		want [][2]int
	}{
		{0, [][2]int{{0, 1}, {2, 3}}},
		{1, [][2]int{{2, 3}}},
	}
	for _, tt := range tests {
		got := presentRuns(pivot, tt.col)
		if len(got) != len(tt.want) {
			t.Errorf("presentRuns(col %d) = %v, want %v", tt.col, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("presentRuns(col %d) = %v, want %v", tt.col, got, tt.want)
			}
		}
	}

	empty := stats.Pivot([]int{-1}, 2, []int{0}, 1, []float64{1})
	if got := presentRuns(empty, 0); len(got) != 0 {
		t.Errorf("presentRuns(empty) = %v, want none", got)
	}
}
