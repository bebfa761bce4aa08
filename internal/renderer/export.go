package renderer

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Format is an output image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
)

var formatsByExt = map[string]Format{
	"":      FormatPNG,
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
}

// FormatFor returns the encoding for path's extension. A path without an
// extension is written as PNG.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formatsByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// SupportedExtensions lists the output file extensions Render accepts.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}
}

// figure is a main plot with an optional color bar panel on its right.
type figure struct {
	main     *plot.Plot
	colorBar *plot.Plot
}

func (f *figure) draw(c draw.Canvas, s Style) {
	if f.colorBar == nil {
		f.main.Draw(c)
		return
	}

	w := s.ColorBarWidth
	f.main.Draw(draw.Crop(c, 0, -w, 0, 0))

	width := c.Max.X - c.Min.X
	height := c.Max.Y - c.Min.Y
	f.colorBar.Draw(draw.Crop(c, width-w, 0, height*0.08, -height*0.12))
}

// export rasterizes fig at the style's size and DPI and writes it to path with
// the DPI recorded in the image metadata.
func export(ctx context.Context, fig *figure, path string, format Format, s Style) (err error) {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	c := vgimg.NewWith(
		vgimg.UseWH(s.Width, s.Height),
		vgimg.UseDPI(s.DPI),
		vgimg.UseBackgroundColor(s.Background),
	)
	fig.draw(draw.New(c), s)

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(&buf)
	case FormatJPEG:
		_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(&buf)
	case FormatTIFF:
		_, err = vgimg.TiffCanvas{Canvas: c}.WriteTo(&buf)
	case FormatBMP:
		err = bmp.Encode(&buf, c.Image())
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	img, err := stampDPI(format, buf.Bytes(), s.DPI)
	if err != nil {
		return fmt.Errorf("failed to record resolution: %w", err)
	}

	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := file.Write(img); err != nil {
		return fmt.Errorf("failed to write %s image: %w", format, err)
	}
	return nil
}
