package renderer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"
)

var errBadImage = errors.New("malformed encoded image")

// pixelsPerMetre converts dots per inch to the per-metre unit PNG and BMP use.
func pixelsPerMetre(dpi int) uint32 {
	return uint32(math.Round(float64(dpi) / 0.0254))
}

// stampDPI records dpi in the resolution fields of an encoded image.
func stampDPI(format Format, img []byte, dpi int) ([]byte, error) {
	switch format {
	case FormatPNG:
		return stampPNG(img, dpi)
	case FormatJPEG:
		return stampJPEG(img, dpi)
	case FormatTIFF:
		return img, stampTIFF(img, dpi)
	case FormatBMP:
		return img, stampBMP(img, dpi)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// stampPNG inserts a pHYs chunk right after IHDR.
func stampPNG(img []byte, dpi int) ([]byte, error) {
	const ihdrEnd = 8 + 4 + 4 + 13 + 4
	if len(img) < ihdrEnd || !bytes.Equal(img[12:16], []byte("IHDR")) {
		return nil, fmt.Errorf("%w: png without IHDR", errBadImage)
	}

	ppm := pixelsPerMetre(dpi)
	chunk := make([]byte, 0, 4+4+9+4)
	chunk = binary.BigEndian.AppendUint32(chunk, 9)
	chunk = append(chunk, "pHYs"...)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = append(chunk, 1) // unit: metre
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(img)+len(chunk))
	out = append(out, img[:ihdrEnd]...)
	out = append(out, chunk...)
	return append(out, img[ihdrEnd:]...), nil
}

// stampJPEG inserts a JFIF APP0 segment with the density in dots per inch
// after SOI. An existing APP0 segment is replaced.
func stampJPEG(img []byte, dpi int) ([]byte, error) {
	if len(img) < 4 || img[0] != 0xff || img[1] != 0xd8 {
		return nil, fmt.Errorf("%w: jpeg without SOI", errBadImage)
	}
	rest := img[2:]
	if rest[0] == 0xff && rest[1] == 0xe0 {
		if len(rest) < 4 {
			return nil, fmt.Errorf("%w: truncated APP0", errBadImage)
		}
		n := int(binary.BigEndian.Uint16(rest[2:4]))
		if len(rest) < 2+n {
			return nil, fmt.Errorf("%w: truncated APP0", errBadImage)
		}
		rest = rest[2+n:]
	}

	d := uint16(dpi)
	app0 := []byte{0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x01}
	app0 = binary.BigEndian.AppendUint16(app0, d)
	app0 = binary.BigEndian.AppendUint16(app0, d)
	app0 = append(app0, 0, 0)

	out := make([]byte, 0, len(img)+len(app0))
	out = append(out, img[:2]...)
	out = append(out, app0...)
	return append(out, rest...), nil
}

// stampTIFF rewrites the XResolution and YResolution rationals of the first
// IFD in place and sets ResolutionUnit to inches.
func stampTIFF(img []byte, dpi int) error {
	if len(img) < 8 {
		return fmt.Errorf("%w: short tiff header", errBadImage)
	}
	var order binary.ByteOrder
	switch string(img[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return fmt.Errorf("%w: tiff byte order", errBadImage)
	}

	ifd := int(order.Uint32(img[4:8]))
	if ifd+2 > len(img) {
		return fmt.Errorf("%w: tiff IFD offset", errBadImage)
	}
	entries := int(order.Uint16(img[ifd : ifd+2]))

	const (
		tagXResolution    = 282
		tagYResolution    = 283
		tagResolutionUnit = 296
		typeShort         = 3
		typeRational      = 5
		resPerInch        = 2
	)
	found := 0
	for i := 0; i < entries; i++ {
		e := ifd + 2 + 12*i
		if e+12 > len(img) {
			return fmt.Errorf("%w: truncated tiff IFD", errBadImage)
		}
		tag := order.Uint16(img[e : e+2])
		typ := order.Uint16(img[e+2 : e+4])
		switch {
		case (tag == tagXResolution || tag == tagYResolution) && typ == typeRational:
			off := int(order.Uint32(img[e+8 : e+12]))
			if off+8 > len(img) {
				return fmt.Errorf("%w: tiff resolution offset", errBadImage)
			}
			order.PutUint32(img[off:off+4], uint32(dpi))
			order.PutUint32(img[off+4:off+8], 1)
			found++
		case tag == tagResolutionUnit && typ == typeShort:
			order.PutUint16(img[e+8:e+10], resPerInch)
		}
	}
	if found != 2 {
		return fmt.Errorf("%w: tiff without resolution tags", errBadImage)
	}
	return nil
}

// stampBMP sets the horizontal and vertical pixels per metre of the DIB header.
func stampBMP(img []byte, dpi int) error {
	const xppm = 14 + 24
	if len(img) < xppm+8 || img[0] != 'B' || img[1] != 'M' {
		return fmt.Errorf("%w: bmp header", errBadImage)
	}
	ppm := pixelsPerMetre(dpi)
	binary.LittleEndian.PutUint32(img[xppm:xppm+4], ppm)
	binary.LittleEndian.PutUint32(img[xppm+4:xppm+8], ppm)
	return nil
}
