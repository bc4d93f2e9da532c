package texture

import "fmt"

// TGA image type constants.
const (
	tgaTypeUncompressed = 2  // uncompressed true-color
	tgaTypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes a TGA file into an RGB8 map. Supports uncompressed
// true-color (type 2) and RLE compressed (type 10) images at 24 or 32 bits
// per pixel, which covers the texture and normal/specular map files the
// viewer loads. Alpha is dropped.
func DecodeTGA(data []byte) (*Map, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != tgaTypeUncompressed && imageType != tgaTypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]

	m, err := NewMap(width, height)
	if err != nil {
		return nil, err
	}

	bytesPerPixel := bpp / 8
	// Bit 5 of the descriptor means rows are stored top-to-bottom.
	topToBottom := (descriptor & 0x20) != 0

	if imageType == tgaTypeUncompressed {
		if len(pixelData) < width*height*bytesPerPixel {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for y := 0; y < height; y++ {
			destY := y
			if !topToBottom {
				destY = height - 1 - y
			}
			for x := 0; x < width; x++ {
				i := (y*width + x) * bytesPerPixel
				// TGA stores BGR(A).
				m.Set(x, destY, pixelData[i+2], pixelData[i+1], pixelData[i])
			}
		}
		return m, nil
	}

	if err := decodeTGARLE(m, pixelData, width, height, bytesPerPixel, topToBottom); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeTGARLE decodes RLE-compressed pixel data into the map.
func decodeTGARLE(m *Map, pixelData []byte, width, height, bytesPerPixel int, topToBottom bool) error {
	pixelCount := width * height
	pixelIdx := 0
	dataIdx := 0

	put := func(r, g, b uint8) {
		x := pixelIdx % width
		y := pixelIdx / width
		if !topToBottom {
			y = height - 1 - y
		}
		m.Set(x, y, r, g, b)
		pixelIdx++
	}

	for pixelIdx < pixelCount && dataIdx < len(pixelData) {
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet: one pixel repeated count times.
			if dataIdx+bytesPerPixel > len(pixelData) {
				return fmt.Errorf("TGA RLE packet truncated")
			}
			b, g, r := pixelData[dataIdx], pixelData[dataIdx+1], pixelData[dataIdx+2]
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(r, g, b)
			}
		} else {
			// Raw packet: count literal pixels.
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				if dataIdx+bytesPerPixel > len(pixelData) {
					return fmt.Errorf("TGA raw packet truncated")
				}
				b, g, r := pixelData[dataIdx], pixelData[dataIdx+1], pixelData[dataIdx+2]
				dataIdx += bytesPerPixel
				put(r, g, b)
			}
		}
	}

	if pixelIdx < pixelCount {
		return fmt.Errorf("TGA RLE data ends after %d of %d pixels", pixelIdx, pixelCount)
	}
	return nil
}
