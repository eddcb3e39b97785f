// Package imaging decodes uploaded payloads into engine-ready rasters.
package imaging

import (
	"bytes"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/gen2brain/go-fitz"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/glyphlab/ocrserve/internal/domain"
)

var pdfMagic = []byte("%PDF-")

// passthrough lists encodings the recognition engine reads natively.
// Anything else is re-encoded to PNG during decode.
var passthrough = map[string]bool{
	"png":  true,
	"jpeg": true,
	"tiff": true,
	"bmp":  true,
}

// Decode turns uploaded bytes into a raster ready for recognition.
// Image payloads are validated against the registered codecs; PDF
// payloads are rasterized from their first page.
func Decode(data []byte) (domain.Raster, error) {
	if len(data) == 0 {
		return domain.Raster{}, domain.DecodeFault("empty image payload", nil)
	}

	if bytes.HasPrefix(data, pdfMagic) {
		return decodePDF(data)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.Raster{}, domain.DecodeFault("unsupported or corrupt image payload", err)
	}

	bounds := img.Bounds()
	raster := domain.Raster{
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	if passthrough[format] {
		raster.Data = data
		return raster, nil
	}

	encoded, err := encodePNG(img)
	if err != nil {
		return domain.Raster{}, domain.DecodeFault("failed to re-encode image", err)
	}
	raster.Data = encoded
	return raster, nil
}

// decodePDF rasterizes the first page of a PDF payload. Multi-page
// documents are truncated to page one.
func decodePDF(data []byte) (domain.Raster, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return domain.Raster{}, domain.DecodeFault("failed to open PDF", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return domain.Raster{}, domain.DecodeFault("PDF has no pages", nil)
	}

	img, err := doc.Image(0)
	if err != nil {
		return domain.Raster{}, domain.DecodeFault("failed to rasterize PDF page", err)
	}

	encoded, err := encodePNG(img)
	if err != nil {
		return domain.Raster{}, domain.DecodeFault("failed to encode PDF page", err)
	}

	bounds := img.Bounds()
	return domain.Raster{
		Data:   encoded,
		Format: "pdf",
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
