package docio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	_ "image/jpeg" // register decoders for embedded page scans
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	_ "golang.org/x/image/tiff" // scanned sheets are often CCITT/TIFF
)

// RasterGray returns a grayscale raster of the page at the given zoom
// factor, in raster pixels of zoom * page points per axis.
//
// pdfcpu is not a renderer, so the raster comes from the page's embedded
// image XObjects: scanned label sheets carry each page as one full-page
// scan. The largest image on the page is decoded, grayscaled and resized to
// the requested zoom. Pages without an embedded image return an error; the
// caller falls back to full-page geometry.
func (d *Document) RasterGray(pageIndex int, zoom float64) (*image.Gray, error) {
	if err := d.checkPage(pageIndex); err != nil {
		return nil, err
	}
	if zoom <= 0 {
		zoom = 1
	}

	img, err := d.largestPageImage(pageIndex)
	if err != nil {
		return nil, err
	}

	dims, err := d.PageDimensions(pageIndex)
	if err != nil {
		return nil, err
	}

	w := int(dims.Width*zoom + 0.5)
	h := int(dims.Height*zoom + 0.5)
	resized := imaging.Resize(img, w, h, imaging.Lanczos)

	return toGray(imaging.Grayscale(resized)), nil
}

// largestPageImage decodes the image XObject with the most pixels on the
// page.
func (d *Document) largestPageImage(pageIndex int) (image.Image, error) {
	objNrs := pdfcpu.ImageObjNrs(d.ctx, pageIndex+1)
	if len(objNrs) == 0 {
		return nil, fmt.Errorf("%s page %d: no embedded page image", d.name, pageIndex+1)
	}

	var best image.Image
	bestPixels := 0
	var lastErr error

	for _, objNr := range objNrs {
		img, err := d.decodeImageObject(objNr)
		if err != nil {
			lastErr = err
			continue
		}
		pixels := img.Bounds().Dx() * img.Bounds().Dy()
		if pixels > bestPixels {
			best = img
			bestPixels = pixels
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%s page %d: no decodable page image: %w", d.name, pageIndex+1, lastErr)
	}
	return best, nil
}

// decodeImageObject decodes one image XObject. DCT (JPEG) and the other
// self-describing formats decode from the raw stream; flate-compressed raw
// samples are rebuilt from Width/Height/BitsPerComponent/ColorSpace.
func (d *Document) decodeImageObject(objNr int) (image.Image, error) {
	entry := d.ctx.Table[objNr]
	if entry == nil || entry.Object == nil {
		return nil, fmt.Errorf("object %d: missing", objNr)
	}
	sd, ok := entry.Object.(types.StreamDict)
	if !ok {
		return nil, fmt.Errorf("object %d: not a stream", objNr)
	}

	// Self-describing payloads: JPEG keeps its own framing under DCTDecode,
	// and some producers embed PNG or TIFF wholesale.
	if img, _, err := image.Decode(bytes.NewReader(sd.Raw)); err == nil {
		return img, nil
	}

	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("object %d: decode stream: %w", objNr, err)
	}
	return imageFromSamples(&sd)
}

// imageFromSamples rebuilds an image from decoded raw samples.
func imageFromSamples(sd *types.StreamDict) (image.Image, error) {
	width := sd.IntEntry("Width")
	height := sd.IntEntry("Height")
	if width == nil || height == nil || *width <= 0 || *height <= 0 {
		return nil, fmt.Errorf("image stream without dimensions")
	}
	bpc := 8
	if b := sd.IntEntry("BitsPerComponent"); b != nil {
		bpc = *b
	}
	if bpc != 8 {
		return nil, fmt.Errorf("unsupported bits per component %d", bpc)
	}

	colorSpace := ""
	if cs := sd.NameEntry("ColorSpace"); cs != nil {
		colorSpace = *cs
	}

	w, h := *width, *height
	data := sd.Content

	switch colorSpace {
	case "DeviceGray":
		if len(data) < w*h {
			return nil, fmt.Errorf("gray image samples truncated")
		}
		img := image.NewGray(image.Rect(0, 0, w, h))
		copy(img.Pix, data[:w*h])
		return img, nil
	case "DeviceRGB", "":
		if len(data) < w*h*3 {
			return nil, fmt.Errorf("rgb image samples truncated")
		}
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := 0; i < w*h; i++ {
			img.Pix[i*4+0] = data[i*3+0]
			img.Pix[i*4+1] = data[i*3+1]
			img.Pix[i*4+2] = data[i*3+2]
			img.Pix[i*4+3] = 0xff
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported color space %s", colorSpace)
	}
}

// toGray converts any image to an 8-bit grayscale raster.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}
