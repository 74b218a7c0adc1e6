package docio

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/labelcrop/model"
)

func TestSplitFragmentWords(t *testing.T) {
	f := model.TextFragment{
		Rect: model.Rect{X0: 0, Y0: 10, X1: 100, Y1: 20},
		Text: "C50039 0007 0001",
	}

	words := splitFragmentWords(f)
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}

	wantTexts := []string{"C50039", "0007", "0001"}
	for i, w := range words {
		if w.Text != wantTexts[i] {
			t.Errorf("word %d text = %q, want %q", i, w.Text, wantTexts[i])
		}
		if w.Rect.Y0 != f.Rect.Y0 || w.Rect.Y1 != f.Rect.Y1 {
			t.Errorf("word %d vertical box %+v differs from fragment", i, w.Rect)
		}
	}

	// Sub-boxes are ordered and proportional: 16 characters over 100 points.
	if math.Abs(words[0].Rect.X0-0) > 0.0001 {
		t.Errorf("first word X0 = %f, want 0", words[0].Rect.X0)
	}
	if math.Abs(words[0].Rect.X1-100.0*6/16) > 0.0001 {
		t.Errorf("first word X1 = %f, want %f", words[0].Rect.X1, 100.0*6/16)
	}
	for i := 1; i < len(words); i++ {
		if words[i].Rect.X0 < words[i-1].Rect.X1 {
			t.Errorf("word %d overlaps its predecessor", i)
		}
	}
}

func TestSplitFragmentWords_SingleWordKeepsBox(t *testing.T) {
	f := model.TextFragment{
		Rect: model.Rect{X0: 5, Y0: 5, X1: 50, Y1: 15},
		Text: "  84312345678  ",
	}

	words := splitFragmentWords(f)
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	if words[0].Rect != f.Rect {
		t.Errorf("single word box %+v, want fragment box %+v", words[0].Rect, f.Rect)
	}
	if words[0].Text != "84312345678" {
		t.Errorf("text = %q, want trimmed digits", words[0].Text)
	}
}

func TestCropBox_ConvertsToBottomLeftOrigin(t *testing.T) {
	dims := model.PageDimensions{Width: 600, Height: 800}
	r := model.Rect{X0: 100, Y0: 50, X1: 300, Y1: 250}

	box := cropBox(r, dims)
	if math.Abs(box.Rect.LL.X-100) > 0.0001 || math.Abs(box.Rect.LL.Y-550) > 0.0001 ||
		math.Abs(box.Rect.UR.X-300) > 0.0001 || math.Abs(box.Rect.UR.Y-750) > 0.0001 {
		t.Errorf("crop box = %+v, want (100 550 300 750)", box.Rect)
	}
}

func TestCropBox_ConversionIsPageHeightDependent(t *testing.T) {
	// The same top-left rect lands on different bottom-left boxes under
	// different page heights, so a shared rect must always be converted in
	// the space of the page it was detected on.
	r := model.Rect{X0: 0, Y0: 100, X1: 200, Y1: 300}

	tall := cropBox(r, model.PageDimensions{Width: 600, Height: 800})
	short := cropBox(r, model.PageDimensions{Width: 600, Height: 500})

	if math.Abs(tall.Rect.LL.Y-500) > 0.0001 || math.Abs(tall.Rect.UR.Y-700) > 0.0001 {
		t.Errorf("800pt page box = %+v, want y [500, 700]", tall.Rect)
	}
	if math.Abs(short.Rect.LL.Y-200) > 0.0001 || math.Abs(short.Rect.UR.Y-400) > 0.0001 {
		t.Errorf("500pt page box = %+v, want y [200, 400]", short.Rect)
	}
}

func TestToGray(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	rgba.Set(1, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})

	gray := toGray(rgba)
	if gray.GrayAt(0, 0).Y < 250 {
		t.Errorf("white pixel converted to %d", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 0).Y > 5 {
		t.Errorf("black pixel converted to %d", gray.GrayAt(1, 0).Y)
	}

	// Already-gray images pass through unchanged.
	g := image.NewGray(image.Rect(0, 0, 3, 3))
	if toGray(g) != g {
		t.Error("gray input should be returned as-is")
	}
}

func TestImageFromSamples_DeviceGray(t *testing.T) {
	w, h := 3, 2
	sd := types.StreamDict{
		Dict:    types.Dict{"Width": types.Integer(w), "Height": types.Integer(h), "ColorSpace": types.Name("DeviceGray")},
		Content: []byte{0, 50, 100, 150, 200, 250},
	}

	img, err := imageFromSamples(&sd)
	if err != nil {
		t.Fatalf("imageFromSamples() error = %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("got %T, want *image.Gray", img)
	}
	if gray.GrayAt(2, 1).Y != 250 {
		t.Errorf("pixel (2,1) = %d, want 250", gray.GrayAt(2, 1).Y)
	}
}

func TestImageFromSamples_DeviceRGB(t *testing.T) {
	sd := types.StreamDict{
		Dict:    types.Dict{"Width": types.Integer(1), "Height": types.Integer(1), "ColorSpace": types.Name("DeviceRGB")},
		Content: []byte{10, 20, 30},
	}

	img, err := imageFromSamples(&sd)
	if err != nil {
		t.Fatalf("imageFromSamples() error = %v", err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("pixel = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestImageFromSamples_RejectsTruncatedAndOddStreams(t *testing.T) {
	tests := []struct {
		name string
		sd   types.StreamDict
	}{
		{
			"missing dimensions",
			types.StreamDict{Dict: types.Dict{}},
		},
		{
			"truncated gray samples",
			types.StreamDict{
				Dict:    types.Dict{"Width": types.Integer(4), "Height": types.Integer(4), "ColorSpace": types.Name("DeviceGray")},
				Content: []byte{1, 2, 3},
			},
		},
		{
			"unsupported bit depth",
			types.StreamDict{
				Dict: types.Dict{"Width": types.Integer(4), "Height": types.Integer(4), "BitsPerComponent": types.Integer(1)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := imageFromSamples(&tt.sd); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
