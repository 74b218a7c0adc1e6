package barcode

import (
	"testing"

	"github.com/tsawler/labelcrop/model"
)

func makeWord(x0, y0, x1, y1 float64, text string) model.Word {
	return model.Word{
		Rect: model.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1},
		Text: text,
	}
}

func TestLocator_ThresholdBoundary(t *testing.T) {
	l := NewLocator()

	// Seven digits: below the default threshold, rejected.
	_, ok := l.Locate([]model.Word{makeWord(0, 0, 50, 10, "1234567")})
	if ok {
		t.Error("7-digit token should not qualify as a barcode anchor")
	}

	// Eight digits: accepted.
	anchor, ok := l.Locate([]model.Word{makeWord(0, 0, 50, 10, "12345678")})
	if !ok {
		t.Fatal("8-digit token should qualify as a barcode anchor")
	}
	if anchor.Digits != "12345678" {
		t.Errorf("Digits = %q, want %q", anchor.Digits, "12345678")
	}
	if anchor.CenterX != 25 {
		t.Errorf("CenterX = %v, want 25", anchor.CenterX)
	}
}

func TestLocator_LongestTokenWins(t *testing.T) {
	l := NewLocator()

	words := []model.Word{
		makeWord(0, 0, 40, 10, "12345678"),
		makeWord(60, 0, 120, 10, "1234567890"),
	}

	anchor, ok := l.Locate(words)
	if !ok {
		t.Fatal("expected an anchor")
	}
	if anchor.Digits != "1234567890" {
		t.Errorf("Digits = %q, want the 10-digit token", anchor.Digits)
	}
	if anchor.CenterX != 90 {
		t.Errorf("CenterX = %v, want 90", anchor.CenterX)
	}
}

func TestLocator_NonDigitsStripped(t *testing.T) {
	l := NewLocator()

	// Hyphenated barcode text still counts its digits.
	anchor, ok := l.Locate([]model.Word{makeWord(0, 0, 80, 10, "84-3123-4567-890")})
	if !ok {
		t.Fatal("expected an anchor")
	}
	if anchor.Digits != "8431234567890" {
		t.Errorf("Digits = %q, want %q", anchor.Digits, "8431234567890")
	}
	if anchor.Text != "84-3123-4567-890" {
		t.Errorf("Text = %q, original token must be preserved", anchor.Text)
	}
}

func TestLocator_TieBrokenByFirstToken(t *testing.T) {
	l := NewLocator()

	words := []model.Word{
		makeWord(0, 0, 40, 10, "11111111"),
		makeWord(60, 0, 100, 10, "22222222"),
	}

	anchor, ok := l.Locate(words)
	if !ok {
		t.Fatal("expected an anchor")
	}
	if anchor.Digits != "11111111" {
		t.Errorf("tie should keep the first token, got %q", anchor.Digits)
	}
}

func TestLocator_EmptyInput(t *testing.T) {
	l := NewLocator()
	if _, ok := l.Locate(nil); ok {
		t.Error("no words should yield no anchor")
	}
}
