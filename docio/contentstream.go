package docio

import (
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/tsawler/labelcrop/model"
)

// extractFragments walks a page's content stream and emits positioned text
// fragments converted to top-left page coordinates. Pages without a content
// stream, or whose stream cannot be read, yield no fragments: a missing
// text layer is expected absence, not a failure.
func (d *Document) extractFragments(pageIndex int, dims model.PageDimensions) ([]model.TextFragment, error) {
	r, err := pdfcpu.ExtractPageContent(d.ctx, pageIndex+1)
	if err != nil || r == nil {
		return nil, nil
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return nil, nil
	}

	w := newTextWalker(dims)
	w.walk(data)
	return w.fragments, nil
}

// glyphAdvance approximates the horizontal advance of one glyph as a
// fraction of the font size. Label sheets use near-monospaced numeric text,
// where half an em is a serviceable estimate.
const glyphAdvance = 0.5

// textWalker tracks the subset of the PDF text state needed to position
// text-showing operators: the text and line matrices, font size, and
// leading. Rotated text is not handled; label text is axis-aligned.
type textWalker struct {
	dims      model.PageDimensions
	fragments []model.TextFragment

	// Text object state
	tmX, tmY   float64 // text matrix translation
	lmX, lmY   float64 // line matrix translation
	scaleX     float64 // horizontal scale from Tm
	scaleY     float64 // vertical scale from Tm
	fontSize   float64
	leading    float64
	inText     bool

	// Operand accumulators
	nums    []float64
	strs    []string
	inArray bool
}

func newTextWalker(dims model.PageDimensions) *textWalker {
	return &textWalker{dims: dims, scaleX: 1, scaleY: 1, fontSize: 12}
}

func (w *textWalker) walk(data []byte) {
	t := tokenizer{data: data}
	for {
		tok, ok := t.next()
		if !ok {
			return
		}
		switch tok.kind {
		case tokNumber:
			w.nums = append(w.nums, tok.num)
		case tokString:
			w.strs = append(w.strs, tok.str)
		case tokArrayOpen:
			w.inArray = true
		case tokArrayClose:
			w.inArray = false
		case tokName:
			// Operand for Tf and friends; positions don't need it.
		case tokOperator:
			w.apply(tok.str)
			w.nums = w.nums[:0]
			w.strs = w.strs[:0]
		}
	}
}

func (w *textWalker) apply(op string) {
	switch op {
	case "BT":
		w.inText = true
		w.tmX, w.tmY, w.lmX, w.lmY = 0, 0, 0, 0
		w.scaleX, w.scaleY = 1, 1
	case "ET":
		w.inText = false
	case "Tf":
		if n := len(w.nums); n > 0 {
			w.fontSize = w.nums[n-1]
		}
	case "TL":
		if n := len(w.nums); n > 0 {
			w.leading = w.nums[n-1]
		}
	case "Tm":
		if n := len(w.nums); n >= 6 {
			w.scaleX = w.nums[n-6]
			w.scaleY = w.nums[n-3]
			w.lmX = w.nums[n-2]
			w.lmY = w.nums[n-1]
			w.tmX, w.tmY = w.lmX, w.lmY
		}
	case "Td":
		w.moveLine()
	case "TD":
		if n := len(w.nums); n >= 2 {
			w.leading = -w.nums[n-1]
		}
		w.moveLine()
	case "T*":
		w.lmY -= w.leading * w.vscale()
		w.tmX, w.tmY = w.lmX, w.lmY
	case "Tj":
		w.showAll()
	case "TJ":
		w.showAll()
	case "'":
		w.lmY -= w.leading * w.vscale()
		w.tmX, w.tmY = w.lmX, w.lmY
		w.showAll()
	case "\"":
		w.lmY -= w.leading * w.vscale()
		w.tmX, w.tmY = w.lmX, w.lmY
		w.showAll()
	}
}

func (w *textWalker) moveLine() {
	if n := len(w.nums); n >= 2 {
		w.lmX += w.nums[n-2] * w.hscale()
		w.lmY += w.nums[n-1] * w.vscale()
		w.tmX, w.tmY = w.lmX, w.lmY
	}
}

func (w *textWalker) hscale() float64 {
	if w.scaleX != 0 {
		return w.scaleX
	}
	return 1
}

func (w *textWalker) vscale() float64 {
	if w.scaleY != 0 {
		return w.scaleY
	}
	return 1
}

// showAll emits the accumulated show-text strings as one fragment at the
// current text position, then advances the position past the emitted text.
func (w *textWalker) showAll() {
	if !w.inText || len(w.strs) == 0 {
		return
	}
	var text string
	for _, s := range w.strs {
		text += s
	}
	if text == "" {
		return
	}

	size := w.fontSize * w.vscale()
	if size <= 0 {
		size = 12
	}
	width := glyphAdvance * w.fontSize * w.hscale() * float64(len(text))

	// Baseline at tmY in bottom-left space; ascent above, descent below.
	x0 := w.tmX
	y0 := w.dims.Height - (w.tmY + 0.8*size)
	x1 := x0 + width
	y1 := w.dims.Height - (w.tmY - 0.2*size)

	w.fragments = append(w.fragments, model.TextFragment{
		Rect: model.NewRect(x0, y0, x1, y1),
		Text: text,
	})

	w.tmX += width
}

// Token kinds produced by the content-stream tokenizer.
const (
	tokNumber = iota
	tokString
	tokName
	tokArrayOpen
	tokArrayClose
	tokOperator
)

type token struct {
	kind int
	num  float64
	str  string
}

// tokenizer splits a decoded content stream into the tokens the text walker
// consumes. Dictionaries and inline images are skipped wholesale.
type tokenizer struct {
	data []byte
	pos  int
}

func (t *tokenizer) next() (token, bool) {
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch {
		case isPDFSpace(c):
			t.pos++
		case c == '%':
			t.skipLine()
		case c == '(':
			return token{kind: tokString, str: t.readLiteralString()}, true
		case c == '<':
			if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
				t.skipDict()
				continue
			}
			return token{kind: tokString, str: t.readHexString()}, true
		case c == '[':
			t.pos++
			return token{kind: tokArrayOpen}, true
		case c == ']':
			t.pos++
			return token{kind: tokArrayClose}, true
		case c == '/':
			return token{kind: tokName, str: t.readRegular()}, true
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			word := t.readRegular()
			if num, err := strconv.ParseFloat(word, 64); err == nil {
				return token{kind: tokNumber, num: num}, true
			}
		case c == ')' || c == '>' || c == '{' || c == '}':
			t.pos++
		default:
			op := t.readRegular()
			if op == "BI" {
				t.skipInlineImage()
				continue
			}
			if op != "" {
				return token{kind: tokOperator, str: op}, true
			}
			t.pos++
		}
	}
	return token{}, false
}

func (t *tokenizer) skipLine() {
	for t.pos < len(t.data) && t.data[t.pos] != '\n' {
		t.pos++
	}
}

// readRegular reads a run of regular characters (a name, number or
// operator), starting at the current position.
func (t *tokenizer) readRegular() string {
	start := t.pos
	t.pos++ // first char already classified
	for t.pos < len(t.data) && !isPDFDelimiter(t.data[t.pos]) && !isPDFSpace(t.data[t.pos]) {
		t.pos++
	}
	return string(t.data[start:t.pos])
}

// readLiteralString reads a parenthesized string, handling nesting and
// backslash escapes including octal codes.
func (t *tokenizer) readLiteralString() string {
	t.pos++ // consume '('
	var out []byte
	depth := 1
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch c {
		case '\\':
			t.pos++
			if t.pos >= len(t.data) {
				return string(out)
			}
			e := t.data[t.pos]
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b', 'f':
				// Ignored in label text.
			case '(', ')', '\\':
				out = append(out, e)
			case '\n':
				// Line continuation.
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for i := 0; i < 2 && t.pos+1 < len(t.data); i++ {
						n := t.data[t.pos+1]
						if n < '0' || n > '7' {
							break
						}
						val = val*8 + int(n-'0')
						t.pos++
					}
					out = append(out, byte(val))
				} else {
					out = append(out, e)
				}
			}
			t.pos++
		case '(':
			depth++
			out = append(out, c)
			t.pos++
		case ')':
			depth--
			t.pos++
			if depth == 0 {
				return string(out)
			}
			out = append(out, c)
		default:
			out = append(out, c)
			t.pos++
		}
	}
	return string(out)
}

// readHexString reads a <...> hex string, decoding byte pairs.
func (t *tokenizer) readHexString() string {
	t.pos++ // consume '<'
	var digits []byte
	for t.pos < len(t.data) && t.data[t.pos] != '>' {
		c := t.data[t.pos]
		if isHexDigit(c) {
			digits = append(digits, c)
		}
		t.pos++
	}
	if t.pos < len(t.data) {
		t.pos++ // consume '>'
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		out = append(out, hexVal(digits[i])<<4|hexVal(digits[i+1]))
	}
	return string(out)
}

// skipDict skips a << ... >> dictionary, tracking nesting.
func (t *tokenizer) skipDict() {
	depth := 0
	for t.pos+1 < len(t.data) {
		if t.data[t.pos] == '<' && t.data[t.pos+1] == '<' {
			depth++
			t.pos += 2
			continue
		}
		if t.data[t.pos] == '>' && t.data[t.pos+1] == '>' {
			depth--
			t.pos += 2
			if depth == 0 {
				return
			}
			continue
		}
		t.pos++
	}
	t.pos = len(t.data)
}

// skipInlineImage skips from BI to the terminating EI operator.
func (t *tokenizer) skipInlineImage() {
	for t.pos+1 < len(t.data) {
		if t.data[t.pos] == 'E' && t.data[t.pos+1] == 'I' &&
			(t.pos == 0 || isPDFSpace(t.data[t.pos-1])) {
			t.pos += 2
			return
		}
		t.pos++
	}
	t.pos = len(t.data)
}

func isPDFSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
