package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/aykevl/joyboard/control"
)

// Frame buffer backed screen, for testing.
type testScreen struct {
	img      *image.Gray
	flushes  int
	flushErr error
}

func newTestScreen() *testScreen {
	return &testScreen{img: image.NewGray(image.Rect(0, 0, control.DisplayWidth, control.DisplayHeight))}
}

func (s *testScreen) Size() (x, y int16) {
	b := s.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (s *testScreen) SetPixel(x, y int16, c color.RGBA) {
	if !image.Pt(int(x), int(y)).In(s.img.Bounds()) {
		panic("pixel out of bounds")
	}
	if c.R != 0 || c.G != 0 || c.B != 0 {
		s.img.SetGray(int(x), int(y), color.Gray{255})
	} else {
		s.img.SetGray(int(x), int(y), color.Gray{0})
	}
}

func (s *testScreen) Display() error {
	s.flushes++
	return s.flushErr
}

func (s *testScreen) ClearBuffer() {
	for i := range s.img.Pix {
		s.img.Pix[i] = 0
	}
}

func (s *testScreen) lit(x, y int) bool {
	return s.img.GrayAt(x, y).Y != 0
}

func (s *testScreen) count() int {
	n := 0
	for _, v := range s.img.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestDrawBorders(t *testing.T) {
	const w, h = control.DisplayWidth, control.DisplayHeight
	const perimeter = 2*w + 2*h - 4
	marker := image.Pt(40, 20)
	for _, tc := range []struct {
		border control.BorderStyle
		lit    []image.Point
		dark   []image.Point
		numLit int
	}{
		{
			border: control.BorderNone,
			dark:   []image.Point{{0, 0}, {w - 1, h - 1}},
			numLit: 64,
		},
		{
			border: control.BorderSolid,
			lit:    []image.Point{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}, {5, 0}},
			dark:   []image.Point{{1, 1}},
			numLit: 64 + perimeter,
		},
		{
			border: control.BorderDouble,
			lit:    []image.Point{{0, 0}, {1, 1}, {w - 2, h - 2}},
			dark:   []image.Point{{2, 2}},
			numLit: 64 + perimeter + (2*(w-2) + 2*(h-2) - 4),
		},
		{
			border: control.BorderDotted,
			lit:    []image.Point{{0, 0}, {4, 0}, {0, 4}, {w - 1, 8}, {12, h - 1}},
			dark:   []image.Point{{1, 0}, {0, 1}, {w - 1, 9}},
			numLit: 64 + 2*(w/DotSpacing) + 2*(h/DotSpacing) - 1,
		},
		{
			border: control.BorderFilled,
			lit:    []image.Point{{0, 0}, {w / 2, h / 2}},
			dark:   []image.Point{{40, 20}, {47, 27}},
			numLit: w*h - 64,
		},
	} {
		s := newTestScreen()
		err := Draw(s, Frame{Border: tc.border, Marker: marker, MarkerSize: 8})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.border, err)
		}
		for _, p := range tc.lit {
			if !s.lit(p.X, p.Y) {
				t.Errorf("%s: expected pixel %v to be lit", tc.border, p)
			}
		}
		for _, p := range tc.dark {
			if s.lit(p.X, p.Y) {
				t.Errorf("%s: expected pixel %v to be dark", tc.border, p)
			}
		}
		if n := s.count(); n != tc.numLit {
			t.Errorf("%s: expected %d lit pixels, got %d", tc.border, tc.numLit, n)
		}
		if s.flushes != 1 {
			t.Errorf("%s: expected a single flush, got %d", tc.border, s.flushes)
		}
	}
}

func TestDrawMarker(t *testing.T) {
	s := newTestScreen()
	Draw(s, Frame{Marker: image.Pt(10, 20), MarkerSize: 8})
	for y := 0; y < control.DisplayHeight; y++ {
		for x := 0; x < control.DisplayWidth; x++ {
			inside := x >= 10 && x < 18 && y >= 20 && y < 28
			if s.lit(x, y) != inside {
				t.Fatalf("pixel (%d, %d): expected lit=%v", x, y, inside)
			}
		}
	}

	// The previous frame is cleared.
	Draw(s, Frame{Marker: image.Pt(100, 40)})
	if s.lit(10, 20) || !s.lit(100, 40) || !s.lit(107, 47) {
		t.Error("previous marker was not cleared")
	}
}

func TestDrawMarkerClipped(t *testing.T) {
	// The classic profile can put the marker partly below the display.
	s := newTestScreen()
	Draw(s, Frame{Marker: image.Pt(122, 60), MarkerSize: 8})
	if n := s.count(); n != 6*4 {
		t.Errorf("expected 24 visible marker pixels, got %d", n)
	}

	s = newTestScreen()
	Draw(s, Frame{Marker: image.Pt(71, 94), MarkerSize: 8})
	if n := s.count(); n != 0 {
		t.Errorf("expected marker to be invisible, got %d pixels", n)
	}
}

func TestDrawError(t *testing.T) {
	s := newTestScreen()
	s.flushErr = errors.New("i2c: nack")
	if err := Draw(s, Frame{}); err != s.flushErr {
		t.Errorf("expected flush error to be returned, got %v", err)
	}
}
