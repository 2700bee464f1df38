package surface

import (
	"image/color"
	"testing"

	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
)

var (
	black = color.NRGBA{0, 0, 0, 0xff}
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	red   = color.NRGBA{0xff, 0, 0, 0xff}
)

func TestPrepareScaleDoesNotCompound(t *testing.T) {
	s := New(100, 50, 2)

	for i := range 3 {
		c, err := s.Prepare(100, 50)
		if err != nil {
			t.Fatalf("Prepare #%d: %v", i, err)
		}
		sx, sy := c.Scale()
		if sx != 2 || sy != 2 {
			t.Errorf("Prepare #%d scale = (%v, %v), want (2, 2)", i, sx, sy)
		}
		_, w, h := c.Pixels()
		if w != 200 || h != 100 {
			t.Errorf("Prepare #%d device size = %dx%d, want 200x100", i, w, h)
		}
		c.Release()
	}
}

func TestPrepareReleasesPreviousCanvas(t *testing.T) {
	s := New(10, 10, 1)
	first, _ := s.Prepare(10, 10)
	second, _ := s.Prepare(10, 10)
	defer second.Release()

	if !first.Empty() {
		t.Error("previous canvas should be released by a new Prepare")
	}
	if second.Empty() {
		t.Error("new canvas should be usable")
	}
}

func TestPrepareInvalidTarget(t *testing.T) {
	var nilSurface *Surface
	if _, err := nilSurface.Prepare(10, 10); !errors.Is(err, errors.ErrCodeInvalidTarget) {
		t.Errorf("nil surface error = %v, want INVALID_TARGET", err)
	}

	s := New(10, 10, 1)
	_ = s.Close()
	if _, err := s.Prepare(10, 10); !errors.Is(err, errors.ErrCodeInvalidTarget) {
		t.Errorf("closed surface error = %v, want INVALID_TARGET", err)
	}
}

func TestReleaseWithoutCommitLeavesFrame(t *testing.T) {
	s := New(4, 4, 1)

	c, _ := s.Prepare(4, 4)
	c.Clear(red)
	c.Commit()
	c.Release()

	c, _ = s.Prepare(4, 4)
	c.Clear(white)
	c.Release()

	got := s.Frame().RGBAAt(1, 1)
	if got.R != 0xff || got.G != 0 {
		t.Errorf("uncommitted render changed the frame: %v", got)
	}
}

func TestEmptyCanvas(t *testing.T) {
	s := New(0, 20, 2)
	c, err := s.Prepare(0, 20)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	defer c.Release()

	if !c.Empty() {
		t.Fatal("zero-width canvas should be empty")
	}
	c.Clear(red)
	c.Line(0, 0, 10, 10)
	if err := c.Stroke(); err != nil {
		t.Errorf("Stroke on empty canvas: %v", err)
	}
	if err := c.Glow(3, func(*Canvas) error { return nil }); err != nil {
		t.Errorf("Glow on empty canvas: %v", err)
	}
	c.Commit()
	if b := s.Frame().Bounds(); !b.Empty() {
		t.Errorf("frame bounds = %v, want empty", b)
	}
}

func TestFillRectUsesLogicalUnits(t *testing.T) {
	s := New(10, 10, 2)
	c, _ := s.Prepare(10, 10)
	defer c.Release()

	c.Clear(black)
	c.SetColor(white)
	if err := c.FillRect(0, 0, 5, 10); err != nil {
		t.Fatal(err)
	}
	c.Commit()

	f := s.Frame()
	if f.Bounds().Dx() != 20 {
		t.Fatalf("frame width = %d, want 20", f.Bounds().Dx())
	}
	if got := f.RGBAAt(5, 10); got.R != 0xff {
		t.Errorf("left half pixel = %v, want white", got)
	}
	if got := f.RGBAAt(15, 10); got.R != 0 {
		t.Errorf("right half pixel = %v, want black", got)
	}
}

func TestLayerOpacity(t *testing.T) {
	s := New(4, 4, 1)
	c, _ := s.Prepare(4, 4)
	defer c.Release()

	c.Clear(black)
	c.BeginLayer(BlendNormal, 0.5)
	c.SetColor(white)
	_ = c.FillRect(0, 0, 4, 4)
	c.EndLayer()
	c.Commit()

	got := s.Frame().RGBAAt(2, 2).R
	if got < 100 || got > 155 {
		t.Errorf("half-opacity white over black = %d, want about 128", got)
	}
}

func TestGlowSpreadsBeyondStroke(t *testing.T) {
	s := New(40, 40, 1)
	c, _ := s.Prepare(40, 40)
	defer c.Release()

	c.Clear(black)
	c.SetColor(white)
	c.SetLineWidth(2)
	err := c.Glow(4, func(g *Canvas) error {
		g.Line(20, 0, 20, 40)
		return g.Stroke()
	})
	if err != nil {
		t.Fatalf("Glow: %v", err)
	}
	c.Commit()

	f := s.Frame()
	if f.RGBAAt(20, 20).R < 200 {
		t.Errorf("core pixel = %v, want bright", f.RGBAAt(20, 20))
	}
	if f.RGBAAt(24, 20).R == 0 {
		t.Error("halo should light pixels next to the stroke")
	}
	if f.RGBAAt(2, 20).R != 0 {
		t.Error("pixels far from the stroke should stay dark")
	}
}

func TestGlowRestoresPaint(t *testing.T) {
	s := New(40, 40, 1)
	c, _ := s.Prepare(40, 40)
	defer c.Release()

	c.Clear(black)
	c.SetColor(red)
	err := c.Glow(3, func(g *Canvas) error {
		g.Line(5, 0, 5, 10)
		return g.Stroke()
	})
	if err != nil {
		t.Fatalf("Glow: %v", err)
	}
	if err := c.FillRect(30, 30, 6, 6); err != nil {
		t.Fatal(err)
	}
	c.Commit()

	if got := s.Frame().RGBAAt(33, 33); got.R != 0xff || got.G != 0 || got.B != 0 {
		t.Errorf("fill after glow = %v, want red", got)
	}
}

func TestGlowHaloFollowsLineWidth(t *testing.T) {
	haloAt := func(width float64) uint8 {
		s := New(60, 20, 1)
		c, _ := s.Prepare(60, 20)
		defer c.Release()
		c.Clear(black)
		c.SetColor(white)
		c.SetLineWidth(width)
		err := c.Glow(4, func(g *Canvas) error {
			g.Line(20, 0, 20, 20)
			return g.Stroke()
		})
		if err != nil {
			t.Fatalf("Glow: %v", err)
		}
		c.Commit()
		return s.Frame().RGBAAt(30, 10).R
	}

	narrow, wide := haloAt(1), haloAt(8)
	if wide <= narrow+5 {
		t.Errorf("halo at distance 10: width 8 = %d, width 1 = %d, want the wider stroke to glow further", wide, narrow)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		bw, bh int
		aspect float64
		w, h   int
	}{
		{1600, 1600, 16.0 / 9, 1600, 900},
		{800, 300, 16.0 / 9, 533, 300},
		{640, 480, 0, 640, 480},
		{-5, 10, 1, 0, 10},
	}
	for _, tt := range tests {
		w, h := Fit(tt.bw, tt.bh, tt.aspect)
		if w != tt.w || h != tt.h {
			t.Errorf("Fit(%d, %d, %v) = %d, %d, want %d, %d", tt.bw, tt.bh, tt.aspect, w, h, tt.w, tt.h)
		}
	}
}

func TestNewNormalizesRatio(t *testing.T) {
	if r := New(1, 1, 0).Ratio(); r != 1 {
		t.Errorf("ratio = %v, want 1", r)
	}
	if w, h := New(-3, 4, 1).Size(); w != 0 || h != 4 {
		t.Errorf("size = %d, %d", w, h)
	}
}
