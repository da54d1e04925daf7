package tune

import (
  "errors"
  "math"
  "testing"

  "github.com/InfinityTools/ycctune/ycc"
)

// newBuffer returns a buffer of the given size initialized by fn.
func newBuffer(t *testing.T, w, h int, fn func(x, y int) ycc.Pixel) *ycc.Buffer {
  t.Helper()
  b, err := ycc.New(w, h)
  if err != nil { t.Fatal(err) }
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      b.SetPixel(x, y, fn(x, y))
    }
  }
  return b
}

func lumaBuffer(t *testing.T, w, h int, luma []byte) *ycc.Buffer {
  t.Helper()
  return newBuffer(t, w, h, func(x, y int) ycc.Pixel { return ycc.Pixel{luma[y*w + x], 128, 128} })
}

func checkPixel(t *testing.T, b *ycc.Buffer, x, y int, want ycc.Pixel) {
  t.Helper()
  if got := b.PixelAt(x, y); got != want {
    t.Errorf("(%d,%d): got %v, expected %v", x, y, got, want)
  }
}


func TestAdjustToneNeutral(t *testing.T) {
  src := newBuffer(t, 5, 3, func(x, y int) ycc.Pixel { return ycc.Pixel{byte(x*50), byte(y*100), byte(255 - x*40)} })
  dst, _ := ycc.New(5, 3)
  if err := AdjustTone(dst, src, 0.0, 1.0); err != nil { t.Fatal(err) }
  if !dst.Equal(src) {
    t.Errorf("neutral tone adjustment modified the image")
  }
}

func TestAdjustToneValues(t *testing.T) {
  src := newBuffer(t, 2, 1, func(x, y int) ycc.Pixel {
    if x == 0 { return ycc.Pixel{100, 160, 96} }
    return ycc.Pixel{150, 96, 160}
  })
  dst, _ := ycc.New(2, 1)
  if err := AdjustTone(dst, src, 30.0, 1.5); err != nil { t.Fatal(err) }
  checkPixel(t, dst, 0, 0, ycc.Pixel{110, 192, 64})
  checkPixel(t, dst, 1, 0, ycc.Pixel{165, 64, 192})
}

func TestAdjustToneClamps(t *testing.T) {
  src := newBuffer(t, 2, 1, func(x, y int) ycc.Pixel {
    if x == 0 { return ycc.Pixel{250, 250, 10} }
    return ycc.Pixel{200, 128, 128}
  })
  dst, _ := ycc.New(2, 1)
  if err := AdjustTone(dst, src, 255.0, 2.0); err != nil { t.Fatal(err) }
  checkPixel(t, dst, 0, 0, ycc.Pixel{255, 255, 0})
  checkPixel(t, dst, 1, 0, ycc.Pixel{255, 128, 128})

  if err := AdjustTone(dst, src, -255.0, 0.0); err != nil { t.Fatal(err) }
  // c' = -2: 250 + 122 * -2 = 6, 10 - 118 * -2 = 246
  checkPixel(t, dst, 0, 0, ycc.Pixel{37, 6, 246})
  checkPixel(t, dst, 1, 0, ycc.Pixel{30, 128, 128})
}

func TestAdjustToneInPlace(t *testing.T) {
  b := newBuffer(t, 1, 1, func(x, y int) ycc.Pixel { return ycc.Pixel{100, 160, 96} })
  if err := AdjustTone(b, b, 30.0, 1.5); err != nil { t.Fatal(err) }
  checkPixel(t, b, 0, 0, ycc.Pixel{110, 192, 64})
}

func TestAdjustToneErrors(t *testing.T) {
  a, _ := ycc.New(2, 2)
  b, _ := ycc.New(2, 3)
  if err := AdjustTone(a, b, 0, 1); !errors.Is(err, ErrDimensionMismatch) {
    t.Errorf("expected ErrDimensionMismatch, got %v", err)
  }
  if err := AdjustTone(nil, b, 0, 1); !errors.Is(err, ErrNoImage) {
    t.Errorf("expected ErrNoImage, got %v", err)
  }
}


func TestEqualizeUniform(t *testing.T) {
  src := newBuffer(t, 3, 3, func(x, y int) ycc.Pixel { return ycc.Pixel{77, 90, 170} })

  out, err := Equalize(src, 1, CountExact)
  if err != nil { t.Fatal(err) }
  for y := 0; y < 3; y++ {
    for x := 0; x < 3; x++ {
      checkPixel(t, out, x, y, ycc.Pixel{255, 90, 170})
    }
  }

  out, err = Equalize(src, 1, CountReference)
  if err != nil { t.Fatal(err) }
  // center: rank 9, total 9 + 3
  checkPixel(t, out, 1, 1, ycc.Pixel{191, 90, 170})
  // corner: rank 4, total 4 + 2
  checkPixel(t, out, 0, 0, ycc.Pixel{169, 90, 170})
}

func TestEqualizeExtremes(t *testing.T) {
  src := lumaBuffer(t, 3, 3, []byte{
    50, 50, 50,
    50, 200, 50,
    50, 50, 50,
  })
  out, err := Equalize(src, 1, CountExact)
  if err != nil { t.Fatal(err) }
  checkPixel(t, out, 1, 1, ycc.Pixel{255, 128, 128})

  src = lumaBuffer(t, 3, 3, []byte{
    90, 90, 90,
    90, 10, 90,
    90, 90, 90,
  })
  out, err = Equalize(src, 1, CountExact)
  if err != nil { t.Fatal(err) }
  // rank 1 of 9: floor(256 / 9) - 1
  checkPixel(t, out, 1, 1, ycc.Pixel{27, 128, 128})
}

func TestEqualizeKeepsSource(t *testing.T) {
  src := newBuffer(t, 7, 5, func(x, y int) ycc.Pixel { return ycc.Pixel{byte((x*37 + y*11) % 256), 100, 150} })
  orig := src.Clone()
  out, err := Equalize(src, 2, CountReference)
  if err != nil { t.Fatal(err) }
  if !src.Equal(orig) {
    t.Errorf("source buffer was modified")
  }
  for i, p := range out.Pix() {
    if p.Cb != 100 || p.Cr != 150 {
      t.Errorf("pixel %d: chroma modified: %v", i, p)
    }
  }
}

func TestEqualizeRadiusFloor(t *testing.T) {
  src := newBuffer(t, 6, 4, func(x, y int) ycc.Pixel { return ycc.Pixel{byte(x*30 + y*5), 128, 128} })
  a, err := Equalize(src, 0, CountReference)
  if err != nil { t.Fatal(err) }
  b, err := Equalize(src, 1, CountReference)
  if err != nil { t.Fatal(err) }
  if !a.Equal(b) {
    t.Errorf("radius 0 does not match radius 1")
  }
}

func TestEqualizeThreading(t *testing.T) {
  defer SetMultiThreaded(GetMultiThreaded())
  src := newBuffer(t, 33, 47, func(x, y int) ycc.Pixel { return ycc.Pixel{byte((x*x + y*13) % 251), 128, 128} })

  SetMultiThreaded(false)
  serial, err := Equalize(src, 3, CountReference)
  if err != nil { t.Fatal(err) }

  SetMultiThreaded(true)
  parallel, err := Equalize(src, 3, CountReference)
  if err != nil { t.Fatal(err) }

  if !serial.Equal(parallel) {
    t.Errorf("multithreaded result differs from serial result")
  }
}


func TestScaleHalf(t *testing.T) {
  src := newBuffer(t, 4, 4, func(x, y int) ycc.Pixel { return ycc.Pixel{byte(y*4 + x), 128, 128} })
  out, err := Scale(src, 0.5, true, 4, 4)
  if err != nil { t.Fatal(err) }
  for j := 0; j < 4; j++ {
    for i := 0; i < 4; i++ {
      if i < 2 && j < 2 {
        checkPixel(t, out, i, j, src.PixelAt(2*i, 2*j))
      } else {
        checkPixel(t, out, i, j, ycc.Neutral)
      }
    }
  }
}

func TestScaleBilinear(t *testing.T) {
  src := lumaBuffer(t, 2, 2, []byte{0, 100, 200, 255})
  out, err := Scale(src, 2.0, true, 4, 4)
  if err != nil { t.Fatal(err) }
  checkPixel(t, out, 0, 0, ycc.Pixel{0, 128, 128})
  checkPixel(t, out, 1, 0, ycc.Pixel{50, 128, 128})
  checkPixel(t, out, 1, 1, ycc.Pixel{139, 128, 128})
  // right and bottom edges fall back to nearest neighbor
  checkPixel(t, out, 2, 0, ycc.Pixel{100, 128, 128})
  checkPixel(t, out, 3, 3, ycc.Pixel{255, 128, 128})
}

func TestScaleNearest(t *testing.T) {
  src := lumaBuffer(t, 2, 2, []byte{0, 100, 200, 255})
  out, err := Scale(src, 2.0, false, 4, 4)
  if err != nil { t.Fatal(err) }
  checkPixel(t, out, 1, 1, ycc.Pixel{0, 128, 128})
  checkPixel(t, out, 2, 1, ycc.Pixel{100, 128, 128})
  checkPixel(t, out, 1, 2, ycc.Pixel{200, 128, 128})
  checkPixel(t, out, 3, 3, ycc.Pixel{255, 128, 128})
}

func TestScaleStrictBound(t *testing.T) {
  src := lumaBuffer(t, 2, 2, []byte{10, 20, 30, 40})
  out, err := Scale(src, 1.0, false, 3, 3)
  if err != nil { t.Fatal(err) }
  checkPixel(t, out, 1, 1, ycc.Pixel{40, 128, 128})
  checkPixel(t, out, 2, 0, ycc.Neutral)
  checkPixel(t, out, 0, 2, ycc.Neutral)
  checkPixel(t, out, 2, 2, ycc.Neutral)
}

func TestScaleErrors(t *testing.T) {
  src := lumaBuffer(t, 2, 2, []byte{10, 20, 30, 40})
  for _, f := range []float64{0.0, -1.0, math.NaN(), math.Inf(1)} {
    if _, err := Scale(src, f, false, 2, 2); !errors.Is(err, ErrInvalidFactor) {
      t.Errorf("factor %v: expected ErrInvalidFactor, got %v", f, err)
    }
  }
  if _, err := Scale(src, 1.0, false, 0, 2); !errors.Is(err, ycc.ErrInvalidDimension) {
    t.Errorf("expected ErrInvalidDimension, got %v", err)
  }
  if _, err := Scale(nil, 1.0, false, 2, 2); !errors.Is(err, ErrNoImage) {
    t.Errorf("expected ErrNoImage, got %v", err)
  }
}

func TestGestureScaleFactor(t *testing.T) {
  cases := []struct {
    x0, y0, x1, y1  int
    want            float64
  }{
    {60, 50, 70, 50, 2.0},
    {70, 50, 60, 50, 0.5},
    {50, 40, 50, 30, 2.0},
    {50, 50, 80, 80, 1.0},
    {60, 50, 50, 50, 1.0},
  }
  for _, c := range cases {
    if got := GestureScaleFactor(c.x0, c.y0, c.x1, c.y1, 100, 100); math.Abs(got - c.want) > 1e-9 {
      t.Errorf("(%d,%d)->(%d,%d): got %v, expected %v", c.x0, c.y0, c.x1, c.y1, got, c.want)
    }
  }
}
