package ycc

import (
  "errors"
  "image"
  "image/color"
  "testing"
)

func grayImage(w, h int) *image.RGBA {
  img := image.NewRGBA(image.Rect(0, 0, w, h))
  for y := 0; y < h; y++ {
    for x := 0; x < w; x++ {
      v := byte(x * 16 + y)
      img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
    }
  }
  return img
}

func TestNewRejectsInvalidDimension(t *testing.T) {
  for _, dim := range [][2]int{{0, 1}, {1, 0}, {-3, 4}, {4, -3}} {
    b, err := New(dim[0], dim[1])
    if !errors.Is(err, ErrInvalidDimension) {
      t.Errorf("New(%d, %d): expected ErrInvalidDimension, got %v", dim[0], dim[1], err)
    }
    if b != nil {
      t.Errorf("New(%d, %d): expected nil buffer", dim[0], dim[1])
    }
  }
}

func TestNewInitializesBlack(t *testing.T) {
  b, err := New(3, 2)
  if err != nil { t.Fatal(err) }
  if b.Width() != 3 || b.Height() != 2 || len(b.Pix()) != 6 {
    t.Fatalf("unexpected dimension %dx%d (%d pixels)", b.Width(), b.Height(), len(b.Pix()))
  }
  for i, p := range b.Pix() {
    if p != (Pixel{0, 128, 128}) {
      t.Errorf("pixel %d: got %v", i, p)
    }
  }
}

func TestFromImageGray(t *testing.T) {
  img := grayImage(8, 5)
  b, err := FromImage(img)
  if err != nil { t.Fatal(err) }
  for y := 0; y < 5; y++ {
    for x := 0; x < 8; x++ {
      want := Pixel{byte(x * 16 + y), 128, 128}
      if got := b.PixelAt(x, y); got != want {
        t.Errorf("(%d,%d): got %v, expected %v", x, y, got, want)
      }
    }
  }
}

func TestFromImageSubImage(t *testing.T) {
  img := grayImage(8, 8).SubImage(image.Rect(2, 3, 6, 7))
  b, err := FromImage(img)
  if err != nil { t.Fatal(err) }
  if b.Width() != 4 || b.Height() != 4 { t.Fatalf("unexpected size %dx%d", b.Width(), b.Height()) }
  if got := b.PixelAt(0, 0).Y; got != 2 * 16 + 3 {
    t.Errorf("origin luma: got %d", got)
  }
}

func TestFromImageYCbCr(t *testing.T) {
  img := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
  for i := range img.Y { img.Y[i] = byte(10 * i) }
  for i := range img.Cb { img.Cb[i] = 90; img.Cr[i] = 170 }
  b, err := FromImage(img)
  if err != nil { t.Fatal(err) }
  if got := b.PixelAt(1, 1); got != (Pixel{30, 90, 170}) {
    t.Errorf("got %v", got)
  }
}

func TestToRGBOrientation(t *testing.T) {
  b, _ := New(1, 2)
  b.SetPixel(0, 0, Pixel{10, 128, 128})
  b.SetPixel(0, 1, Pixel{200, 128, 128})

  top := b.ToRGB(false)
  if top[0] != 10 || top[3] != 200 {
    t.Errorf("top-down: got %v", top)
  }
  bottom := b.ToRGB(true)
  if bottom[0] != 200 || bottom[3] != 10 {
    t.Errorf("bottom-up: got %v", bottom)
  }
}

func TestNeutralIsWhite(t *testing.T) {
  b, _ := New(1, 1)
  b.Fill(Neutral)
  rgb := b.ToRGB(false)
  if rgb[0] != 255 || rgb[1] != 255 || rgb[2] != 255 {
    t.Errorf("neutral fill renders as %v", rgb)
  }
}

func TestCloneIsIndependent(t *testing.T) {
  b, _ := FromImage(grayImage(4, 4))
  c := b.Clone()
  if !b.Equal(c) { t.Fatal("clone differs from source") }
  c.SetPixel(1, 1, Pixel{1, 2, 3})
  if b.Equal(c) { t.Error("modifying the clone changed the source") }
}

func TestCopyFrom(t *testing.T) {
  src, _ := FromImage(grayImage(4, 4))
  dst, _ := New(4, 4)
  if err := dst.CopyFrom(src); err != nil { t.Fatal(err) }
  if !dst.Equal(src) { t.Error("copy differs from source") }

  small, _ := New(2, 2)
  if err := small.CopyFrom(src); !errors.Is(err, ErrInvalidDimension) {
    t.Errorf("expected ErrInvalidDimension, got %v", err)
  }
}

func TestClamp(t *testing.T) {
  cases := []struct {
    in   float64
    want byte
  }{
    {-20.5, 0}, {0, 0}, {12.9, 12}, {254.99, 254}, {255, 255}, {1000, 255},
  }
  for _, c := range cases {
    if got := Clamp(c.in); got != c.want {
      t.Errorf("Clamp(%v): got %d, expected %d", c.in, got, c.want)
    }
  }
  if ClampInt(-1) != 0 || ClampInt(256) != 255 || ClampInt(77) != 77 {
    t.Error("ClampInt out of range handling failed")
  }
}
