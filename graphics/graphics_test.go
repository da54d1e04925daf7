package graphics

import (
  "bytes"
  "image/color"
  "image/gif"
  "testing"

  "github.com/InfinityTools/ycctune/ycc"
)

func testBuffer(t *testing.T) *ycc.Buffer {
  t.Helper()
  b, err := ycc.New(8, 6)
  if err != nil { t.Fatal(err) }
  for y := 0; y < 6; y++ {
    for x := 0; x < 8; x++ {
      switch {
        case x < 4 && y < 3: b.SetPixel(x, y, ycc.Pixel{0, 128, 128})
        case x < 4:          b.SetPixel(x, y, ycc.Neutral)
        case y < 3:          b.SetPixel(x, y, ycc.Pixel{76, 85, 255})
        default:             b.SetPixel(x, y, ycc.Pixel{29, 255, 107})
      }
    }
  }
  return b
}


func TestExportImportLossless(t *testing.T) {
  src := testBuffer(t)
  cases := []struct {
    format  string
    typ     int
  }{
    {"png", TYPE_PNG},
    {"bmp", TYPE_BMP},
    {"tiff", TYPE_TIFF},
  }
  for _, c := range cases {
    var buf bytes.Buffer
    if err := Export(&buf, src, DefaultExportOptions(c.format)); err != nil {
      t.Errorf("%s: export failed: %v", c.format, err)
      continue
    }
    g := Import(bytes.NewReader(buf.Bytes()))
    if g.Error() != nil {
      t.Errorf("%s: import failed: %v", c.format, g.Error())
      continue
    }
    if g.GetImageType() != c.typ {
      t.Errorf("%s: got type %d, expected %d", c.format, g.GetImageType(), c.typ)
    }
    out, err := g.GetBuffer()
    if err != nil { t.Errorf("%s: %v", c.format, err); continue }
    if !out.SameSize(src) {
      t.Errorf("%s: got size %dx%d", c.format, out.Width(), out.Height())
      continue
    }
    // black and white survive the RGB round trip unchanged
    if p := out.PixelAt(0, 0); p != (ycc.Pixel{0, 128, 128}) {
      t.Errorf("%s: (0,0): got %v", c.format, p)
    }
    if p := out.PixelAt(0, 5); p != ycc.Neutral {
      t.Errorf("%s: (0,5): got %v", c.format, p)
    }
  }
}

func TestExportJpeg(t *testing.T) {
  src := testBuffer(t)
  var buf bytes.Buffer
  opts := DefaultExportOptions("jpg")
  opts.Quality = 0
  if err := Export(&buf, src, opts); err == nil {
    t.Errorf("quality 0 accepted")
  }
  buf.Reset()
  opts.Quality = 95
  if err := Export(&buf, src, opts); err != nil { t.Fatal(err) }
  g := Import(bytes.NewReader(buf.Bytes()))
  if g.Error() != nil { t.Fatal(g.Error()) }
  if g.GetImageType() != TYPE_JPG || g.GetFrameLength() != 1 {
    t.Errorf("unexpected type %d, frames %d", g.GetImageType(), g.GetFrameLength())
  }
}

func TestExportGif(t *testing.T) {
  src := testBuffer(t)
  var buf bytes.Buffer
  opts := DefaultExportOptions("gif")
  opts.Colors = 8
  opts.SortBy = SORT_BY_LUMA
  if err := Export(&buf, src, opts); err != nil { t.Fatal(err) }

  img, err := gif.Decode(bytes.NewReader(buf.Bytes()))
  if err != nil { t.Fatal(err) }
  if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
    t.Errorf("unexpected size %v", img.Bounds())
  }

  g := Import(bytes.NewReader(buf.Bytes()))
  if g.Error() != nil { t.Fatal(g.Error()) }
  if g.GetImageType() != TYPE_GIF {
    t.Errorf("got type %d, expected %d", g.GetImageType(), TYPE_GIF)
  }
}

func TestExportErrors(t *testing.T) {
  src := testBuffer(t)
  var buf bytes.Buffer
  if err := Export(&buf, src, DefaultExportOptions("webp")); err == nil {
    t.Errorf("unsupported format accepted")
  }
  if err := Export(&buf, nil, DefaultExportOptions("png")); err == nil {
    t.Errorf("nil buffer accepted")
  }
  opts := DefaultExportOptions("gif")
  opts.Colors = 1
  if err := Export(&buf, src, opts); err == nil {
    t.Errorf("palette size 1 accepted")
  }
}

func TestImportUnknown(t *testing.T) {
  for _, data := range [][]byte{[]byte("hello world, no image"), []byte("BA"), {}} {
    g := Import(bytes.NewReader(data))
    if g.Error() == nil {
      t.Errorf("%q: expected error", data)
    }
    if g.GetImageType() != TYPE_UNKNOWN || g.GetImage() != nil {
      t.Errorf("%q: unexpected result", data)
    }
  }
  if g := Import(nil); g.Error() == nil {
    t.Errorf("nil source accepted")
  }
}


func TestSortPalette(t *testing.T) {
  pal := color.Palette{
    color.RGBA{255, 255, 255, 255},
    color.RGBA{0, 0, 0, 255},
    color.RGBA{128, 128, 128, 255},
  }
  out, remap := sortPalette(pal, SORT_BY_LUMA)
  if out[0] != pal[1] || out[1] != pal[2] || out[2] != pal[0] {
    t.Errorf("unexpected order: %v", out)
  }
  for i := range pal {
    if out[remap[i]] != pal[i] {
      t.Errorf("remap[%d] = %d does not point to the source color", i, remap[i])
    }
  }

  out, _ = sortPalette(pal, SORT_BY_LUMA | SORT_REVERSED)
  if out[0] != pal[0] || out[2] != pal[1] {
    t.Errorf("unexpected reversed order: %v", out)
  }

  out, remap = sortPalette(pal, SORT_BY_NONE)
  for i := range pal {
    if out[i] != pal[i] || remap[i] != i {
      t.Errorf("index %d: unsorted palette modified", i)
    }
  }
}

func TestParseSortFlags(t *testing.T) {
  cases := map[string]int{
    "":               SORT_BY_NONE,
    "luma":           SORT_BY_LUMA,
    " HUE ":          SORT_BY_HUE,
    "cr_reversed":    SORT_BY_CR | SORT_REVERSED,
  }
  for s, want := range cases {
    got, err := ParseSortFlags(s)
    if err != nil || got != want {
      t.Errorf("%q: got %#x (%v), expected %#x", s, got, err, want)
    }
  }
  if _, err := ParseSortFlags("alpha"); err == nil {
    t.Errorf("unknown sort type accepted")
  }
}
