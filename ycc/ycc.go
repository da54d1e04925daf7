/*
Package ycc provides the pixel buffer used by the tuning engine. Pixels are stored as 8-bit luma/chroma triplets
(Y, Cb, Cr) in the full-range JFIF color space.

YCC Tune is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package ycc

import (
  "errors"
  "fmt"
  "image"
  "image/color"
  "image/draw"
)

// ErrInvalidDimension is returned when a buffer is requested with non-positive width or height.
var ErrInvalidDimension = errors.New("invalid buffer dimension")

// Pixel is a single luma/chroma sample.
type Pixel struct {
  Y, Cb, Cr byte
}

// Neutral is the fill color for destination pixels without a source. It is rendered as white.
var Neutral = Pixel{Y: 255, Cb: 128, Cr: 128}

// Buffer is a fixed size grid of pixels stored in row-major order.
type Buffer struct {
  width, height int
  pix           []Pixel
}


// New creates a buffer of the given dimension. All pixels are initialized to black with neutral chroma.
func New(width, height int) (*Buffer, error) {
  if width <= 0 || height <= 0 {
    return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
  }
  b := Buffer{width: width, height: height, pix: make([]Pixel, width * height)}
  for i := range b.pix {
    b.pix[i] = Pixel{0, 128, 128}
  }
  return &b, nil
}


// FromImage converts an arbitrary image into a new buffer. The image origin is mapped to (0, 0).
func FromImage(img image.Image) (*Buffer, error) {
  if img == nil { return nil, errors.New("no source image specified") }
  bounds := img.Bounds()
  b, err := New(bounds.Dx(), bounds.Dy())
  if err != nil { return nil, err }

  if imgYCC, ok := img.(*image.YCbCr); ok {
    // decoded JPEGs can be read without a round trip through RGB
    for y := 0; y < b.height; y++ {
      row := b.Row(y)
      for x := range row {
        yi := imgYCC.YOffset(bounds.Min.X + x, bounds.Min.Y + y)
        ci := imgYCC.COffset(bounds.Min.X + x, bounds.Min.Y + y)
        row[x] = Pixel{imgYCC.Y[yi], imgYCC.Cb[ci], imgYCC.Cr[ci]}
      }
    }
    return b, nil
  }

  rgba, ok := img.(*image.RGBA)
  if !ok {
    rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
    draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
  }
  x0, y0 := rgba.Bounds().Min.X, rgba.Bounds().Min.Y
  for y := 0; y < b.height; y++ {
    ofs := rgba.PixOffset(x0, y0 + y)
    row := b.Row(y)
    for x := range row {
      r, g, bl := unpremultiply(rgba.Pix[ofs:ofs+4])
      yy, cb, cr := color.RGBToYCbCr(r, g, bl)
      row[x] = Pixel{yy, cb, cr}
      ofs += 4
    }
  }
  return b, nil
}


// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Bounds returns the buffer dimension as a rectangle anchored at (0, 0).
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// Pix returns the underlying row-major pixel storage. Changes are reflected in the buffer.
func (b *Buffer) Pix() []Pixel { return b.pix }

// Row returns the pixels of row y. Changes are reflected in the buffer.
func (b *Buffer) Row(y int) []Pixel {
  ofs := y * b.width
  return b.pix[ofs:ofs+b.width]
}

// InBounds returns whether (x, y) addresses a pixel of the buffer.
func (b *Buffer) InBounds(x, y int) bool {
  return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// PixelAt returns the pixel at column x and row y. Coordinates must be in bounds.
func (b *Buffer) PixelAt(x, y int) Pixel {
  return b.pix[y * b.width + x]
}

// SetPixel assigns the pixel at column x and row y. Coordinates must be in bounds.
func (b *Buffer) SetPixel(x, y int, p Pixel) {
  b.pix[y * b.width + x] = p
}

// Fill assigns p to every pixel.
func (b *Buffer) Fill(p Pixel) {
  for i := range b.pix {
    b.pix[i] = p
  }
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
  c := Buffer{width: b.width, height: b.height, pix: make([]Pixel, len(b.pix))}
  copy(c.pix, b.pix)
  return &c
}

// SameSize returns whether both buffers have identical dimensions.
func (b *Buffer) SameSize(o *Buffer) bool {
  return o != nil && b.width == o.width && b.height == o.height
}

// CopyFrom overwrites the buffer content with the content of src. Both buffers must be of the same size.
func (b *Buffer) CopyFrom(src *Buffer) error {
  if !b.SameSize(src) {
    return fmt.Errorf("%w: cannot copy %dx%d into %dx%d", ErrInvalidDimension, src.width, src.height, b.width, b.height)
  }
  copy(b.pix, src.pix)
  return nil
}

// Equal returns whether both buffers have the same dimension and pixel content.
func (b *Buffer) Equal(o *Buffer) bool {
  if !b.SameSize(o) { return false }
  for i := range b.pix {
    if b.pix[i] != o.pix[i] { return false }
  }
  return true
}


// ToRGB returns the buffer content as interleaved 8-bit RGB triplets. Set bottomUp to store the last row first,
// as expected by raster APIs with a lower-left origin.
func (b *Buffer) ToRGB(bottomUp bool) []byte {
  out := make([]byte, b.width * b.height * 3)
  ofs := 0
  for i := 0; i < b.height; i++ {
    y := i
    if bottomUp { y = b.height - 1 - i }
    for _, p := range b.Row(y) {
      out[ofs], out[ofs+1], out[ofs+2] = color.YCbCrToRGB(p.Y, p.Cb, p.Cr)
      ofs += 3
    }
  }
  return out
}

// ToImage returns an opaque RGBA image of the buffer content.
func (b *Buffer) ToImage() *image.RGBA {
  img := image.NewRGBA(b.Bounds())
  for y := 0; y < b.height; y++ {
    ofs := y * img.Stride
    for _, p := range b.Row(y) {
      r, g, bl := color.YCbCrToRGB(p.Y, p.Cb, p.Cr)
      img.Pix[ofs], img.Pix[ofs+1], img.Pix[ofs+2], img.Pix[ofs+3] = r, g, bl, 255
      ofs += 4
    }
  }
  return img
}


// Clamp rounds v toward zero and limits the result to [0, 255].
func Clamp(v float64) byte {
  if v <= 0.0 { return 0 }
  if v >= 255.0 { return 255 }
  return byte(v)
}

// ClampInt limits v to [0, 255].
func ClampInt(v int) byte {
  if v < 0 { return 0 }
  if v > 255 { return 255 }
  return byte(v)
}


// Used internally. Converts a slice[0:4] of premultiplied RGBA values into straight RGB values.
func unpremultiply(slice []byte) (r, g, b byte) {
  a := uint32(slice[3])
  if a == 0xff { return slice[0], slice[1], slice[2] }
  if a == 0 { return 0, 0, 0 }
  r = byte(uint32(slice[0]) * 0xff / a)
  g = byte(uint32(slice[1]) * 0xff / a)
  b = byte(uint32(slice[2]) * 0xff / a)
  return
}
