package tune
// Backward mapped isotropic scaling.

import (
  "fmt"
  "math"

  "github.com/InfinityTools/ycctune/ycc"
)

// Scale resamples original by the given total factor into a new buffer of size dstWidth x dstHeight.
//
// Every destination pixel (i, j) is mapped back to the source position (i / totalFactor, j / totalFactor).
// Positions outside the original image are filled with ycc.Neutral. Reductions always use nearest neighbor sampling.
// Enlargements use nearest neighbor sampling, or bilinear interpolation if useBilinear is set. Bilinear sampling falls
// back to nearest neighbor where the 2x2 neighborhood extends beyond the image edge.
func Scale(original *ycc.Buffer, totalFactor float64, useBilinear bool, dstWidth, dstHeight int) (*ycc.Buffer, error) {
  if original == nil { return nil, ErrNoImage }
  if !validFactor(totalFactor) { return nil, fmt.Errorf("%w: %v", ErrInvalidFactor, totalFactor) }
  out, err := ycc.New(dstWidth, dstHeight)
  if err != nil { return nil, err }

  inv := 1.0 / totalFactor
  bilinear := useBilinear && totalFactor >= 1.0
  sw, sh := float64(original.Width()), float64(original.Height())
  err = processRows(dstHeight, "", func(j int) {
    y := float64(j) * inv
    row := out.Row(j)
    for i := range row {
      x := float64(i) * inv
      switch {
        case x >= sw || y >= sh:
          row[i] = ycc.Neutral
        case bilinear:
          row[i] = sampleBilinear(original, x, y)
        default:
          row[i] = original.PixelAt(int(x), int(y))
      }
    }
  })
  if err != nil { return nil, err }

  return out, nil
}


// Used internally. Returns the bilinear blend of the four pixels surrounding (x, y). Returns the nearest pixel if
// the neighborhood is not fully inside the image. x and y must be non-negative and inside the image.
func sampleBilinear(img *ycc.Buffer, x, y float64) ycc.Pixel {
  xf, yf := int(x), int(y)
  if xf + 1 >= img.Width() || yf + 1 >= img.Height() {
    return img.PixelAt(xf, yf)
  }
  alpha := x - float64(xf)
  beta := y - float64(yf)
  w00 := (1.0 - alpha) * (1.0 - beta)
  w10 := alpha * (1.0 - beta)
  w01 := (1.0 - alpha) * beta
  w11 := alpha * beta

  p00, p10 := img.PixelAt(xf, yf), img.PixelAt(xf + 1, yf)
  p01, p11 := img.PixelAt(xf, yf + 1), img.PixelAt(xf + 1, yf + 1)
  blend := func(c00, c10, c01, c11 byte) byte {
    return ycc.Clamp(w00 * float64(c00) + w10 * float64(c10) + w01 * float64(c01) + w11 * float64(c11) + 0.5)
  }
  return ycc.Pixel{Y: blend(p00.Y, p10.Y, p01.Y, p11.Y),
                   Cb: blend(p00.Cb, p10.Cb, p01.Cb, p11.Cb),
                   Cr: blend(p00.Cr, p10.Cr, p01.Cr, p11.Cr)}
}


// GestureScaleFactor returns the relative scale factor of a gesture from (x0, y0) to (x1, y1), defined as the ratio
// of the distances of both points from the center of a window of the given size. Returns 1 if either distance is 0.
func GestureScaleFactor(x0, y0, x1, y1, winWidth, winHeight int) float64 {
  cx, cy := float64(winWidth) / 2.0, float64(winHeight) / 2.0
  d0 := math.Hypot(float64(x0) - cx, float64(y0) - cy)
  d1 := math.Hypot(float64(x1) - cx, float64(y1) - cy)
  if d0 == 0.0 || d1 == 0.0 { return 1.0 }
  return d1 / d0
}
