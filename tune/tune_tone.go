package tune
// Brightness and contrast remapping.

import (
  "fmt"

  "github.com/InfinityTools/ycctune/ycc"
)

// AdjustTone reads every pixel of src, applies brightness and contrast and writes the result to the same position in
// dst. Both buffers must be of identical size. dst and src may refer to the same buffer.
//
// brightness adds a luma-proportional term: y' = y + brightness * y / 300.
// contrast is normalized to 1.0 = no change and stretches both chroma channels around the neutral value 128 by the
// factor 1 + (contrast - 1) * 2. All channels are truncated and clamped to [0, 255].
func AdjustTone(dst, src *ycc.Buffer, brightness, contrast float64) error {
  if dst == nil || src == nil { return ErrNoImage }
  if !dst.SameSize(src) {
    return fmt.Errorf("%w: %dx%d -> %dx%d", ErrDimensionMismatch, src.Width(), src.Height(), dst.Width(), dst.Height())
  }

  c := (contrast - 1.0) * 2.0
  srcPix, dstPix := src.Pix(), dst.Pix()
  for i, p := range srcPix {
    dstPix[i] = ycc.Pixel{Y: adjustLuma(p.Y, brightness),
                          Cb: stretchChroma(p.Cb, c),
                          Cr: stretchChroma(p.Cr, c)}
  }
  return nil
}


// Used internally. Applies brightness to a single luma value.
func adjustLuma(y byte, brightness float64) byte {
  fy := float64(y)
  return ycc.Clamp(fy + brightness * fy / 300.0)
}

// Used internally. Stretches a chroma value around 128 by the signed multiplier c.
func stretchChroma(v byte, c float64) byte {
  fv := float64(v)
  return ycc.Clamp(fv + (fv - 128.0) * c)
}
