package tune
// Local histogram equalization.

import (
  "github.com/InfinityTools/ycctune/ycc"
)

// CountMode defines how the number of neighborhood samples is determined by Equalize.
type CountMode int

const (
  // CountReference counts one sample for every visited column in addition to every visited (column, row) pair.
  // The denominator is larger than the number of compared pixels, so the output never reaches full white.
  CountReference CountMode = iota
  // CountExact counts every visited (column, row) pair exactly once.
  CountExact
)

// String returns a short name of the count mode.
func (m CountMode) String() string {
  switch m {
    case CountExact:  return "exact"
    default:          return "reference"
  }
}


// Equalize replaces the luma of every pixel by its rank within the square neighborhood of the given radius,
// scaled to [0, 255]. The neighborhood is clipped at the image edges. Chroma is passed through.
//
// The source buffer is not modified and serves as the frozen input for all pixels. The result is returned as a new
// buffer of the same size. Radius values below 1 are treated as 1.
func Equalize(img *ycc.Buffer, radius int, mode CountMode) (*ycc.Buffer, error) {
  if img == nil { return nil, ErrNoImage }
  if radius < 1 { radius = 1 }

  out := img.Clone()
  width, height := img.Width(), img.Height()
  err := processRows(height, "Equalizing rows", func(y int) {
    y0, y1 := y - radius, y + radius
    if y0 < 0 { y0 = 0 }
    if y1 >= height { y1 = height - 1 }
    rows := y1 - y0 + 1

    dst := out.Row(y)
    for x := 0; x < width; x++ {
      x0, x1 := x - radius, x + radius
      if x0 < 0 { x0 = 0 }
      if x1 >= width { x1 = width - 1 }
      cols := x1 - x0 + 1

      center := img.PixelAt(x, y).Y
      rank := 0
      for j := y0; j <= y1; j++ {
        for _, p := range img.Row(j)[x0:x1+1] {
          if p.Y <= center { rank++ }
        }
      }

      total := cols * rows
      if mode == CountReference { total += cols }
      dst[x].Y = equalizedLuma(rank, total)
    }
  })
  if err != nil { return nil, err }

  return out, nil
}


// Used internally. Maps a neighborhood rank to the output luma range: floor(256 / total * rank) - 1.
// Evaluated in integer arithmetic, so that rank == total yields exactly 255.
func equalizedLuma(rank, total int) byte {
  return ycc.ClampInt(256 * rank / total - 1)
}
