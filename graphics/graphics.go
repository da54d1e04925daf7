/*
Package graphics provides functions for loading and saving single-image graphics resources without having to take
care of the details.

YCC Tune is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package graphics

import (
  "bytes"
  "errors"
  "image"
  "image/draw"
  "image/gif"
  "image/jpeg"
  "image/png"
  "io"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/ycctune/ycc"
  "golang.org/x/image/bmp"
  "golang.org/x/image/tiff"
  "golang.org/x/image/webp"
)

// Can be used to identifiy the imported image format
const (
  TYPE_UNKNOWN = -1
  TYPE_BMP  = iota
  TYPE_GIF
  TYPE_JPG
  TYPE_PNG
  TYPE_TIFF
  TYPE_WEBP
)

// The main graphics structure.
type Graphics struct {
  img     image.Image
  frames  int       // number of frames available in the source
  format  int       // see TYPE_xxx constants
  err     error
}


// Import imports a graphics resource pointed to by the ReadSeeker interface.
//
// Only the first frame of multi-frame resources (e.g. animated GIF) is available.
// Use function Error() to check if Import returned successfully.
func Import(rs io.ReadSeeker) *Graphics {
  g := Graphics{format: TYPE_UNKNOWN, err: nil}
  if rs == nil { g.err = errors.New("No source specified"); return &g }

  (&g).importImage(rs)

  return &g
}


// Error returns the error state of the most recent operation on the Graphics. Use ClearError() function to clear the
// current error state.
func (g *Graphics) Error() error {
  return g.err
}


// ClearError clears the error state from the last Graphics operation.
func (g *Graphics) ClearError() {
  g.err = nil
}


// GetImageType returns the format of the imported image. See TYPE_xxx constants.
func (g *Graphics) GetImageType() int {
  if g.err != nil { return TYPE_UNKNOWN }
  return g.format
}


// GetFrameLength returns the number of frames found in the source. Only the first frame is imported.
func (g *Graphics) GetFrameLength() int {
  if g.err != nil { return 0 }
  return g.frames
}


// GetImage returns the imported image.
func (g *Graphics) GetImage() image.Image {
  if g.err != nil { return nil }
  return g.img
}


// GetBuffer returns the imported image converted to a YCbCr buffer.
func (g *Graphics) GetBuffer() (*ycc.Buffer, error) {
  if g.err != nil { return nil, g.err }
  return ycc.FromImage(g.img)
}


// Used internally. Delegates import to more specialized functions.
func (g *Graphics) importImage(rs io.ReadSeeker) {
  hdr := make([]byte, 12)
  n, err := io.ReadFull(rs, hdr)
  if err != nil && err != io.ErrUnexpectedEOF { g.err = err; return }
  hdr = hdr[:n]
  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { g.err = err; return }

  if len(hdr) < 4 {
    g.err = errors.New("Unrecognized input format")
  } else if string(hdr[:2]) == "BM" {
    g.decode(rs, bmp.Decode, TYPE_BMP)
  } else if string(hdr[:3]) == "GIF" {
    g.importImageGIF(rs)
  } else if bytes.Equal(hdr[:3], []byte{0xff, 0xd8, 0xff}) {
    g.decode(rs, jpeg.Decode, TYPE_JPG)
  } else if string(hdr[1:4]) == "PNG" {
    g.decode(rs, png.Decode, TYPE_PNG)
  } else if string(hdr[:4]) == "II*\x00" || string(hdr[:4]) == "MM\x00*" {
    g.decode(rs, tiff.Decode, TYPE_TIFF)
  } else if len(hdr) >= 12 && string(hdr[:4]) == "RIFF" && string(hdr[8:12]) == "WEBP" {
    g.decode(rs, webp.Decode, TYPE_WEBP)
  } else {
    // unsupported
    g.err = errors.New("Unrecognized input format")
  }
}


// Used internally. Imports a single-frame resource with the specified decoder.
func (g *Graphics) decode(r io.Reader, decoder func(io.Reader) (image.Image, error), format int) {
  g.img, g.err = decoder(r)
  if g.err != nil { return }
  g.frames = 1
  g.format = format
}


// Used internally. Imports the first frame of a GIF resource.
func (g *Graphics) importImageGIF(r io.Reader) {
  data, err := gif.DecodeAll(r)
  if err != nil { g.err = err; return }
  if len(data.Image) == 0 { g.err = errors.New("GIF: No frames available"); return }
  if len(data.Image) > 1 {
    logging.Warnf("GIF: Found %d frames. Using first frame only.\n", len(data.Image))
  }

  // Rendering first frame onto global canvas
  imgCur := data.Image[0]
  rect := image.Rect(0, 0, data.Config.Width, data.Config.Height)
  if rect.Empty() { rect = imgCur.Bounds() }
  img := image.NewRGBA(rect)
  draw.Draw(img, imgCur.Bounds(), imgCur, imgCur.Bounds().Min, draw.Over)
  g.img = img
  g.frames = len(data.Image)
  g.format = TYPE_GIF
}
