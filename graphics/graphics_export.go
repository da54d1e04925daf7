package graphics
// Export functionality for tuned images.

import (
  "fmt"
  "image/gif"
  "image/jpeg"
  "image/png"
  "io"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/ycctune/ycc"
  "golang.org/x/image/bmp"
  "golang.org/x/image/tiff"
)

// ExportOptions defines format specific settings for Export.
type ExportOptions struct {
  Format    string    // one of "png", "bmp", "gif", "jpg", "tiff"
  Quality   int       // jpeg quality [1, 100]
  Colors    int       // gif palette size [2, 256]
  Dither    float32   // gif dithering level [0.0, 1.0]
  SortBy    int       // gif palette order, see SORT_xxx constants
}

// DefaultExportOptions returns export options for the specified format with sensible default values.
func DefaultExportOptions(format string) ExportOptions {
  return ExportOptions{Format: format, Quality: 90, Colors: 256, Dither: 0.0, SortBy: SORT_BY_NONE}
}


// Export encodes the buffer in the format defined by opts and writes the result to w.
func Export(w io.Writer, buf *ycc.Buffer, opts ExportOptions) error {
  if w == nil { return fmt.Errorf("No target specified") }
  if buf == nil { return fmt.Errorf("No image specified") }

  img := buf.ToImage()
  format := strings.ToLower(opts.Format)
  logging.Logf("Encoding %dx%d image as %s\n", buf.Width(), buf.Height(), strings.ToUpper(format))
  switch format {
    case "png":
      return png.Encode(w, img)
    case "bmp":
      return bmp.Encode(w, img)
    case "jpg", "jpeg":
      quality := opts.Quality
      if quality < 1 || quality > 100 { return fmt.Errorf("JPEG quality not in range [1, 100]: %d", quality) }
      return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
    case "tif", "tiff":
      return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
    case "gif":
      pimg, err := quantizeImage(img, opts.Colors, opts.Dither, opts.SortBy)
      if err != nil { return err }
      return gif.Encode(w, pimg, &gif.Options{NumColors: len(pimg.Palette)})
    default:
      return fmt.Errorf("Unsupported output format: %q", opts.Format)
  }
}

