package graphics
// Provides functionality for palette generation and ordering.

import (
  "fmt"
  "image"
  "image/color"
  "image/draw"
  "math"
  "sort"
  "strings"

  "github.com/InfinityTools/go-imagequant"
  "github.com/InfinityTools/go-logging"
)

// Available palette sort types and flags.
const (
  // Keep palette order as generated by the quantizer.
  SORT_BY_NONE        = 0x00
  // Sort by luma.
  SORT_BY_LUMA        = 0x01
  // Sort by blue-difference chroma.
  SORT_BY_CB          = 0x02
  // Sort by red-difference chroma.
  SORT_BY_CR          = 0x03
  // Sort by distance from the neutral chroma point.
  SORT_BY_SATURATION  = 0x04
  // Sort by chroma angle.
  SORT_BY_HUE         = 0x05

  // Sort colors in reversed order
  SORT_REVERSED       = 0x100
)

var sortNames = map[string]int{
  "none":       SORT_BY_NONE,
  "luma":       SORT_BY_LUMA,
  "cb":         SORT_BY_CB,
  "cr":         SORT_BY_CR,
  "saturation": SORT_BY_SATURATION,
  "hue":        SORT_BY_HUE,
}

type sortEntry struct {
  index int       // the original palette index
  value float64   // the value to sort by
}

type sortTable []sortEntry


// ParseSortFlags converts a sort definition of the form "name[_reversed]" into SORT_xxx flags.
func ParseSortFlags(s string) (int, error) {
  s = strings.ToLower(strings.TrimSpace(s))
  if len(s) == 0 { return SORT_BY_NONE, nil }
  flags := 0
  if strings.HasSuffix(s, "_reversed") {
    flags |= SORT_REVERSED
    s = strings.TrimSuffix(s, "_reversed")
  }
  v, ok := sortNames[s]
  if !ok { return 0, fmt.Errorf("Unknown palette sort type: %q", s) }
  return flags | v, nil
}


// Used internally. Generates a paletted version of the specified image with up to numColors entries.
func quantizeImage(img image.Image, numColors int, dither float32, sortFlags int) (*image.Paletted, error) {
  if numColors < 2 || numColors > 256 { return nil, fmt.Errorf("Number of colors not in range [2, 256]: %d", numColors) }
  if dither < 0.0 || dither > 1.0 { return nil, fmt.Errorf("Dither not in range [0.0, 1.0]: %f", dither) }
  logging.Logln("Starting palette generation")

  att := imagequant.CreateAttributes()
  defer att.Release()

  // Initial quantization settings
  err := att.SetMaxColors(numColors)
  if err != nil { return nil, err }
  err = att.SetQuality(80, 100)
  if err != nil { return nil, err }
  err = att.SetSpeed(3)
  if err != nil { return nil, err }

  // Quantization may fail if minimum quality is too high. Retrying with updated quality settings if needed.
  var qimg *imagequant.Image = nil
  var res *imagequant.Result = nil
  for {
    hist := att.CreateHistogram()
    qimg = att.CreateImage(img, 0.0)
    if qimg == nil { return nil, fmt.Errorf("Unable to process input image") }
    err = att.AddImageToHistogram(hist, qimg)
    if err != nil { return nil, err }

    logging.Logf("Calculating output palette%s\n", logging.ProgressDot(0, 1, 79 - 26))
    res, err = att.QuantizeHistogram(hist)
    if qmin, qmax := att.GetQuality(); err == imagequant.ErrQualityTooLow && qmin > 0 {
      if qspeed := att.GetSpeed(); qspeed > 1 {
        att.SetSpeed(qspeed / 2)
      }
      if qmin >= 5 {
        qmin -= 5
      } else {
        qmin = 0
      }
      att.SetQuality(qmin, qmax)
      logging.Warnf("Quantization failed. Trying again with reduced quality: %d\n", qmin)
    } else {
      break
    }
  }
  if err != nil { return nil, err }

  err = att.SetDitheringLevel(res, dither)
  if err != nil { return nil, err }

  palSrc := att.GetPalette(res)
  if len(palSrc) == 0 { return nil, fmt.Errorf("Error generating output palette") }
  remapped, err := att.WriteRemappedImage(res, qimg)
  if err != nil { return nil, err }

  pal, remap := sortPalette(palSrc, sortFlags)
  imgOut := getRemappedImage(remapped, palSrc, pal, remap)
  logging.Logf("Finished palette generation (%d colors)\n", len(pal))
  return imgOut, nil
}


// Used internally. Returns a paletted image based on palDst. remap maps palSrc indices to palDst indices.
func getRemappedImage(img image.Image, palSrc, palDst color.Palette, remap []int) *image.Paletted {
  if p, ok := img.(*image.Paletted); ok && len(p.Palette) == len(palSrc) {
    imgOut := image.NewPaletted(p.Bounds(), palDst)
    for i, v := range p.Pix {
      imgOut.Pix[i] = uint8(remap[v])
    }
    return imgOut
  }

  // Fall back to nearest color matching
  imgOut := image.NewPaletted(img.Bounds(), palDst)
  draw.Draw(imgOut, imgOut.Bounds(), img, img.Bounds().Min, draw.Src)
  return imgOut
}


// Used internally. Sorts the palette according to sortFlags. Returns the sorted palette and a table that maps
// source indices to output indices.
func sortPalette(pal color.Palette, sortFlags int) (palOut color.Palette, remap []int) {
  palOut = make(color.Palette, len(pal))
  remap = make([]int, len(pal))

  var f func(color.Color) float64
  switch sortFlags & 0xff {
    case SORT_BY_LUMA:        f = func(c color.Color) float64 { y, _, _ := toYCbCr(c); return y }
    case SORT_BY_CB:          f = func(c color.Color) float64 { _, cb, _ := toYCbCr(c); return cb }
    case SORT_BY_CR:          f = func(c color.Color) float64 { _, _, cr := toYCbCr(c); return cr }
    case SORT_BY_SATURATION:  f = saturation
    case SORT_BY_HUE:         f = hue
  }

  if f == nil || len(pal) < 2 {
    copy(palOut, pal)
    for i := range remap { remap[i] = i }
    return
  }

  st := make(sortTable, len(pal))
  for i := 0; i < len(pal); i++ {
    st[i] = sortEntry{index: i, value: f(pal[i])}
  }
  sort.SliceStable(st, func(i, j int) bool { return st[i].value < st[j].value })
  if sortFlags & SORT_REVERSED != 0 {
    for i, j := 0, len(st) - 1; i < j; i, j = i+1, j-1 {
      st[i], st[j] = st[j], st[i]
    }
  }

  for i, e := range st {
    palOut[i] = pal[e.index]
    remap[e.index] = i
  }
  return
}


// Returns the chroma distance from the neutral point, mapped to range [0.0, 1.0]
func saturation(col color.Color) float64 {
  _, cb, cr := toYCbCr(col)
  return math.Min(math.Hypot(cb - 0.5, cr - 0.5) / math.Sqrt2 * 2.0, 1.0)
}

// Returns the chroma angle of the color, mapped to range [0.0, 1.0)
func hue(col color.Color) float64 {
  _, cb, cr := toYCbCr(col)
  if cb == 0.5 && cr == 0.5 { return 0.0 }
  h := math.Atan2(cr - 0.5, cb - 0.5) / (2.0 * math.Pi)
  if h < 0.0 { h += 1.0 }
  return h
}

// Returns the YCbCr components of the color, each mapped to range [0.0, 1.0]
func toYCbCr(col color.Color) (y, cb, cr float64) {
  c := color.YCbCrModel.Convert(col).(color.YCbCr)
  return float64(c.Y) / 255.0, float64(c.Cb) / 255.0, float64(c.Cr) / 255.0
}
