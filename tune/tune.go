/*
Package tune implements the pixel transform engine: brightness/contrast remapping, local histogram equalization and
isotropic scaling of YCbCr buffers, together with the session that keeps the original image, the displayed image
and the gesture state apart.

None of the functions or methods in this package perform internal locking. A Session and the buffers passed to
AdjustTone, Equalize and Scale must not be used concurrently without external synchronization.

YCC Tune is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package tune

import (
  "errors"
  "fmt"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/ycctune/ycc"
)

var (
  // ErrNoImage is returned when an operation is invoked without a source buffer.
  ErrNoImage            = errors.New("no image available")
  // ErrDimensionMismatch is returned when source and destination buffers differ in size.
  ErrDimensionMismatch  = errors.New("buffer dimensions do not match")
  // ErrInvalidFactor is returned for scale factors that are not finite positive numbers.
  ErrInvalidFactor      = errors.New("invalid scale factor")
  // ErrGestureState is returned when a gesture transition is not allowed in the current state.
  ErrGestureState       = errors.New("invalid gesture state")
)

const (
  // DefaultRadius is the initial local equalization radius of a new session.
  DefaultRadius = 5
)

// Session holds the buffers and settings of a single tuning session.
type Session struct {
  original    *ycc.Buffer   // never modified, source of every scale operation
  current     *ycc.Buffer   // the buffer shown to the user
  snapshot    *ycc.Buffer   // copy of current taken at gesture start
  factor      float64       // cumulative scale factor relative to original
  winWidth    int
  winHeight   int
  radius      int           // local equalization radius
  countMode   CountMode
  bilinear    bool          // use bilinear interpolation for scale gestures
  state       GestureState
  startX      int           // cursor position at gesture start
  startY      int
}


// NewSession creates a session for the given original image. The window size is initialized to the image size.
func NewSession(original *ycc.Buffer) (*Session, error) {
  s := Session{radius: DefaultRadius, countMode: CountReference}
  if err := s.LoadOriginal(original); err != nil { return nil, err }
  return &s, nil
}


// LoadOriginal replaces both the original and the current image by the specified buffer. The cumulative scale factor
// is reset to 1, the window size is set to the image size and an active gesture is aborted.
func (s *Session) LoadOriginal(buf *ycc.Buffer) error {
  if buf == nil { return ErrNoImage }
  s.original = buf.Clone()
  s.current = buf.Clone()
  s.snapshot = nil
  s.factor = 1.0
  s.winWidth, s.winHeight = buf.Width(), buf.Height()
  s.state = Idle
  logging.Logf("Loaded image (%dx%d)\n", buf.Width(), buf.Height())
  return nil
}


// Original returns the unmodified source image. The buffer must not be modified.
func (s *Session) Original() *ycc.Buffer { return s.original }

// Current returns the image that results from the most recent operation.
func (s *Session) Current() *ycc.Buffer { return s.current }

// Snapshot returns the working snapshot of the active gesture, or nil.
func (s *Session) Snapshot() *ycc.Buffer { return s.snapshot }

// ScaleFactor returns the cumulative scale factor relative to the original image.
func (s *Session) ScaleFactor() float64 { return s.factor }

// WindowSize returns the current window dimension.
func (s *Session) WindowSize() (int, int) { return s.winWidth, s.winHeight }

// SetWindowSize updates the window dimension used by gestures. Does not modify the current image.
func (s *Session) SetWindowSize(width, height int) error {
  if width <= 0 || height <= 0 {
    return fmt.Errorf("window: %w: %dx%d", ycc.ErrInvalidDimension, width, height)
  }
  s.winWidth, s.winHeight = width, height
  return nil
}

// GetBilinear returns whether scale gestures use bilinear interpolation when enlarging.
func (s *Session) GetBilinear() bool { return s.bilinear }

// SetBilinear defines whether scale gestures use bilinear interpolation when enlarging.
func (s *Session) SetBilinear(set bool) { s.bilinear = set }

// GetCountMode returns the neighborhood count mode used by local equalization.
func (s *Session) GetCountMode() CountMode { return s.countMode }

// SetCountMode sets the neighborhood count mode used by local equalization.
func (s *Session) SetCountMode(mode CountMode) { s.countMode = mode }


// BeginGesture copies the current image into the working snapshot and returns it.
func (s *Session) BeginGesture() *ycc.Buffer {
  s.snapshot = s.current.Clone()
  return s.snapshot
}

// EndGesture discards the working snapshot.
func (s *Session) EndGesture() {
  s.snapshot = nil
}


// ApplyTone applies brightness and contrast to snapshot and stores the result as current image.
// Repeated calls with the same snapshot do not accumulate.
func (s *Session) ApplyTone(snapshot *ycc.Buffer, brightness, contrast float64) (*ycc.Buffer, error) {
  if snapshot == nil { return nil, ErrNoImage }
  dst := s.current
  if !dst.SameSize(snapshot) {
    var err error
    dst, err = ycc.New(snapshot.Width(), snapshot.Height())
    if err != nil { return nil, err }
  }
  if err := AdjustTone(dst, snapshot, brightness, contrast); err != nil { return nil, err }
  s.current = dst
  logging.Logf("Adjusted brightness = %f, contrast = %f\n", brightness, contrast)
  return s.current, nil
}


// ApplyLocalEqualization performs local histogram equalization on the current image with the given radius.
// Radius values below 1 are treated as 1.
func (s *Session) ApplyLocalEqualization(radius int) (*ycc.Buffer, error) {
  return s.applyEqualization(radius, s.countMode)
}

// Used internally. Equalizes the current image with an explicit count mode.
func (s *Session) applyEqualization(radius int, mode CountMode) (*ycc.Buffer, error) {
  if radius < 1 {
    logging.Warnf("Local equalization radius %d too small. Using 1 instead.\n", radius)
    radius = 1
  }
  out, err := Equalize(s.current, radius, mode)
  if err != nil { return nil, err }
  s.current = out
  logging.Logf("Performed local histogram equalization with radius %d\n", radius)
  return s.current, nil
}


// ApplyScale multiplies relativeFactor into the cumulative scale factor and resamples the original image into a
// new current image of size destWidth x destHeight.
//
// A relative factor of exactly 1 leaves the current image untouched if it already has the requested size.
// On error neither the current image nor the cumulative factor is modified.
func (s *Session) ApplyScale(relativeFactor float64, useBilinear bool, destWidth, destHeight int) (*ycc.Buffer, error) {
  if !validFactor(relativeFactor) {
    return nil, fmt.Errorf("%w: %v", ErrInvalidFactor, relativeFactor)
  }
  if relativeFactor == 1.0 && s.current.Width() == destWidth && s.current.Height() == destHeight {
    logging.Logln("Scale by 1: nothing to do")
    return s.current, nil
  }

  total := s.factor * relativeFactor
  out, err := Scale(s.original, total, useBilinear, destWidth, destHeight)
  if err != nil { return nil, err }
  s.current = out
  s.factor = total
  logging.Logf("Scaled image by %f (total: %f)\n", relativeFactor, total)
  return s.current, nil
}


// ExportForDisplay returns the current image as interleaved RGB data with the last row first.
func (s *Session) ExportForDisplay() []byte {
  return s.current.ToRGB(true)
}

// ExportForPersistence returns the current image as interleaved RGB data with the first row first.
func (s *Session) ExportForPersistence() []byte {
  return s.current.ToRGB(false)
}
