package tune
// Gesture state handling.

import (
  "fmt"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/ycctune/ycc"
)

// GestureState describes whether and which continuous gesture is active.
type GestureState int

const (
  Idle GestureState = iota
  DraggingTone
  DraggingScale
)

// GestureKind selects the operation controlled by a gesture.
type GestureKind int

const (
  // GestureTone maps horizontal cursor movement to brightness and vertical movement to contrast.
  GestureTone GestureKind = iota
  // GestureScale maps the distance of the cursor from the window center to a scale factor.
  GestureScale
)

// String returns the name of the gesture state.
func (g GestureState) String() string {
  switch g {
    case Idle:          return "idle"
    case DraggingTone:  return "tone"
    case DraggingScale: return "scale"
    default:            return fmt.Sprintf("GestureState(%d)", int(g))
  }
}

// String returns the name of the gesture kind.
func (k GestureKind) String() string {
  switch k {
    case GestureTone:   return "tone"
    case GestureScale:  return "scale"
    default:            return fmt.Sprintf("GestureKind(%d)", int(k))
  }
}


// State returns the current gesture state.
func (s *Session) State() GestureState { return s.state }


// StartGesture takes a working snapshot of the current image and enters the dragging state for the specified
// gesture kind. (x, y) is the cursor position in window coordinates.
func (s *Session) StartGesture(kind GestureKind, x, y int) error {
  if s.state != Idle { return fmt.Errorf("%w: cannot start %v gesture while %v", ErrGestureState, kind, s.state) }
  switch kind {
    case GestureTone:   s.state = DraggingTone
    case GestureScale:  s.state = DraggingScale
    default:            return fmt.Errorf("%w: unknown gesture kind %v", ErrGestureState, kind)
  }
  s.BeginGesture()
  s.startX, s.startY = x, y
  return nil
}


// MoveGesture updates the active gesture with the cursor position (x, y). Tone gestures are re-applied from the
// working snapshot, so the result only depends on start and current position. Scale gestures are evaluated when
// the gesture is finished.
func (s *Session) MoveGesture(x, y int) (*ycc.Buffer, error) {
  switch s.state {
    case DraggingTone:
      brightness, contrast := s.toneParams(x, y)
      return s.ApplyTone(s.snapshot, brightness, contrast)
    case DraggingScale:
      return s.current, nil
    default:
      return nil, fmt.Errorf("%w: no active gesture", ErrGestureState)
  }
}


// FinishGesture completes the active gesture at cursor position (x, y), discards the working snapshot and returns to
// the idle state. Scale gestures resample the original image at window size.
func (s *Session) FinishGesture(x, y int) (buf *ycc.Buffer, err error) {
  switch s.state {
    case DraggingTone:
      brightness, contrast := s.toneParams(x, y)
      buf, err = s.ApplyTone(s.snapshot, brightness, contrast)
    case DraggingScale:
      factor := GestureScaleFactor(s.startX, s.startY, x, y, s.winWidth, s.winHeight)
      if factor == 1.0 { logging.Logln("Scale gesture without distance: ignored") }
      buf, err = s.ApplyScale(factor, s.bilinear, s.winWidth, s.winHeight)
    default:
      return nil, fmt.Errorf("%w: no active gesture", ErrGestureState)
  }
  s.EndGesture()
  s.state = Idle
  return
}


// CancelGesture restores the current image from the working snapshot and returns to the idle state.
// Does nothing if no gesture is active.
func (s *Session) CancelGesture() {
  if s.state == Idle { return }
  if s.snapshot != nil { s.current = s.snapshot }
  s.EndGesture()
  s.state = Idle
}


// Radius returns the local equalization radius.
func (s *Session) Radius() int { return s.radius }

// SetRadius sets the local equalization radius. Values below 1 are treated as 1.
func (s *Session) SetRadius(radius int) {
  if radius < 1 { radius = 1 }
  s.radius = radius
}

// IncreaseRadius increments the local equalization radius by one and returns the new value.
func (s *Session) IncreaseRadius() int {
  s.SetRadius(s.radius + 1)
  logging.Logf("Radius = %d\n", s.radius)
  return s.radius
}

// DecreaseRadius decrements the local equalization radius by one and returns the new value. The radius does not go
// below 1.
func (s *Session) DecreaseRadius() int {
  s.SetRadius(s.radius - 1)
  logging.Logf("Radius = %d\n", s.radius)
  return s.radius
}

// Equalize performs local histogram equalization on the current image with the session radius.
func (s *Session) Equalize() (*ycc.Buffer, error) {
  return s.ApplyLocalEqualization(s.radius)
}


// Used internally. Maps the cursor offset from the gesture start to brightness and contrast values.
func (s *Session) toneParams(x, y int) (brightness, contrast float64) {
  brightness = 255.0 * float64(x - s.startX) / float64(s.winWidth)
  contrast = 1.0 + float64(y - s.startY) / float64(s.winHeight)
  return
}
