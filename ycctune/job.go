package main
// Replays the processing steps of a single job.

import (
  "errors"
  "fmt"
  "os"
  "path/filepath"

  "github.com/InfinityTools/ycctune/config"
  "github.com/InfinityTools/ycctune/graphics"
  "github.com/InfinityTools/ycctune/tune"
  "github.com/InfinityTools/ycctune/ycc"
  "github.com/InfinityTools/go-logging"
)

// Names of gesture steps.
const (
  GESTURE_TONE            = "tone"
  GESTURE_SCALE           = "scale"
  GESTURE_EQUALIZE        = "equalize"
  GESTURE_RADIUS_INC      = "radius+"
  GESTURE_RADIUS_DEC      = "radius-"
)


// Used internally. Loads the input image, applies all processing steps of the job and writes the output image.
// Command line options override the respective configuration settings.
func processJob(cfg *config.JobConfig) error {
  if cfg == nil { return errors.New("No configuration data found") }

  err := appendArgsSteps(cfg)
  if err != nil { return err }

  // general options
  threaded, _ := cfg.GetConfigValueBool(config.SECTION_SETTINGS, config.KEY_THREADED)
  if b, x := argsThreaded(); x { threaded = b }
  tune.SetMultiThreaded(threaded)

  inputFile, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_FILE)
  if s, x := argsInput(); x { inputFile = s }
  if len(inputFile) == 0 { return errors.New("No input file specified") }

  outputFile, _ := cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_FILE)
  if s, x := argsOutput(); x { outputFile = s }
  if len(outputFile) == 0 { return errors.New("No output file specified") }

  opts, err := exportOptions(cfg, outputFile)
  if err != nil { return err }

  buf, err := loadImage(inputFile)
  if err != nil { return err }

  session, err := setupSession(cfg, buf)
  if err != nil { return err }

  numSteps := cfg.GetConfigStepLength()
  logging.Logf("Processing %d step(s)\n", numSteps)
  for idx := 0; idx < numSteps; idx++ {
    step, ok := cfg.GetConfigStep(idx)
    if !ok { return fmt.Errorf("Step %d: not available", idx) }
    logging.Logf("Step %d: %s\n", idx, step.ToString())
    err = replayStep(session, step)
    if err != nil { return fmt.Errorf("Step %d: %v", idx, err) }
  }

  return saveImage(outputFile, session.Current(), opts)
}


// Used internally. Appends --filter and --gesture definitions to the step list of the job.
func appendArgsSteps(cfg *config.JobConfig) error {
  steps, x := argsSteps()
  if !x { return nil }
  for _, s := range steps {
    var step config.Step
    var err error
    if s.gesture {
      step, err = config.ParseGestureStep(s.value)
    } else {
      step, err = config.ParseFilterStep(s.value)
    }
    if err != nil { return err }
    cfg.AppendStep(step)
  }
  return nil
}


// Used internally. Assembles output encoding options from configuration and command line.
func exportOptions(cfg *config.JobConfig, outputFile string) (opts graphics.ExportOptions, err error) {
  format, _ := cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_FORMAT)
  if _, x := argsOutput(); x { format = "" }
  if s, x := argsOutputFormat(); x { format = s }
  format, err = config.NormalizeFormat(format, outputFile)
  if err != nil { return }
  if len(format) == 0 {
    err = fmt.Errorf("Cannot determine output format: %q", outputFile)
    return
  }
  opts = graphics.DefaultExportOptions(format)

  if i, ok := cfg.GetConfigValueInt(config.SECTION_OUTPUT, config.KEY_OUTPUT_QUALITY); ok { opts.Quality = int(i) }
  if i, x := argsJpegQuality(); x { opts.Quality = i }

  if i, ok := cfg.GetConfigValueInt(config.SECTION_OUTPUT, config.KEY_OUTPUT_COLORS); ok { opts.Colors = int(i) }
  if i, x := argsGifColors(); x { opts.Colors = i }

  if f, ok := cfg.GetConfigValueFloat(config.SECTION_OUTPUT, config.KEY_OUTPUT_DITHER); ok { opts.Dither = float32(f) }
  if f, x := argsGifDither(); x { opts.Dither = f }

  sortBy, _ := cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_SORT)
  if s, x := argsGifSort(); x { sortBy = s }
  opts.SortBy, err = graphics.ParseSortFlags(sortBy)
  return
}


// Used internally. Creates a session for the image and applies window and processing settings.
func setupSession(cfg *config.JobConfig, buf *ycc.Buffer) (*tune.Session, error) {
  session, err := tune.NewSession(buf)
  if err != nil { return nil, err }

  winWidth, _ := cfg.GetConfigValueInt(config.SECTION_WINDOW, config.KEY_WINDOW_WIDTH)
  winHeight, _ := cfg.GetConfigValueInt(config.SECTION_WINDOW, config.KEY_WINDOW_HEIGHT)
  if w, h, x := argsWindow(); x { winWidth, winHeight = int64(w), int64(h) }
  if winWidth == 0 { winWidth = int64(buf.Width()) }
  if winHeight == 0 { winHeight = int64(buf.Height()) }
  err = session.SetWindowSize(int(winWidth), int(winHeight))
  if err != nil { return nil, err }

  radius, ok := cfg.GetConfigValueInt(config.SECTION_SETTINGS, config.KEY_RADIUS)
  if !ok { radius = tune.DefaultRadius }
  if i, x := argsRadius(); x { radius = int64(i) }
  session.SetRadius(int(radius))

  bilinear, _ := cfg.GetConfigValueBool(config.SECTION_SETTINGS, config.KEY_BILINEAR)
  if b, x := argsBilinear(); x { bilinear = b }
  session.SetBilinear(bilinear)

  exact, _ := cfg.GetConfigValueBool(config.SECTION_SETTINGS, config.KEY_EXACT)
  if b, x := argsExact(); x { exact = b }
  if exact {
    session.SetCountMode(tune.CountExact)
  } else {
    session.SetCountMode(tune.CountReference)
  }

  logging.Logf("Window: %dx%d, radius: %d, bilinear: %v, count mode: %v\n",
               winWidth, winHeight, session.Radius(), session.GetBilinear(), session.GetCountMode())
  return session, nil
}


// Used internally. Applies a single filter or gesture step to the session.
func replayStep(session *tune.Session, step config.VarStep) error {
  switch step.GetKind() {
    case config.STEP_FILTER:
      filter := tune.CreateFilter(step.GetName())
      if filter == nil { return fmt.Errorf("Unknown filter: %q", step.GetName()) }
      for _, option := range step.GetOptions() {
        err := filter.SetOption(option[0], option[1])
        if err != nil { return fmt.Errorf("Filter %s: %v", step.GetName(), err) }
      }
      return session.ApplyFilters([]tune.Filter{filter})
    case config.STEP_GESTURE:
      return replayGesture(session, step)
    default:
      return fmt.Errorf("Unknown step type: %d", step.GetKind())
  }
}


// Used internally. Replays a gesture. Drag gestures start at the first path position, pass every intermediate
// position and finish at the last one, or are cancelled after the last position if requested.
func replayGesture(session *tune.Session, step config.VarStep) error {
  var kind tune.GestureKind
  switch step.GetName() {
    case GESTURE_TONE:
      kind = tune.GestureTone
    case GESTURE_SCALE:
      kind = tune.GestureScale
    case GESTURE_EQUALIZE:
      _, err := session.Equalize()
      return err
    case GESTURE_RADIUS_INC:
      session.IncreaseRadius()
      return nil
    case GESTURE_RADIUS_DEC:
      session.DecreaseRadius()
      return nil
    default:
      return fmt.Errorf("Unknown gesture: %q", step.GetName())
  }

  path := step.GetPath()
  if len(path) == 0 { return fmt.Errorf("Gesture %s: no position specified", step.GetName()) }
  err := session.StartGesture(kind, int(path[0][0]), int(path[0][1]))
  if err != nil { return err }

  last := len(path) - 1
  if step.IsCancelled() || last == 0 { last = len(path) }
  for _, pos := range path[1:last] {
    _, err = session.MoveGesture(int(pos[0]), int(pos[1]))
    if err != nil {
      session.CancelGesture()
      return err
    }
  }

  if step.IsCancelled() {
    session.CancelGesture()
    logging.Logf("Gesture %s cancelled\n", step.GetName())
    return nil
  }
  pos := path[len(path) - 1]
  _, err = session.FinishGesture(int(pos[0]), int(pos[1]))
  return err
}


// Used internally. Imports the image file into a YCbCr buffer.
func loadImage(fileName string) (*ycc.Buffer, error) {
  if !fileExists(fileName) { return nil, fmt.Errorf("Input file not found: %q", fileName) }
  f, err := os.Open(fileName)
  if err != nil { return nil, fmt.Errorf("Cannot open %q: %v", fileName, err) }
  defer f.Close()

  logging.Logf("Loading image %q\n", fileName)
  g := graphics.Import(f)
  if g.Error() != nil { return nil, fmt.Errorf("Input file %q: %v", fileName, g.Error()) }
  return g.GetBuffer()
}


// Used internally. Encodes the buffer and writes it to the specified file.
func saveImage(fileName string, buf *ycc.Buffer, opts graphics.ExportOptions) (err error) {
  if dir := filepath.Dir(fileName); !directoryExists(dir) {
    return fmt.Errorf("Output directory does not exist: %q", dir)
  }
  f, err := os.Create(fileName)
  if err != nil { return fmt.Errorf("Cannot create %q: %v", fileName, err) }
  defer func() {
    if err2 := f.Close(); err == nil { err = err2 }
  }()

  logging.Logf("Writing image %q\n", fileName)
  err = graphics.Export(f, buf, opts)
  return
}


// Used internally. Returns whether the specified path points to an existing directory.
func directoryExists(dir string) bool {
  if len(dir) == 0 { return true }  // special
  fi, err := os.Stat(dir)
  if err != nil { return false }
  return fi.Mode().IsDir()
}
