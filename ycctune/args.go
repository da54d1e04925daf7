package main
// Handles command line arguments for ycctune.

import (
  "errors"
  "fmt"
  "os"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-cmdargs"
  "github.com/InfinityTools/go-logging"
)

const (
  CMDOPT_HELP = "help"
  CMDOPT_VERSION = "version"
  CMDOPT_VERBOSE = "verbose"
  CMDOPT_SILENT = "silent"
  CMDOPT_LOG_STYLE = "log-style"
  CMDOPT_THREADED = "threaded"
  CMDOPT_NO_THREADED = "no-threaded"
  CMDOPT_INPUT = "input"
  CMDOPT_OUTPUT = "output"
  CMDOPT_OUTPUT_FORMAT = "output-format"
  CMDOPT_JPEG_QUALITY = "jpeg-quality"
  CMDOPT_GIF_COLORS = "gif-colors"
  CMDOPT_GIF_DITHER = "gif-dither"
  CMDOPT_GIF_SORT = "gif-sort"
  CMDOPT_WINDOW = "window"
  CMDOPT_RADIUS = "radius"
  CMDOPT_BILINEAR = "bilinear"
  CMDOPT_NO_BILINEAR = "no-bilinear"
  CMDOPT_EXACT = "exact"
  CMDOPT_FILTER = "filter"
  CMDOPT_GESTURE = "gesture"
)

type OptBool struct { value bool; set bool }
type OptInt struct { value int; set bool }
type OptFloat struct { value float32; set bool }
type OptText struct { value string; set bool }
type OptSize struct { width, height int; set bool }

type CmdOptions struct {
  help                OptBool
  version             OptBool
  verbose             OptBool
  logStyle            OptBool
  threaded            OptBool
  input               OptText
  output              OptText
  outputFormat        OptText
  jpegQuality         OptInt
  gifColors           OptInt
  gifDither           OptFloat
  gifSort             OptText
  window              OptSize
  radius              OptInt
  bilinear            OptBool
  exact               OptBool
  steps               []OptStep
  optionsLength       int
  argSelf             string
  argsExtra           []string
}

// OptStep stores a --filter or --gesture definition in order of appearance.
type OptStep struct {
  gesture bool
  value   string
}

var cmdOptions  CmdOptions


func loadArgs(args []string) error {
  cmdOptions = CmdOptions{}
  params := cmdargs.Create()
  params.AddParameter(CMDOPT_HELP, nil, 0)
  params.AddParameter(CMDOPT_VERSION, nil, 0)
  params.AddParameter(CMDOPT_VERBOSE, nil, 0)
  params.AddParameter(CMDOPT_SILENT, nil, 0)
  params.AddParameter(CMDOPT_LOG_STYLE, nil, 0)
  params.AddParameter(CMDOPT_THREADED, nil, 0)
  params.AddParameter(CMDOPT_NO_THREADED, nil, 0)
  params.AddParameter(CMDOPT_INPUT, nil, 1)
  params.AddParameter(CMDOPT_OUTPUT, nil, 1)
  params.AddParameter(CMDOPT_OUTPUT_FORMAT, nil, 1)
  params.AddParameter(CMDOPT_JPEG_QUALITY, nil, 1)
  params.AddParameter(CMDOPT_GIF_COLORS, nil, 1)
  params.AddParameter(CMDOPT_GIF_DITHER, nil, 1)
  params.AddParameter(CMDOPT_GIF_SORT, nil, 1)
  params.AddParameter(CMDOPT_WINDOW, nil, 1)
  params.AddParameter(CMDOPT_RADIUS, nil, 1)
  params.AddParameter(CMDOPT_BILINEAR, nil, 0)
  params.AddParameter(CMDOPT_NO_BILINEAR, nil, 0)
  params.AddParameter(CMDOPT_EXACT, nil, 0)
  params.AddParameter(CMDOPT_FILTER, nil, 1)
  params.AddParameter(CMDOPT_GESTURE, nil, 1)

  err := params.Evaluate(args)
  if err != nil { return err }

  // validating extra arguments
  cmdOptions.argSelf = params.GetArgSelf()
  cmdOptions.argsExtra = make([]string, 0)
  for i := 0; i < params.GetArgExtraLength(); i++ {
    s := params.GetArgExtra(i).ToString()
    if s == "-" {
      // Add Stdin as is
      cmdOptions.argsExtra = append(cmdOptions.argsExtra, s)
    } else {
      // Expanding wildcard
      expanded := params.GetExpandedArgExtra(i)
      if len(expanded) == 0 { expanded = []string{s} }  // falling back to check directly
      for _, name := range expanded {
        fi, err := os.Stat(name)
        if err != nil { return fmt.Errorf("Configuration file at %d: %v", len(cmdOptions.argsExtra), err) }
        if !fi.Mode().IsRegular() { return fmt.Errorf("Configuration file does not exist: %q", name) }
        cmdOptions.argsExtra = append(cmdOptions.argsExtra, name)
      }
    }
  }

  // validating options
  cmdOptions.steps = make([]OptStep, 0)
  cmdOptions.optionsLength = 0
  for idx := 0; idx < params.GetArgLength(); idx++ {
    arg, err := params.GetArgAt(idx)
    if err != nil {
      logging.Warnf("Could not parse command line option at index %d. Skipping...\n", idx)
      continue
    }
    switch arg.Name {
      case CMDOPT_HELP:
        if !cmdOptions.help.set { cmdOptions.optionsLength++ }
        cmdOptions.help = OptBool{true, true}
        return nil
      case CMDOPT_VERSION:
        if !cmdOptions.version.set { cmdOptions.optionsLength++ }
        cmdOptions.version = OptBool{true, true}
        return nil
      case CMDOPT_VERBOSE:
        if !cmdOptions.verbose.set { cmdOptions.optionsLength++ }
        cmdOptions.verbose = OptBool{true, true}
      case CMDOPT_SILENT:
        if !cmdOptions.verbose.set { cmdOptions.optionsLength++ }
        cmdOptions.verbose = OptBool{false, true}
      case CMDOPT_LOG_STYLE:
        if !cmdOptions.logStyle.set { cmdOptions.optionsLength++ }
        cmdOptions.logStyle = OptBool{true, true}
      case CMDOPT_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{true, true}
      case CMDOPT_NO_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{false, true}
      case CMDOPT_INPUT:
        if !cmdOptions.input.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if len(s) == 0 { return fmt.Errorf("Option %q: No input file specified", arg.Name) }
          cmdOptions.input = OptText{s, true}
        }
      case CMDOPT_OUTPUT:
        if !cmdOptions.output.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if len(s) == 0 { return fmt.Errorf("Option %q: No output file specified", arg.Name) }
          cmdOptions.output = OptText{s, true}
        }
      case CMDOPT_OUTPUT_FORMAT:
        if !cmdOptions.outputFormat.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.outputFormat = OptText{arg.Arguments[0].ToString(), true}
        }
      case CMDOPT_JPEG_QUALITY:
        if !cmdOptions.jpegQuality.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if i, x := arg.Arguments[0].Int(); x && i >= 1 && i <= 100 {
            cmdOptions.jpegQuality = OptInt{int(i), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_GIF_COLORS:
        if !cmdOptions.gifColors.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if i, x := arg.Arguments[0].Int(); x && i >= 2 && i <= 256 {
            cmdOptions.gifColors = OptInt{int(i), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_GIF_DITHER:
        if !cmdOptions.gifDither.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if f, x := arg.Arguments[0].Float(); x && f >= 0.0 && f <= 1.0 {
            cmdOptions.gifDither = OptFloat{float32(f), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_GIF_SORT:
        if !cmdOptions.gifSort.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.gifSort = OptText{arg.Arguments[0].ToString(), true}
        }
      case CMDOPT_WINDOW:
        if !cmdOptions.window.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          w, h, err := parseSize(arg.Arguments[0].ToString())
          if err != nil { return fmt.Errorf("Option %q: %v", arg.Name, err) }
          cmdOptions.window = OptSize{w, h, true}
        }
      case CMDOPT_RADIUS:
        if !cmdOptions.radius.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if i, x := arg.Arguments[0].Int(); x && i >= 1 && i <= 255 {
            cmdOptions.radius = OptInt{int(i), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_BILINEAR:
        if !cmdOptions.bilinear.set { cmdOptions.optionsLength++ }
        cmdOptions.bilinear = OptBool{true, true}
      case CMDOPT_NO_BILINEAR:
        if !cmdOptions.bilinear.set { cmdOptions.optionsLength++ }
        cmdOptions.bilinear = OptBool{false, true}
      case CMDOPT_EXACT:
        if !cmdOptions.exact.set { cmdOptions.optionsLength++ }
        cmdOptions.exact = OptBool{true, true}
      case CMDOPT_FILTER, CMDOPT_GESTURE:
        if len(arg.Arguments) > 0 {
          cmdOptions.optionsLength++
          cmdOptions.steps = append(cmdOptions.steps, OptStep{arg.Name == CMDOPT_GESTURE, arg.Arguments[0].ToString()})
        }
      default:
        return fmt.Errorf("Unrecognized option: %q", arg.Name)
    }
  }

  // Invalid combination: Options, but neither config files nor input file
  if len(cmdOptions.argsExtra) == 0 && cmdOptions.optionsLength > 0 && !cmdOptions.input.set {
    return errors.New("No configuration or input file specified")
  }

  return nil
}


// Used internally. Parses a dimension of the form "WIDTHxHEIGHT".
func parseSize(s string) (width, height int, err error) {
  ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
  if !ok { return 0, 0, fmt.Errorf("Invalid size definition: %q", s) }
  width, err = strconv.Atoi(strings.TrimSpace(ws))
  if err != nil || width <= 0 { return 0, 0, fmt.Errorf("Invalid width: %q", ws) }
  height, err = strconv.Atoi(strings.TrimSpace(hs))
  if err != nil || height <= 0 { return 0, 0, fmt.Errorf("Invalid height: %q", hs) }
  return width, height, nil
}


func argsExtraLength() int {
  if cmdOptions.argsExtra == nil { return 0 }
  return len(cmdOptions.argsExtra)
}

func argsExtra(index int) string {
  if cmdOptions.argsExtra == nil { return "" }
  if index < 0 || index >= len(cmdOptions.argsExtra) { return "" }
  return cmdOptions.argsExtra[index]
}

func argsLength() int {
  return cmdOptions.optionsLength
}

func argsHelp() (bool, bool) {
  return cmdOptions.help.value, cmdOptions.help.set
}

func argsVersion() (bool, bool) {
  return cmdOptions.version.value, cmdOptions.version.set
}

func argsVerbose() (bool, bool) {
  return cmdOptions.verbose.value, cmdOptions.verbose.set
}

func argsLogStyle() (bool, bool) {
  return cmdOptions.logStyle.value, cmdOptions.logStyle.set
}

func argsThreaded() (bool, bool) {
  return cmdOptions.threaded.value, cmdOptions.threaded.set
}

func argsInput() (string, bool) {
  return cmdOptions.input.value, cmdOptions.input.set
}

func argsOutput() (string, bool) {
  return cmdOptions.output.value, cmdOptions.output.set
}

func argsOutputFormat() (string, bool) {
  return cmdOptions.outputFormat.value, cmdOptions.outputFormat.set
}

func argsJpegQuality() (int, bool) {
  return cmdOptions.jpegQuality.value, cmdOptions.jpegQuality.set
}

func argsGifColors() (int, bool) {
  return cmdOptions.gifColors.value, cmdOptions.gifColors.set
}

func argsGifDither() (float32, bool) {
  return cmdOptions.gifDither.value, cmdOptions.gifDither.set
}

func argsGifSort() (string, bool) {
  return cmdOptions.gifSort.value, cmdOptions.gifSort.set
}

func argsWindow() (int, int, bool) {
  return cmdOptions.window.width, cmdOptions.window.height, cmdOptions.window.set
}

func argsRadius() (int, bool) {
  return cmdOptions.radius.value, cmdOptions.radius.set
}

func argsBilinear() (bool, bool) {
  return cmdOptions.bilinear.value, cmdOptions.bilinear.set
}

func argsExact() (bool, bool) {
  return cmdOptions.exact.value, cmdOptions.exact.set
}

// argsSteps returns the --filter and --gesture definitions in order of appearance.
func argsSteps() ([]OptStep, bool) {
  retVal := make([]OptStep, len(cmdOptions.steps))
  copy(retVal, cmdOptions.steps)
  return retVal, len(retVal) > 0
}
