package config
// Parse functionality for JSON structures.

import (
  "encoding/json"
  "fmt"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Used internally by json.Unmarshal to store input settings.
type JsonInput struct {
  File          string
}

// Used internally by json.Unmarshal to store output settings.
type JsonOutput struct {
  File          string
  Format        string
  Quality       int64
  Colors        int64
  Dither        float64
  Sort          string
}

// Used internally by json.Unmarshal to store window settings.
type JsonWindow struct {
  Width         int64
  Height        int64
}

// Used internally by json.Unmarshal to store general settings.
type JsonSettings struct {
  Threaded      *bool
  Radius        int64
  Bilinear      bool
  Exact         bool
}

// Used internally by json.Unmarshal to store filter options.
type JsonFilterOptions struct {
  Key           string
  Value         string
}

// Used internally by json.Unmarshal to store a single filter or gesture step.
type JsonStep struct {
  Filter        string
  Options       []JsonFilterOptions
  Gesture       string
  Path          [][]int64
  Cancel        bool
}

// Used internally by json.Unmarshal to store configuration data from JSON scripts.
type JsonJob struct {
  Input         JsonInput
  Output        JsonOutput
  Window        JsonWindow
  Settings      JsonSettings
  Steps         []JsonStep
}

// Used internally. Parses JSON source into intermediate structures.
func importJson(buffer []byte) (config *JobConfig, err error) {
  jsonJob := JsonJob{}
  err = json.Unmarshal(buffer, &jsonJob)
  if err != nil { return }

  config, err = processConfigJson(&jsonJob)
  return
}


// Used internally. Converts parsed JSON input into useful data types, taking defaults into account for omitted input.
func processConfigJson(input *JsonJob) (config *JobConfig, err error) {
  job := make(JobConfig)
  config = &job
  logging.Logln("Processing input settings")
  err = processConfigJsonInput(input, config)
  if err != nil { return }
  logging.Logln("Processing output settings")
  err = processConfigJsonOutput(input, config)
  if err != nil { return }
  logging.Logln("Processing window settings")
  err = processConfigJsonWindow(input, config)
  if err != nil { return }
  logging.Logln("Processing general settings")
  err = processConfigJsonSettings(input, config)
  if err != nil { return }
  logging.Logln("Processing steps")
  err = processConfigJsonSteps(input, config)
  return
}

// Used internally. Process "input" section.
func processConfigJsonInput(input *JsonJob, config *JobConfig) error {
  (*config)[SECTION_INPUT] = make(JobMap)
  (*config)[SECTION_INPUT][KEY_INPUT_FILE] = Text{fixPath(input.Input.File)}
  return nil
}

// Used internally. Process "output" section.
func processConfigJsonOutput(input *JsonJob, config *JobConfig) error {
  (*config)[SECTION_OUTPUT] = make(JobMap)

  var textVal string
  textVal = fixPath(input.Output.File)
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_FILE] = Text{textVal}

  format, err := NormalizeFormat(input.Output.Format, textVal)
  if err != nil { return fmt.Errorf("Output>Format: %v", err) }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_FORMAT] = Text{format}

  var intVal int64
  intVal = input.Output.Quality
  if intVal == 0 { intVal = DEFAULT_QUALITY }
  if intVal < 1 || intVal > 100 { return fmt.Errorf("Output>Quality not in range [1, 100]: %d", intVal) }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_QUALITY] = Int{intVal}

  intVal = input.Output.Colors
  if intVal == 0 { intVal = DEFAULT_COLORS }
  if intVal < 2 || intVal > 256 { return fmt.Errorf("Output>Colors not in range [2, 256]: %d", intVal) }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_COLORS] = Int{intVal}

  var floatVal float64
  floatVal = input.Output.Dither
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Output>Dither not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_DITHER] = Float{floatVal}

  (*config)[SECTION_OUTPUT][KEY_OUTPUT_SORT] = Text{strings.ToLower(strings.TrimSpace(input.Output.Sort))}

  return nil
}

// Used internally. Process "window" section.
func processConfigJsonWindow(input *JsonJob, config *JobConfig) error {
  (*config)[SECTION_WINDOW] = make(JobMap)

  var intVal int64
  intVal = input.Window.Width
  if intVal < 0 || intVal > 65535 { return fmt.Errorf("Window>Width not in range [0, 65535]: %d", intVal) }
  (*config)[SECTION_WINDOW][KEY_WINDOW_WIDTH] = Int{intVal}

  intVal = input.Window.Height
  if intVal < 0 || intVal > 65535 { return fmt.Errorf("Window>Height not in range [0, 65535]: %d", intVal) }
  (*config)[SECTION_WINDOW][KEY_WINDOW_HEIGHT] = Int{intVal}

  return nil
}

// Used internally. Process "settings" section.
func processConfigJsonSettings(input *JsonJob, config *JobConfig) error {
  (*config)[SECTION_SETTINGS] = make(JobMap)

  boolVal := true
  if input.Settings.Threaded != nil { boolVal = *input.Settings.Threaded }
  (*config)[SECTION_SETTINGS][KEY_THREADED] = Bool{boolVal}

  var intVal int64
  intVal = input.Settings.Radius
  if intVal == 0 { intVal = DEFAULT_RADIUS }
  if intVal < 1 || intVal > 255 { return fmt.Errorf("Settings>Radius not in range [1, 255]: %d", intVal) }
  (*config)[SECTION_SETTINGS][KEY_RADIUS] = Int{intVal}

  (*config)[SECTION_SETTINGS][KEY_BILINEAR] = Bool{input.Settings.Bilinear}
  (*config)[SECTION_SETTINGS][KEY_EXACT] = Bool{input.Settings.Exact}

  return nil
}

// Used internally. Process "steps" section.
func processConfigJsonSteps(input *JsonJob, config *JobConfig) error {
  (*config)[SECTION_STEPS] = make(JobMap)

  // process steps sequentially
  for index, s := range input.Steps {
    var step Step
    var err error
    switch {
      case len(s.Filter) > 0 && len(s.Gesture) > 0:
        err = fmt.Errorf("both filter and gesture specified")
      case len(s.Filter) > 0:
        options := make([][]string, len(s.Options))
        for i, option := range s.Options {
          options[i] = []string{option.Key, option.Value}
        }
        step, err = newFilterStep(s.Filter, options)
      case len(s.Gesture) > 0:
        step, err = newGestureStep(s.Gesture, s.Path, s.Cancel)
      default:
        err = fmt.Errorf("neither filter nor gesture specified")
    }
    if err != nil { return fmt.Errorf("Steps>#%d: %v", index, err) }
    (*config)[SECTION_STEPS][strconv.Itoa(index)] = step
  }

  return nil
}
