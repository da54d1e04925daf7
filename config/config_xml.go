package config
// Parse functionality for XML structures.

import (
  "encoding/xml"
  "fmt"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Used internally by xml.Unmarshal to store input settings.
type XmlInput struct {
  File          string      `xml:"file"`
}

// Used internally by xml.Unmarshal to store output settings.
type XmlOutput struct {
  File          string      `xml:"file"`
  Format        string      `xml:"format"`
  Quality       string      `xml:"quality"`
  Colors        string      `xml:"colors"`
  Dither        string      `xml:"dither"`
  Sort          string      `xml:"sort"`
}

// Used internally by xml.Unmarshal to store window settings.
type XmlWindow struct {
  Width         string      `xml:"width"`
  Height        string      `xml:"height"`
}

// Used internally by xml.Unmarshal to store general settings.
type XmlSettings struct {
  Threaded      string      `xml:"threaded"`
  Radius        string      `xml:"radius"`
  Bilinear      string      `xml:"bilinear"`
  Exact         string      `xml:"exact"`
}

// Used internally by xml.Unmarshal to store filter options.
type XmlFilterOption struct {
  Key           string      `xml:"key"`
  Value         string      `xml:"value"`
}

// Used internally by xml.Unmarshal to store a single <filter> or <gesture> element.
type XmlStep struct {
  XMLName       xml.Name
  Name          string              `xml:"name"`
  Options       []XmlFilterOption   `xml:"option"`
  Kind          string              `xml:"kind"`
  Positions     []string            `xml:"position"`
  Cancel        string              `xml:"cancel"`
}

// Used internally by xml.Unmarshal to store the steps in order of appearance.
type XmlSteps struct {
  Items         []XmlStep   `xml:",any"`
}

// Used internally by xml.Unmarshal to store configuration data from XML scripts.
type XmlJob struct {
  XMLName       xml.Name    `xml:"job"`
  Input         XmlInput    `xml:"input"`
  Output        XmlOutput   `xml:"output"`
  Window        XmlWindow   `xml:"window"`
  Settings      XmlSettings `xml:"settings"`
  Steps         XmlSteps    `xml:"steps"`
}


// Used internally. Parses XML source into intermediate structures.
func importXml(buffer []byte) (config *JobConfig, err error) {
  xmlJob := XmlJob{}
  err = xml.Unmarshal(buffer, &xmlJob)
  if err != nil { return }

  config, err = processConfigXml(&xmlJob)
  return
}


// Used internally. Converts parsed XML input into useful data types, taking defaults into account for omitted input.
func processConfigXml(input *XmlJob) (config *JobConfig, err error) {
  job := make(JobConfig)
  config = &job
  logging.Logln("Processing input settings")
  err = processConfigXmlInput(input, config)
  if err != nil { return }
  logging.Logln("Processing output settings")
  err = processConfigXmlOutput(input, config)
  if err != nil { return }
  logging.Logln("Processing window settings")
  err = processConfigXmlWindow(input, config)
  if err != nil { return }
  logging.Logln("Processing general settings")
  err = processConfigXmlSettings(input, config)
  if err != nil { return }
  logging.Logln("Processing steps")
  err = processConfigXmlSteps(input, config)
  return
}

// Used internally. Process "input" section.
func processConfigXmlInput(input *XmlJob, config *JobConfig) error {
  (*config)[SECTION_INPUT] = make(JobMap)
  (*config)[SECTION_INPUT][KEY_INPUT_FILE] = Text{fixPath(input.Input.File)}
  return nil
}

// Used internally. Process "output" section.
func processConfigXmlOutput(input *XmlJob, config *JobConfig) error {
  (*config)[SECTION_OUTPUT] = make(JobMap)

  var textVal string
  textVal = fixPath(input.Output.File)
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_FILE] = Text{textVal}

  format, err := NormalizeFormat(input.Output.Format, textVal)
  if err != nil { return fmt.Errorf("Output>Format: %v", err) }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_FORMAT] = Text{format}

  var intVal int64
  intVal = tryParseInt(input.Output.Quality, DEFAULT_QUALITY)
  if intVal == 0 { intVal = DEFAULT_QUALITY }
  if intVal < 1 || intVal > 100 { return fmt.Errorf("Output>Quality not in range [1, 100]: %d", intVal) }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_QUALITY] = Int{intVal}

  intVal = tryParseInt(input.Output.Colors, DEFAULT_COLORS)
  if intVal == 0 { intVal = DEFAULT_COLORS }
  if intVal < 2 || intVal > 256 { return fmt.Errorf("Output>Colors not in range [2, 256]: %d", intVal) }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_COLORS] = Int{intVal}

  var floatVal float64
  floatVal = tryParseFloat(input.Output.Dither, 0.0)
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Output>Dither not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_DITHER] = Float{floatVal}

  (*config)[SECTION_OUTPUT][KEY_OUTPUT_SORT] = Text{strings.ToLower(strings.TrimSpace(input.Output.Sort))}

  return nil
}

// Used internally. Process "window" section.
func processConfigXmlWindow(input *XmlJob, config *JobConfig) error {
  (*config)[SECTION_WINDOW] = make(JobMap)

  var intVal int64
  intVal = tryParseInt(input.Window.Width, 0)
  if intVal < 0 || intVal > 65535 { return fmt.Errorf("Window>Width not in range [0, 65535]: %d", intVal) }
  (*config)[SECTION_WINDOW][KEY_WINDOW_WIDTH] = Int{intVal}

  intVal = tryParseInt(input.Window.Height, 0)
  if intVal < 0 || intVal > 65535 { return fmt.Errorf("Window>Height not in range [0, 65535]: %d", intVal) }
  (*config)[SECTION_WINDOW][KEY_WINDOW_HEIGHT] = Int{intVal}

  return nil
}

// Used internally. Process "settings" section.
func processConfigXmlSettings(input *XmlJob, config *JobConfig) error {
  (*config)[SECTION_SETTINGS] = make(JobMap)

  var boolVal bool
  boolVal = tryParseBool(input.Settings.Threaded, true)
  (*config)[SECTION_SETTINGS][KEY_THREADED] = Bool{boolVal}

  var intVal int64
  intVal = tryParseInt(input.Settings.Radius, DEFAULT_RADIUS)
  if intVal == 0 { intVal = DEFAULT_RADIUS }
  if intVal < 1 || intVal > 255 { return fmt.Errorf("Settings>Radius not in range [1, 255]: %d", intVal) }
  (*config)[SECTION_SETTINGS][KEY_RADIUS] = Int{intVal}

  boolVal = tryParseBool(input.Settings.Bilinear, false)
  (*config)[SECTION_SETTINGS][KEY_BILINEAR] = Bool{boolVal}

  boolVal = tryParseBool(input.Settings.Exact, false)
  (*config)[SECTION_SETTINGS][KEY_EXACT] = Bool{boolVal}

  return nil
}

// Used internally. Process "steps" section.
func processConfigXmlSteps(input *XmlJob, config *JobConfig) error {
  (*config)[SECTION_STEPS] = make(JobMap)

  // process steps sequentially
  for index, item := range input.Steps.Items {
    var step Step
    var err error
    switch strings.ToLower(item.XMLName.Local) {
      case "filter":
        options := make([][]string, len(item.Options))
        for i, option := range item.Options {
          options[i] = []string{option.Key, option.Value}
        }
        step, err = newFilterStep(item.Name, options)
      case "gesture":
        path := make([][]int64, len(item.Positions))
        for i, pos := range item.Positions {
          path[i] = tryParseIntSeq(pos, 0)
        }
        step, err = newGestureStep(item.Kind, path, tryParseBool(item.Cancel, false))
      default:
        err = fmt.Errorf("unknown element <%s>", item.XMLName.Local)
    }
    if err != nil { return fmt.Errorf("Steps>#%d: %v", index, err) }
    (*config)[SECTION_STEPS][strconv.Itoa(index)] = step
  }

  return nil
}
