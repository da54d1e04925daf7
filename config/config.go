/*
Package config translates tuning job configurations from XML or JSON structures into a preprocessed map structure
for quick access.

YCC Tune is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package config

import (
  "bytes"
  "errors"
  "io"
  "path/filepath"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)


// Available job configuration section names
const (
  SECTION_INPUT     = "input"
  SECTION_OUTPUT    = "output"
  SECTION_WINDOW    = "window"
  SECTION_SETTINGS  = "settings"
  SECTION_STEPS     = "steps"
)

// Available job configuration key names
const (
  KEY_INPUT_FILE        = "input_file"
  KEY_OUTPUT_FILE       = "output_file"
  KEY_OUTPUT_FORMAT     = "output_format"
  KEY_OUTPUT_QUALITY    = "output_quality"
  KEY_OUTPUT_COLORS     = "output_colors"
  KEY_OUTPUT_DITHER     = "output_dither"
  KEY_OUTPUT_SORT       = "output_sort"
  KEY_WINDOW_WIDTH      = "window_width"
  KEY_WINDOW_HEIGHT     = "window_height"
  KEY_THREADED          = "threaded"
  KEY_RADIUS            = "radius"
  KEY_BILINEAR          = "bilinear"
  KEY_EXACT             = "exact"
)

// Default values of optional settings
const (
  DEFAULT_QUALITY = 90
  DEFAULT_COLORS  = 256
  DEFAULT_RADIUS  = 5
)

// Supported output formats
var OutputFormats = []string{"png", "bmp", "gif", "jpg", "tiff"}

// JobMap maps key => value associations.
type JobMap map[string]Variant

// JobConfig maps section => key => value.
type JobConfig map[string]JobMap


// ImportConfig constructs a JobConfig object from configuration data found in the source wrapped by the Reader object.
func ImportConfig(r io.Reader) (config *JobConfig, err error) {
  logging.Logln("Loading configuration data")
  buffer, err := io.ReadAll(r)
  if err != nil { return }

  // try to determine input format
  isXml := true
  ofs := 0
  whiteSpace := []byte{0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x20}
  for ofs < len(buffer) {
    if bytes.IndexByte(whiteSpace, buffer[ofs]) < 0 {
      if buffer[ofs] == '<' {
        isXml = true
      } else if buffer[ofs] == '{' {
        isXml = false
      } else {
        err = errors.New("Configuration: Unrecognized format")
      }
      break
    }
    ofs++
  }
  if err != nil { return }
  if ofs == len(buffer) { return nil, errors.New("Configuration: No data available") }

  // parsing source into intermediate structures
  if isXml {
    config, err = importXml(buffer)
  } else {
    config, err = importJson(buffer)
  }
  if err != nil { return }

  logging.Logln("Finished loading configuration data")
  return
}

// GetConfigValueBool returns the boolean value assigned to the specified section => key location. ok returns whether
// the value is available.
func (job *JobConfig) GetConfigValueBool(section, key string) (retVal bool, ok bool) {
  value, ok := (*job)[section][key].(VarBool)
  if !ok { return }
  retVal = value.ToBool()
  return
}

// GetConfigValueInt returns the numeric value assigned to the specified section => key location. ok returns whether
// the value is available.
func (job *JobConfig) GetConfigValueInt(section, key string) (retVal int64, ok bool) {
  value, ok := (*job)[section][key].(VarInt)
  if !ok { return }
  retVal = value.ToInt()
  return
}

// GetConfigValueFloat returns the floating point value assigned to the specified section => key location. ok returns
// whether the value is available.
func (job *JobConfig) GetConfigValueFloat(section, key string) (retVal float64, ok bool) {
  value, ok := (*job)[section][key].(VarFloat)
  if !ok { return }
  retVal = value.ToFloat()
  return
}

// GetConfigValueText returns the string value assigned to the specified section => key location. ok returns whether
// the value is available.
func (job *JobConfig) GetConfigValueText(section, key string) (retVal string, ok bool) {
  value, ok := (*job)[section][key].(Variant)
  if !ok { return }
  retVal = value.ToString()
  return
}

// GetConfigStepLength returns the number of available processing steps.
func (job *JobConfig) GetConfigStepLength() int {
  return len((*job)[SECTION_STEPS])
}

// GetConfigStep returns the processing step at the specified index. ok returns whether the step is available.
func (job *JobConfig) GetConfigStep(index int) (retVal VarStep, ok bool) {
  retVal, ok = (*job)[SECTION_STEPS][strconv.Itoa(index)].(VarStep)
  return
}


// Used internally. Attempts to convert the content of s into a boolean value. Failing that the function will return
// the specified default value. Both numeric (decimal/hexadecimal) and true/false string values are detected.
func tryParseBool(s string, defValue bool) bool {
  // try true/false first
  if strings.ToLower(strings.TrimSpace(s)) == "true" {
    return true
  } else if strings.ToLower(strings.TrimSpace(s)) == "false" {
    return false
  }
  // try numeric value second
  def := 0
  if defValue { def = 1 }
  return (tryParseInt(s, def) != 0)
}

// Used internally. Attempts to convert the content of s into a signed numeric value. Failing that the function will
// return the specified default value. Both decimal and hexadecimal (with prefix "0x") are detected.
func tryParseInt(s string, defValue int) int64 {
  s = strings.ToLower(strings.TrimSpace(s))

  var value int64
  var err error
  if len(s) > 2 && s[:2] == "0x" {
    // hex value?
    value, err = strconv.ParseInt(s[2:], 16, 32)
  } else {
    // dec value?
    value, err = strconv.ParseInt(s, 10, 32)
  }
  if err != nil { value = int64(defValue) }

  return value
}

// Used internally. Attempts to convert the content of s into a floating point value. Failing that the function will
// return the specified default value.
func tryParseFloat(s string, defValue float64) float64 {
  s = strings.ToLower(strings.TrimSpace(s))

  var value float64
  var err error
  value, err = strconv.ParseFloat(s, 64)
  if err != nil { value = defValue }

  return value
}

// Used internally. Attempts to convert the content of s into a sequence of signed numeric values. Invalid elements
// will be replaced by the provided default value. The returned array may contain zero, one or more items.
func tryParseIntSeq(s string, defValue int) []int64 {
  if len(strings.TrimSpace(s)) == 0 { return make([]int64, 0) }
  items := strings.Split(s, ",")
  retVal := make([]int64, len(items))
  for idx, val := range items {
    retVal[idx] = tryParseInt(val, defValue)
  }

  return retVal
}

// Used internally. Fixes Windows-specific path separator characters and removes trailing separators.
func fixPath(s string) string {
  s = filepath.ToSlash(strings.TrimSpace(s))
  for len(s) > 1 && s[len(s)-1:] == "/" { s = s[:len(s)-1] }
  return s
}
