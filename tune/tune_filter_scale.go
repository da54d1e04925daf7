package tune
/*
Implements filter "scale":
Options:
- factor: float [0.00001, 256.0] (1.0) - relative to the current cumulative scale factor
- bilinear: bool (false) - use bilinear interpolation when enlarging
- width: int [0, 65535] (0) - output width, 0 to use the window width
- height: int [0, 65535] (0) - output height, 0 to use the window height
*/

import (
  "fmt"
  "strings"
)

const (
  filterNameScale = "scale"
)

type FilterScale struct {
  options       optionsMap
  opt_factor, opt_bilinear, opt_width, opt_height string
}

// Register filter for use in the session filter chain.
func init() {
  registerFilter(filterNameScale, NewFilterScale)
}


// Creates a new Scale filter.
func NewFilterScale() Filter {
  f := FilterScale{options: make(optionsMap),
                   opt_factor: "factor",
                   opt_bilinear: "bilinear",
                   opt_width: "width",
                   opt_height: "height"}
  f.SetOption(f.opt_factor, "1.0")
  f.SetOption(f.opt_bilinear, "false")
  f.SetOption(f.opt_width, "0")
  f.SetOption(f.opt_height, "0")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterScale) GetName() string {
  return filterNameScale
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterScale) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterScale) SetOption(key, value string) error {
  key = strings.ToLower(key)
  switch key {
    case f.opt_factor:
      v, err := parseFloatRange(value, 0.00001, 256.0)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
    case f.opt_bilinear:
      v, err := parseBool(value)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
    case f.opt_width, f.opt_height:
      v, err := parseIntRange(value, 0, 65535)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
  }
  return nil
}

// Process resamples the original image of the session with the updated cumulative scale factor.
func (f *FilterScale) Process(s *Session) error {
  factor := f.GetOption(f.opt_factor).(float64)
  bilinear := f.GetOption(f.opt_bilinear).(bool)
  dw := f.GetOption(f.opt_width).(int)
  dh := f.GetOption(f.opt_height).(int)
  ww, wh := s.WindowSize()
  if dw == 0 { dw = ww }
  if dh == 0 { dh = wh }
  _, err := s.ApplyScale(factor, bilinear, dw, dh)
  return err
}
