package tune
/*
Implements filter "tone":
Options:
- brightness: float [-255.0, 255.0] (0.0)
- contrast: float [0.0, 2.0] (1.0)
*/

import (
  "fmt"
  "strings"
)

const (
  filterNameTone = "tone"
)

type FilterTone struct {
  options         optionsMap
  opt_brightness  string
  opt_contrast    string
}

// Register filter for use in the session filter chain.
func init() {
  registerFilter(filterNameTone, NewFilterTone)
}


// Creates a new Tone filter.
func NewFilterTone() Filter {
  f := FilterTone{options: make(optionsMap), opt_brightness: "brightness", opt_contrast: "contrast"}
  f.SetOption(f.opt_brightness, "0.0")
  f.SetOption(f.opt_contrast, "1.0")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterTone) GetName() string {
  return filterNameTone
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterTone) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterTone) SetOption(key, value string) error {
  key = strings.ToLower(key)
  switch key {
    case f.opt_brightness:
      v, err := parseFloatRange(value, -255.0, 255.0)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
    case f.opt_contrast:
      v, err := parseFloatRange(value, 0.0, 2.0)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
  }
  return nil
}

// Process applies brightness and contrast to a snapshot of the current image.
func (f *FilterTone) Process(s *Session) error {
  brightness := f.GetOption(f.opt_brightness).(float64)
  contrast := f.GetOption(f.opt_contrast).(float64)
  if brightness == 0.0 && contrast == 1.0 { return nil }

  snapshot := s.BeginGesture()
  defer s.EndGesture()
  _, err := s.ApplyTone(snapshot, brightness, contrast)
  return err
}
