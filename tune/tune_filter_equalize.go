package tune
/*
Implements filter "equalize":
Options:
- radius: int [1, 255] (5)
- exact: bool (false) - count neighborhood samples exactly instead of using the reference count
*/

import (
  "fmt"
  "strings"
)

const (
  filterNameEqualize = "equalize"
)

type FilterEqualize struct {
  options     optionsMap
  opt_radius  string
  opt_exact   string
}

// Register filter for use in the session filter chain.
func init() {
  registerFilter(filterNameEqualize, NewFilterEqualize)
}


// Creates a new Equalize filter.
func NewFilterEqualize() Filter {
  f := FilterEqualize{options: make(optionsMap), opt_radius: "radius", opt_exact: "exact"}
  f.SetOption(f.opt_radius, fmt.Sprintf("%d", DefaultRadius))
  f.SetOption(f.opt_exact, "false")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterEqualize) GetName() string {
  return filterNameEqualize
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterEqualize) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterEqualize) SetOption(key, value string) error {
  key = strings.ToLower(key)
  switch key {
    case f.opt_radius:
      v, err := parseIntRange(value, 1, 255)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
    case f.opt_exact:
      v, err := parseBool(value)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
  }
  return nil
}

// Process performs local histogram equalization on the current image.
func (f *FilterEqualize) Process(s *Session) error {
  radius := f.GetOption(f.opt_radius).(int)
  mode := CountReference
  if f.GetOption(f.opt_exact).(bool) { mode = CountExact }
  _, err := s.applyEqualization(radius, mode)
  return err
}
