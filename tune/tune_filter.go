package tune
// Provides base functionality for processing filters.

import (
  "fmt"
  "sort"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Filter applies a tuning operation to the current image of a session.
type Filter interface {
  // GetName returns the name of the filter for identification purposes.
  GetName() string
  // GetOption returns the option of given name. Content of return value is filter specific.
  GetOption(key string) interface{}
  // SetOption adds or updates an option of the given key to the filter. Return value indicates whether option is valid.
  SetOption(key, value string) error
  // Process applies the filter to the current image of the specified session.
  Process(s *Session) error
}

type optionsMap map[string]interface{}

type filterType struct {
  name    string
  create  func() Filter
}

type filterMap map[string]filterType


var filterTypes filterMap = make(filterMap)


// CreateFilter creates a new filter of the given type. Returns nil if the filter does not exist.
func CreateFilter(filterName string) Filter {
  f, ok := filterTypes[strings.ToLower(strings.TrimSpace(filterName))]
  if !ok { return nil }
  return f.create()
}


// FilterNames returns the names of all available filters in alphabetical order.
func FilterNames() []string {
  names := make([]string, 0, len(filterTypes))
  for name := range filterTypes {
    names = append(names, name)
  }
  sort.Strings(names)
  return names
}


// ApplyFilters applies the chain of filters to the current image in order of appearance. Processing stops at the
// first failing filter.
func (s *Session) ApplyFilters(filters []Filter) error {
  if s.state != Idle { return fmt.Errorf("%w: cannot apply filters while %v", ErrGestureState, s.state) }
  for idx, filter := range filters {
    if filter == nil { return fmt.Errorf("Filter #%d: not initialized", idx) }
    logging.Logf("Applying filter %q\n", filter.GetName())
    if err := filter.Process(s); err != nil {
      return fmt.Errorf("Filter #%d (%s): %w", idx, filter.GetName(), err)
    }
  }
  return nil
}


// registerFilter registers a Filter for use by the session. It must be called by each filter once.
func registerFilter(name string, create func() Filter) {
  filterTypes[name] = filterType{name, create}
}


// Converts string (oct/dec/hex) into int in range [min, max] (both inclusive).
func parseIntRange(value string, min, max int) (int, error) {
  if max < min { min, max = max, min }
  ret, err := strconv.ParseInt(strings.TrimSpace(value), 0, 0)
  if err != nil { return 0, fmt.Errorf("not an int: %s", value) }
  if int(ret) < min || int(ret) > max { return 0, fmt.Errorf("not in range [%d, %d]: %s", min, max, value) }
  return int(ret), nil
}

// Converts string into float in range [min, max] (both inclusive).
func parseFloatRange(value string, min, max float64) (float64, error) {
  if max < min { min, max = max, min }
  ret, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
  if err != nil { return 0, fmt.Errorf("not a float: %s", value) }
  if ret < min || ret > max { return 0, fmt.Errorf("not in range [%v, %v]: %s", min, max, value) }
  return ret, nil
}

// Converts string into bool.
func parseBool(value string) (bool, error) {
  value = strings.TrimSpace(value)
  ret, err := strconv.ParseBool(value)
  if err != nil {
    n, err := strconv.ParseInt(value, 0, 0)
    if err != nil { return false, fmt.Errorf("not a boolean: %s", value) }
    ret = n != 0
  }
  return ret, nil
}
