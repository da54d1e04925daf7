package config

import (
  "fmt"
  "path/filepath"
  "strconv"
  "strings"
)

// FormatFromPath derives the output format from the file extension of the specified path.
// Returns an empty string if the extension is not recognized.
func FormatFromPath(path string) string {
  ext := strings.ToLower(filepath.Ext(path))
  switch ext {
    case ".png":              return "png"
    case ".bmp":              return "bmp"
    case ".gif":              return "gif"
    case ".jpg", ".jpeg":     return "jpg"
    case ".tif", ".tiff":     return "tiff"
    default:                  return ""
  }
}

// NormalizeFormat returns the canonical name of the specified output format. An empty format is derived from the
// file extension of path.
func NormalizeFormat(format, path string) (string, error) {
  format = strings.ToLower(strings.TrimSpace(format))
  switch format {
    case "":
      return FormatFromPath(path), nil
    case "jpeg":
      return "jpg", nil
    case "tif":
      return "tiff", nil
  }
  for _, f := range OutputFormats {
    if f == format { return format, nil }
  }
  return "", fmt.Errorf("Unsupported output format: %s", format)
}


// Used internally. Creates a filter step.
func newFilterStep(name string, options [][]string) (Step, error) {
  name = strings.ToLower(strings.TrimSpace(name))
  if len(name) == 0 { return Step{}, fmt.Errorf("Filter name missing") }
  step := Step{Kind: STEP_FILTER, Name: name, Options: make(map[string]string)}
  for _, option := range options {
    key, value := strings.ToLower(strings.TrimSpace(option[0])), strings.TrimSpace(option[1])
    if len(key) == 0 { return Step{}, fmt.Errorf("Filter %s: option key missing", name) }
    step.Options[key] = value
  }
  return step, nil
}

// Used internally. Creates a gesture step. Gestures of kind "tone" and "scale" require a path with at least one
// (x, y) position.
func newGestureStep(kind string, path [][]int64, cancel bool) (Step, error) {
  kind = strings.ToLower(strings.TrimSpace(kind))
  switch kind {
    case "tone", "scale":
      if len(path) == 0 { return Step{}, fmt.Errorf("Gesture %s: no position specified", kind) }
      for i, pos := range path {
        if len(pos) != 2 { return Step{}, fmt.Errorf("Gesture %s: position %d: expected x,y pair: %v", kind, i, pos) }
      }
    case "equalize", "radius+", "radius-":
      path = nil
    default:
      return Step{}, fmt.Errorf("Unknown gesture: %q", kind)
  }
  return Step{Kind: STEP_GESTURE, Name: kind, Path: path, Cancel: cancel}, nil
}


// ParseFilterStep parses a filter definition of the form "name[:key=value[;key=value...]]".
func ParseFilterStep(def string) (Step, error) {
  name, opts, _ := strings.Cut(def, ":")
  options := make([][]string, 0)
  for _, item := range strings.Split(opts, ";") {
    if len(strings.TrimSpace(item)) == 0 { continue }
    key, value, ok := strings.Cut(item, "=")
    if !ok { return Step{}, fmt.Errorf("Filter %s: invalid option definition: %q", name, item) }
    options = append(options, []string{key, value})
  }
  return newFilterStep(name, options)
}

// ParseGestureStep parses a gesture definition of the form "kind[:x0,y0[,x1,y1...]][:cancel]".
func ParseGestureStep(def string) (Step, error) {
  items := strings.Split(def, ":")
  kind := items[0]
  cancel := false
  if len(items) > 1 && strings.ToLower(strings.TrimSpace(items[len(items)-1])) == "cancel" {
    cancel = true
    items = items[:len(items)-1]
  }
  if len(items) > 2 { return Step{}, fmt.Errorf("Invalid gesture definition: %q", def) }

  path := make([][]int64, 0)
  if len(items) > 1 {
    coords := strings.Split(items[1], ",")
    if len(coords) % 2 != 0 { return Step{}, fmt.Errorf("Gesture %s: incomplete position: %q", kind, items[1]) }
    for i := 0; i < len(coords); i += 2 {
      x, errx := strconv.ParseInt(strings.TrimSpace(coords[i]), 10, 32)
      y, erry := strconv.ParseInt(strings.TrimSpace(coords[i+1]), 10, 32)
      if errx != nil || erry != nil { return Step{}, fmt.Errorf("Gesture %s: invalid position: %s,%s", kind, coords[i], coords[i+1]) }
      path = append(path, []int64{x, y})
    }
  }
  return newGestureStep(kind, path, cancel)
}


// DefaultConfig returns a job configuration with default values for all settings and no steps.
func DefaultConfig() *JobConfig {
  config, err := processConfigJson(&JsonJob{})
  if err != nil { panic(err) }  // defaults are always valid
  return config
}

// AppendStep adds the processing step to the end of the step list.
func (job *JobConfig) AppendStep(step Step) {
  if (*job)[SECTION_STEPS] == nil { (*job)[SECTION_STEPS] = make(JobMap) }
  (*job)[SECTION_STEPS][strconv.Itoa(job.GetConfigStepLength())] = step
}
