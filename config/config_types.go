package config

import (
  "fmt"
  "sort"
  "strings"
)

// Generic variant type used to represent various datatypes used in the config package.
type Variant interface { ToString() string }
// Variant of type bool
type VarBool interface { ToBool() bool }
// Variant of type int64
type VarInt interface { ToInt() int64 }
// Variant of type float64
type VarFloat interface { ToFloat() float64 }
// Variant of a processing step structure
type VarStep interface {
  Variant
  // GetKind returns STEP_FILTER or STEP_GESTURE.
  GetKind() int
  // GetName returns the filter name or gesture kind.
  GetName() string
  // GetOptions returns filter options as key/value pairs, sorted by key.
  GetOptions() [][]string
  // GetPath returns the cursor positions of a gesture. First entry is the start, last entry the final position.
  GetPath() [][]int64
  // IsCancelled returns whether the gesture is cancelled instead of finished.
  IsCancelled() bool
}

// Available processing step kinds
const (
  STEP_FILTER = iota
  STEP_GESTURE
)

type Text struct { Value string }
type Bool struct { Value bool }
type Int struct { Value int64 }
type Float struct { Value float64 }
type Step struct {
  Kind      int
  Name      string
  Options   map[string]string
  Path      [][]int64
  Cancel    bool
}


func (t Text) ToString() string { return t.Value }

func (b Bool) ToString() string { return fmt.Sprintf("%v", b.Value) }
func (b Bool) ToBool() bool { return b.Value }

func (i Int) ToString() string { return fmt.Sprintf("%d", i.Value) }
func (i Int) ToInt() int64 { return i.Value }

func (f Float) ToString() string { return fmt.Sprintf("%f", f.Value) }
func (f Float) ToFloat() float64 { return f.Value }

// ToString returns summary of step name, options and gesture path.
func (s Step) ToString() string {
  var sb strings.Builder
  if s.Kind == STEP_GESTURE {
    sb.WriteString(fmt.Sprintf("{gesture:%s}", s.Name))
    for _, pos := range s.Path {
      sb.WriteString(fmt.Sprintf(",%v", pos))
    }
    if s.Cancel { sb.WriteString(",{cancel}") }
  } else {
    sb.WriteString(fmt.Sprintf("{filter:%s}", s.Name))
    for _, option := range s.GetOptions() {
      sb.WriteString(fmt.Sprintf(",{%s:%s}", option[0], option[1]))
    }
  }
  return sb.String()
}

func (s Step) GetKind() int { return s.Kind }
func (s Step) GetName() string { return s.Name }
func (s Step) GetPath() [][]int64 { return s.Path }
func (s Step) IsCancelled() bool { return s.Cancel }

// GetOptions returns all options as an array of key/value pairs.
func (s Step) GetOptions() [][]string {
  retVal := make([][]string, 0, len(s.Options))
  for key, value := range s.Options {
    retVal = append(retVal, []string{key, value})
  }
  sort.Slice(retVal, func(i, j int) bool { return retVal[i][0] < retVal[j][0] })
  return retVal
}
