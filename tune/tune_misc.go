package tune
// Provides general-purpose functionality.

import (
  "math"
  "runtime"
  "sync"

  "github.com/InfinityTools/go-logging"
  "github.com/pbenner/threadpool"
)

var multithreaded bool = runtime.NumCPU() > 1


// GetMultiThreaded returns whether multithreading should be used for selected operations.
func GetMultiThreaded() bool {
  return multithreaded
}


// SetMultiThreaded sets whether multithreading should be used for selected operations.
func SetMultiThreaded(set bool) {
  multithreaded = set
}


// Used internally. Calls fn once for every row index in range [0, height). Rows are distributed in batches over a
// thread pool if multithreading is enabled. fn must only write to the specified row.
// A non-empty msg is logged together with progress dots.
func processRows(height int, msg string, fn func(y int)) (err error) {
  if msg != "" { logging.Log(msg) }
  defer func() {
    if msg != "" { logging.OverridePrefix(false, false, false).Logln("") }
  }()

  if !GetMultiThreaded() || height < 2 {
    for y := 0; y < height; y++ {
      fn(y)
      if msg != "" { logging.LogProgressDot(y, height, 79 - len(msg)) }
    }
    return
  }

  numThreads := runtime.NumCPU()
  batchSize := (height + numThreads * 4 - 1) / (numThreads * 4)
  if batchSize < 1 { batchSize = 1 }
  numBatches := (height + batchSize - 1) / batchSize

  pool := threadpool.New(numThreads, numBatches)
  g := pool.NewJobGroup()
  var m sync.Mutex
  finished := 0
  for y0 := 0; y0 < height; y0 += batchSize {
    start := y0
    end := y0 + batchSize
    if end > height { end = height }
    err = pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
      if erf() != nil { return nil }
      for y := start; y < end; y++ {
        fn(y)
      }
      if msg != "" {
        m.Lock()
        defer m.Unlock()
        logging.LogProgressDot(finished, numBatches, 79 - len(msg))
        finished++
      }
      return nil
    })
    if err != nil { break }
  }
  if err2 := pool.Wait(g); err2 != nil && err == nil { err = err2 }
  pool.Stop()
  return
}


// Used internally. Returns whether f is a finite positive number.
func validFactor(f float64) bool {
  return f > 0.0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
