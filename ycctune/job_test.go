package main

import (
  "fmt"
  "os"
  "path/filepath"
  "strings"
  "testing"

  "github.com/InfinityTools/ycctune/config"
  "github.com/InfinityTools/ycctune/graphics"
  "github.com/InfinityTools/ycctune/tune"
  "github.com/InfinityTools/ycctune/ycc"
)

// Gray pixels survive the RGB round trip of the image codecs unchanged.
func grayImage(t *testing.T) *ycc.Buffer {
  t.Helper()
  b, err := ycc.New(6, 4)
  if err != nil { t.Fatal(err) }
  for y := 0; y < 4; y++ {
    for x := 0; x < 6; x++ {
      b.SetPixel(x, y, ycc.Pixel{byte(x*40 + y*10), 128, 128})
    }
  }
  return b
}

func writeImage(t *testing.T, dir, name string, buf *ycc.Buffer) string {
  t.Helper()
  path := filepath.Join(dir, name)
  if err := saveImage(path, buf, graphics.DefaultExportOptions(config.FormatFromPath(path))); err != nil {
    t.Fatal(err)
  }
  return path
}

func loadConfig(t *testing.T, data string) *config.JobConfig {
  t.Helper()
  cfg, err := config.ImportConfig(strings.NewReader(data))
  if err != nil { t.Fatal(err) }
  return cfg
}

func checkOutput(t *testing.T, path string, expected *ycc.Buffer) {
  t.Helper()
  out, err := loadImage(path)
  if err != nil { t.Fatal(err) }
  if !out.Equal(expected) {
    t.Errorf("output differs from expected result:\ngot      %v\nexpected %v", out.Pix(), expected.Pix())
  }
}


func TestProcessJobEqualize(t *testing.T) {
  cmdOptions = CmdOptions{}
  dir := t.TempDir()
  src := grayImage(t)
  in := writeImage(t, dir, "in.png", src)
  out := filepath.Join(dir, "out.png")

  cfg := loadConfig(t, fmt.Sprintf(`{
    "input": { "file": %q },
    "output": { "file": %q },
    "settings": { "threaded": false, "radius": 2, "exact": true },
    "steps": [ { "gesture": "radius-" }, { "gesture": "equalize" } ]
  }`, in, out))
  if err := processJob(cfg); err != nil { t.Fatal(err) }

  expected, err := tune.Equalize(src, 1, tune.CountExact)
  if err != nil { t.Fatal(err) }
  checkOutput(t, out, expected)
}

func TestProcessJobToneGestures(t *testing.T) {
  cmdOptions = CmdOptions{}
  dir := t.TempDir()
  src := grayImage(t)
  in := writeImage(t, dir, "in.bmp", src)
  out := filepath.Join(dir, "out.tif")

  cfg := loadConfig(t, fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<job>
  <input><file>%s</file></input>
  <output><file>%s</file></output>
  <steps>
    <gesture>
      <kind>tone</kind>
      <position>0,0</position>
      <position>1,2</position>
      <position>3,0</position>
    </gesture>
    <gesture>
      <kind>tone</kind>
      <position>0,0</position>
      <position>5,3</position>
      <cancel>true</cancel>
    </gesture>
  </steps>
</job>`, in, out))
  if err := processJob(cfg); err != nil { t.Fatal(err) }

  // window defaults to the image size: brightness = 255 * 3 / 6, contrast = 1
  expected, _ := ycc.New(6, 4)
  if err := tune.AdjustTone(expected, src, 127.5, 1.0); err != nil { t.Fatal(err) }
  checkOutput(t, out, expected)
}

func TestProcessJobCommandLine(t *testing.T) {
  dir := t.TempDir()
  src := grayImage(t)
  in := writeImage(t, dir, "in.png", src)
  out := filepath.Join(dir, "out.img")

  cmdOptions = CmdOptions{}
  cmdOptions.input = OptText{in, true}
  cmdOptions.output = OptText{out, true}
  cmdOptions.outputFormat = OptText{"BMP", true}
  cmdOptions.threaded = OptBool{true, true}
  cmdOptions.steps = []OptStep{{false, "scale:factor=0.5"}}
  defer func() { cmdOptions = CmdOptions{} }()

  if err := processJob(config.DefaultConfig()); err != nil { t.Fatal(err) }

  f, err := os.Open(out)
  if err != nil { t.Fatal(err) }
  g := graphics.Import(f)
  f.Close()
  if g.GetImageType() != graphics.TYPE_BMP {
    t.Errorf("got type %d, expected %d", g.GetImageType(), graphics.TYPE_BMP)
  }

  expected, err := tune.Scale(src, 0.5, false, 6, 4)
  if err != nil { t.Fatal(err) }
  checkOutput(t, out, expected)
}

func TestProcessJobErrors(t *testing.T) {
  cmdOptions = CmdOptions{}
  dir := t.TempDir()
  in := writeImage(t, dir, "in.png", grayImage(t))

  cases := map[string]string{
    "no input":       `{ "output": { "file": "out.png" } }`,
    "no output":      fmt.Sprintf(`{ "input": { "file": %q } }`, in),
    "missing input":  fmt.Sprintf(`{ "input": { "file": %q }, "output": { "file": %q } }`,
                                  filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png")),
    "unknown format": fmt.Sprintf(`{ "input": { "file": %q }, "output": { "file": %q } }`,
                                  in, filepath.Join(dir, "out.xyz")),
    "unknown filter": fmt.Sprintf(`{ "input": { "file": %q }, "output": { "file": %q }, "steps": [ { "filter": "blur" } ] }`,
                                  in, filepath.Join(dir, "out.png")),
    "bad option":     fmt.Sprintf(`{ "input": { "file": %q }, "output": { "file": %q }, "steps": [ { "filter": "tone", "options": [ { "key": "brightness", "value": "999" } ] } ] }`,
                                  in, filepath.Join(dir, "out.png")),
    "no directory":   fmt.Sprintf(`{ "input": { "file": %q }, "output": { "file": %q } }`,
                                  in, filepath.Join(dir, "missing", "out.png")),
  }
  for name, data := range cases {
    if err := processJob(loadConfig(t, data)); err == nil {
      t.Errorf("%s: expected error", name)
    }
  }
  if err := processJob(nil); err == nil {
    t.Errorf("nil configuration accepted")
  }
}

func TestReplayGestureStates(t *testing.T) {
  session, err := tune.NewSession(grayImage(t))
  if err != nil { t.Fatal(err) }
  if err := session.SetWindowSize(6, 4); err != nil { t.Fatal(err) }

  for _, def := range []string{"tone:2,2", "scale:3,2:cancel", "radius+", "radius+", "radius-"} {
    step, err := config.ParseGestureStep(def)
    if err != nil { t.Fatalf("%s: %v", def, err) }
    if err := replayStep(session, step); err != nil { t.Errorf("%s: %v", def, err) }
    if session.State() != tune.Idle {
      t.Errorf("%s: session not idle after replay: %v", def, session.State())
    }
  }
  if session.Radius() != tune.DefaultRadius + 1 {
    t.Errorf("got radius %d, expected %d", session.Radius(), tune.DefaultRadius + 1)
  }
  if !session.Current().Equal(grayImage(t)) {
    t.Errorf("image modified by neutral gestures")
  }
}

func TestParseSize(t *testing.T) {
  w, h, err := parseSize(" 640X480 ")
  if err != nil || w != 640 || h != 480 {
    t.Errorf("got %dx%d (%v)", w, h, err)
  }
  for _, s := range []string{"640", "0x480", "640x", "axb", "-1x5"} {
    if _, _, err := parseSize(s); err == nil {
      t.Errorf("%q: expected error", s)
    }
  }
}
