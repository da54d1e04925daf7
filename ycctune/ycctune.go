/*
YCC Tune is a command line tool for adjusting tone, local contrast and size of images in YCbCr color space.

Processing steps are replayed from configuration files or from the command line, in the same way an interactive
session would apply them.

YCC Tune is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package main

import (
  "fmt"
  "io"
  "os"

  "github.com/InfinityTools/ycctune"
  "github.com/InfinityTools/ycctune/config"
  "github.com/InfinityTools/go-logging"
)


const TOOL_NAME     = "YCC Tune"


func main() {
  err := loadArgs(os.Args)
  if err != nil {
    fmt.Printf("%v\n", err)
    os.Exit(1)
  }

  // Setting global options
  if b, x := argsVerbose(); x {
    if b {
      logging.SetVerbosity(logging.LOG)
    } else {
      logging.SetVerbosity(logging.ERROR)
    }
  }
  logging.SetPrefixCaller(false)
  if b, x := argsLogStyle(); x && b {
    logging.SetPrefixTimestamp(true)
    logging.SetPrefixLevel(true)
  } else {
    logging.SetPrefixTimestamp(false)
    logging.SetPrefixLevel(false)
  }

  _, inputSet := argsInput()
  if _, x := argsVersion(); x {
    printVersion()
  } else if _, x := argsHelp(); x {
    printHelp()
  } else if argsExtraLength() == 0 && !inputSet {
    printHelp()
  } else {
    logging.Infoln("Starting image processing")
    err = convert()
    if err != nil {
      logging.Errorf("%v\n", err)
      os.Exit(1)
    }
    logging.Infoln("Image processing finished successfully.")
  }
}


func convert() error {
  length := argsExtraLength()
  if length == 0 {
    // single job defined by command line options
    logging.Infoln("Starting job 0: (command line)")
    err := processJob(config.DefaultConfig())
    if err != nil { return fmt.Errorf("Job 0: %v", err) }
    logging.Infoln("Finished job 0")
    return nil
  }

  for idx := 0; idx < length; idx++ {
    configFile := argsExtra(idx)
    if len(configFile) == 0 { continue }  // should not happen
    if configFile == "-" {
      logging.Infof("Starting job %d: (standard input)\n", idx)
    } else {
      logging.Infof("Starting job %d: %s\n", idx, configFile)
    }
    err := convertJob(configFile)
    if err != nil { return fmt.Errorf("Job %d: %v", idx, err) }
    logging.Infof("Finished job %d\n", idx)
  }

  return nil
}


func convertJob(configFile string) error {
  // consistency checks
  isStdIn := configFile == "-"
  if !isStdIn && !fileExists(configFile) {
    return fmt.Errorf("File not found: %q", configFile)
  }

  var r io.Reader = nil
  if isStdIn {
    r = os.Stdin
  } else {
    fin, err := os.Open(configFile)
    if err != nil { return fmt.Errorf("Cannot open %q: %v", configFile, err) }
    defer fin.Close()
    r = fin
  }
  cfg, err := config.ImportConfig(r)
  if err != nil { return fmt.Errorf("Error parsing configuration: %v", err) }

  return processJob(cfg)
}


func printHelp() {
  fmt.Printf("Usage: %s [options] [configfile ...]\n", os.Args[0])
  const helpText = "Adjusts tone, local contrast and size of an image based on processing steps\n" +
                   "defined in configuration files or on the command line.\n" +
                   "\n" +
                // "...............................................................................\n" +
                   "Options:\n" +
                   "  --verbose                 Show additional log messages during processing.\n" +
                   "  --silent                  Suppress any log messages during processing except\n" +
                   "                            for errors.\n" +
                   "  --log-style               Print log messages in log style, complete with\n" +
                   "                            timestamp and log level.\n" +
                   "  --threaded                Enable multithreading for row-based operations.\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --no-threaded             Disable multithreading for row-based operations.\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --input file              Set input image file. Supported formats: BMP, GIF,\n" +
                   "                            JPEG, PNG, TIFF, WebP. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --output file             Set output image file. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --output-format type      Set output format. Supported types: png, bmp, gif,\n" +
                   "                            jpg, tiff. Derived from the output file extension\n" +
                   "                            if omitted. Overrides setting in the config file.\n" +
                   "  --jpeg-quality value      Set JPEG output quality in range [1, 100].\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --gif-colors value        Set number of GIF palette entries in range\n" +
                   "                            [2, 256]. Overrides setting in the config file.\n" +
                   "  --gif-dither value        Set dither strength for GIF output in range\n" +
                   "                            [0.0, 1.0]. Overrides setting in the config file.\n" +
                   "  --gif-sort type           Sort GIF palette by the specified type. The\n" +
                   "                            following types are recognized: none, luma, cb,\n" +
                   "                            cr, saturation, hue. Append _reversed to reverse\n" +
                   "                            the sort order. Overrides setting in the config\n" +
                   "                            file.\n" +
                   "  --window WxH              Set window size for gestures. Defaults to the\n" +
                   "                            image size. Overrides setting in the config file.\n" +
                   "  --radius value            Set initial radius for local equalization in range\n" +
                   "                            [1, 255]. Overrides setting in the config file.\n" +
                   "  --bilinear                Use bilinear interpolation when enlarging.\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --no-bilinear             Use nearest neighbor sampling when enlarging.\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --exact                   Count equalization samples exactly. Overrides\n" +
                   "                            setting in the config file.\n" +
                   "  --filter def              Append a filter step. Definition:\n" +
                   "                              name[:key=value[;key=value...]]\n" +
                   "                            Available filters: tone, equalize, scale.\n" +
                   "  --gesture def             Append a gesture step. Definition:\n" +
                   "                              kind[:x0,y0[,x1,y1...]][:cancel]\n" +
                   "                            Available kinds: tone, scale (both require\n" +
                   "                            window positions), equalize, radius+, radius-.\n" +
                   "                            Steps from --filter and --gesture are applied in\n" +
                   "                            order of appearance after the steps of the config\n" +
                   "                            file.\n" +
                   "  --help                    Print this help and terminate.\n" +
                   "  --version                 Print version information and terminate.\n" +
                   "\n" +
                   "Note: Use minus sign (-) in place of configfile to read configuration data\n" +
                   "      from standard input. Without config files --input and --output are\n" +
                   "      required."
  fmt.Println(helpText)
}


func printVersion() {
  ycctune.PrintVersion(TOOL_NAME)
}


// Used internally. Returns whether the specified filename points to a regular existing file.
func fileExists(file string) bool {
  if len(file) == 0 { return false }
  fi, err := os.Stat(file)
  if err != nil { return false }
  return fi.Mode().IsRegular()
}
