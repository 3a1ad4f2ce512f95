package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/fffe/cpu"
	"github.com/hexaflex/chip8/vm"
)

// Known front ends.
const (
	FrontendGL   = "gl"
	FrontendTerm = "term"
)

// Config defines program configuration.
type Config struct {
	Program     string        // Path to the program file to load.
	Cycle       time.Duration // Time between instruction cycles.
	Frontend    string        // Presentation layer: FrontendGL or FrontendTerm.
	ScaleFactor int           // Amount by which each pixel is scaled.
	Fullscreen  bool          // Run in fullscreen?
	Mute        bool          // Disable audio output?
	Quirks      cpu.Quirks    // Opcode behaviour profile.
	Debug       bool          // Print instruction trace data and dump state on faults?
}

// parseArgs parses command line arguments and environment variables.
//
// If an error occurred, this exits the program with an appropriate message.
func parseArgs() *Config {
	c, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err == flag.ErrHelp {
		os.Exit(0)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return c
}

// parseConfig builds a configuration from the given arguments and environment.
// Usage information is written to w on failure.
func parseConfig(args []string, getenv func(string) string, w io.Writer) (*Config, error) {
	var c Config
	c.Frontend = FrontendGL
	c.ScaleFactor = 12
	c.Quirks = cpu.COSMAC

	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() {
		fmt.Fprintf(w, "%s [options] <program file>\n", AppName)
		fs.PrintDefaults()
		fmt.Fprintln(w, "\nenvironment:")
		fmt.Fprintln(w, "  DEBUG             Print instruction traces and dump state on faults.")
		fmt.Fprintln(w, "  CHIP8_FRONTEND    gl (default) or term.")
		fmt.Fprintln(w, "  CHIP8_SCALE       Pixel scale factor for the gl front end. (default 12)")
		fmt.Fprintln(w, "  CHIP8_FULLSCREEN  Run the gl front end in fullscreen mode.")
		fmt.Fprintln(w, "  CHIP8_MUTE        Disable audio output.")
		fmt.Fprintln(w, "  CHIP8_QUIRKS      cosmac (default) or chip48.")
	}

	cycle := int(vm.DefaultCycle / time.Millisecond)
	fs.StringVar(&c.Program, "file", "", "Path to the program file.")
	fs.StringVar(&c.Program, "f", "", "Shorthand for -file.")
	fs.IntVar(&cycle, "cycle", cycle, "Milliseconds between instruction cycles.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if c.Program == "" && fs.NArg() == 1 {
		c.Program = fs.Arg(0)
	}

	if c.Program == "" || fs.NArg() > 1 {
		fs.Usage()
		return nil, errors.New("expected a single program file")
	}

	if cycle < 1 {
		fs.Usage()
		return nil, errors.Errorf("invalid cycle interval %dms", cycle)
	}

	c.Cycle = time.Duration(cycle) * time.Millisecond

	if err := c.loadEnv(getenv); err != nil {
		fs.Usage()
		return nil, err
	}

	return &c, nil
}

// loadEnv applies settings from environment variables.
func (c *Config) loadEnv(getenv func(string) string) error {
	c.Debug = getenv("DEBUG") != ""
	c.Fullscreen = getenv("CHIP8_FULLSCREEN") != ""
	c.Mute = getenv("CHIP8_MUTE") != ""

	if v := getenv("CHIP8_FRONTEND"); v != "" {
		switch v = strings.ToLower(v); v {
		case FrontendGL, FrontendTerm:
			c.Frontend = v
		default:
			return errors.Errorf("unknown front end %q", v)
		}
	}

	if v := getenv("CHIP8_SCALE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return errors.Errorf("invalid scale factor %q", v)
		}
		c.ScaleFactor = n
	}

	if v := getenv("CHIP8_QUIRKS"); v != "" {
		q, ok := cpu.QuirksByName(v)
		if !ok {
			return errors.Errorf("unknown quirks profile %q", v)
		}
		c.Quirks = q
	}

	return nil
}
