package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/serialscope/serialscope/config"
	"github.com/serialscope/serialscope/engine"
	"github.com/serialscope/serialscope/source"
	"github.com/serialscope/serialscope/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `serialscope v%s - live plotter for streaming numeric data

Usage:
  serialscope [OPTIONS]

Sources (picked in this order):
  -port PATH        Read newline-framed samples from a serial port
  -in FILE          Replay a capture file
  (piped stdin)     Read samples from stdin when it is not a terminal
  -demo             Built-in waveform generator

Options:
  -baud N           Serial baud rate (default: %d)
  -rate N           Demo generator sample rate in Hz (default: 60)
  -pace DUR         Delay between replayed file rows, e.g. 5ms (default: 0)
  -capacity N       Ring buffer size in rows (default: %d)
  -window N         Initial viewport width in samples (default: %d)
  -fps N            Render/animation frame rate (default: %d)
  -write-config     Persist the effective settings as the new defaults
  -list-ports       List available serial ports and exit
  -version          Print version and exit

Input format:
  One sample row per line, values separated by commas, spaces, or tabs.
  A line of names instead of numbers declares the channels and resets
  the stored history.

Keys:
  space freeze/resume, drag or ←/→ pan, wheel or +/- zoom, a autoscale,
  t time labels, c/p export CSV/PNG, ? help, q quit

Examples:
  serialscope -port /dev/ttyUSB0 -baud 115200
  serialscope -demo
  awk 'BEGIN{for(i=0;;i++){print sin(i/10); fflush()}}' | serialscope
  serialscope -in capture.txt -pace 10ms
`, Version, config.Default().Baud, config.Default().Capacity, config.Default().Window, config.Default().FPS)
}

// Run parses flags and starts the application.
func Run() error {
	cfg := config.Load()

	var (
		demo        bool
		rate        int
		inPath      string
		pace        time.Duration
		writeConfig bool
		listPorts   bool
		showVersion bool
	)

	flag.StringVar(&cfg.Port, "port", cfg.Port, "Serial port to read from")
	flag.IntVar(&cfg.Baud, "baud", cfg.Baud, "Serial baud rate")
	flag.BoolVar(&demo, "demo", false, "Use the built-in waveform generator")
	flag.IntVar(&rate, "rate", 60, "Demo generator sample rate in Hz")
	flag.StringVar(&inPath, "in", "", "Replay a capture file")
	flag.DurationVar(&pace, "pace", 0, "Delay between replayed file rows")
	flag.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "Ring buffer size in rows")
	flag.IntVar(&cfg.Window, "window", cfg.Window, "Initial viewport width in samples")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "Render frame rate")
	flag.BoolVar(&writeConfig, "write-config", false, "Persist the effective settings")
	flag.BoolVar(&listPorts, "list-ports", false, "List serial ports and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("serialscope v%s\n", Version)
		return nil
	}

	if listPorts {
		ports, err := source.ListPorts()
		if err != nil {
			return fmt.Errorf("list ports: %w", err)
		}
		if len(ports) == 0 {
			fmt.Println("no serial ports found")
			return nil
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	}

	if writeConfig {
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("wrote %s\n", config.Path())
	}

	src, err := pickSource(cfg, demo, rate, inPath, pace)
	if err != nil {
		return err
	}

	eng := engine.New(cfg.Engine())
	m := ui.NewModel(eng, src, cfg)
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("serialscope: %w", err)
	}
	return nil
}

// pickSource resolves the line source: explicit port, capture file,
// piped stdin, then the demo generator.
func pickSource(cfg config.Config, demo bool, rate int, inPath string, pace time.Duration) (source.Source, error) {
	switch {
	case demo:
		return &source.SynthSource{Rate: rate}, nil
	case inPath != "":
		f, err := os.Open(inPath)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", inPath, err)
		}
		return &source.ReaderSource{R: f, Name: inPath, Pace: pace}, nil
	case cfg.Port != "":
		return &source.SerialSource{Port: cfg.Port, Baud: cfg.Baud}, nil
	case !term.IsTerminal(os.Stdin.Fd()):
		return &source.ReaderSource{R: os.Stdin}, nil
	default:
		return nil, fmt.Errorf("no input: give -port, -in, -demo, or pipe data to stdin (see -h)")
	}
}
