// Package main is the entry point for the wledit editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/wledit/internal/app"
	"github.com/dshills/wledit/internal/config"
	"github.com/dshills/wledit/internal/logging"
	"github.com/dshills/wledit/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	logLevel   string
	logFile    string
	readOnly   bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.Set(logger)

	// Create application
	application, err := app.New(app.Options{
		ConfigPath: f.configPath,
		Config:     cfg,
		File:       f.file,
		ReadOnly:   f.readOnly,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Create terminal backend
	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("run: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// openLogger opens the log file. The terminal owns stderr, so without a
// file the log is discarded.
func openLogger(lc config.LogConfig) (*logging.Logger, func(), error) {
	if lc.File == "" {
		return logging.Null(), func() {}, nil
	}
	file, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(lc.Level),
		Output: file,
		Prefix: "wledit",
	})
	return logger, func() { _ = file.Close() }, nil
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&f.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.logFile, "log-file", "", "Write the log to this file")
	flag.BoolVar(&f.readOnly, "readonly", false, "Open the file in read-only mode")
	flag.BoolVar(&f.readOnly, "R", false, "Open the file in read-only mode (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() { usage(os.Stderr) }
	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("wledit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if f.logLevel != "" && !logging.ValidLevel(f.logLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
		os.Exit(1)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		f.file = flag.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: only one file can be edited at a time")
		os.Exit(1)
	}

	return f
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "wledit - WordStar-style text editor\n\n")
	fmt.Fprintf(w, "Usage: wledit [options] [file]\n\n")
	fmt.Fprintf(w, "Options:\n")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	fmt.Fprintf(w, "\nKeys:\n")
	fmt.Fprintf(w, "  ^E ^S ^D ^X      cursor up, left, right, down\n")
	fmt.Fprintf(w, "  ^KB ^KK ^KY      begin block, copy block, cut block\n")
	fmt.Fprintf(w, "  ^KC ^KV          paste, paste older fragment\n")
	fmt.Fprintf(w, "  ^QF ^QA ^L       find, replace, repeat\n")
	fmt.Fprintf(w, "  F2 F10           save, quit\n")
}
