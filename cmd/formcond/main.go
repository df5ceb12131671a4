package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type command struct {
	name    string
	summary string
	run     func(env *environment, args []string) error
}

var commands = []command{
	{name: "resolve", summary: "resolve a declaration and print its report", run: runResolve},
	{name: "fill", summary: "answer a declaration interactively", run: runFill},
	{name: "export", summary: "export payload schemas as an OpenAPI document", run: runExport},
	{name: "lint", summary: "validate form configuration files", run: runLint},
}

// environment carries what every command shares.
type environment struct {
	logger *zap.Logger
}

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Usage = usage
	flag.Parse()

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if *verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.Development = true
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Errorf("failed to build logger: %w", err))
	}
	defer func() { _ = logger.Sync() }()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}
		if err := cmd.run(&environment{logger: logger}, args[1:]); err != nil {
			var exit exitError
			if errors.As(err, &exit) {
				os.Exit(exit.code)
			}
			logger.Error("command failed", zap.String("command", cmd.name), zap.Error(err))
			os.Exit(1)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
	usage()
	os.Exit(2)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [-verbose] <command> [flags]\n\nCommands:\n", filepath.Base(os.Args[0]))
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", cmd.name, cmd.summary)
	}
}
