package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/stepsim/stepsim/machine"
)

// createLogger creates a logger with appropriate settings.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	var steps int
	var mem int
	var input string
	var output string
	var debug bool
	var quiet bool
	var listing bool

	flag.IntVar(&steps, "steps", 1<<20, "maximum register-transfer steps")
	flag.IntVar(&mem, "mem", 0, "memory size in words (0 = 65536)")
	flag.StringVar(&input, "in", "-", "input tape file ('-' = stdin)")
	flag.StringVar(&output, "out", "-", "output tape file ('-' = stdout)")
	flag.BoolVar(&debug, "d", false, "trace every register-transfer step")
	flag.BoolVar(&quiet, "q", false, "errors only")
	flag.BoolVar(&listing, "listing", false, "print the assembled program and symbols, do not run")

	flag.Parse()

	logger := createLogger(debug, quiet)

	if flag.NArg() != 1 {
		logger.Fatal("Usage: stepsim [flags] <source file>")
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Fatal(err.Error())
	}

	m := machine.New(mem, logger)

	if err := m.Assemble(string(source)); err != nil {
		logger.Fatal(err.Error())
	}

	if listing {
		os.Stdout.WriteString(m.Program.Listing())
		for name, addr := range m.Symbols() {
			fmt.Printf("%-16s %04x\n", name, addr)
		}
		return
	}

	if input == "-" {
		m.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			logger.Fatal(err.Error())
		}
		defer inf.Close()
		m.Tape.Input = inf
	}

	if output == "-" {
		m.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			logger.Fatal(err.Error())
		}
		defer ouf.Close()
		m.Tape.Output = ouf
	}

	n, err := m.Run(steps)
	if err != nil {
		logger.Error("Run failed", log.Err(err))
		os.Exit(1)
	}

	logger.Debug("Halted", log.Int("steps", n))
}
