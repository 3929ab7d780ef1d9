// amplify searches the amplifier chain phase orderings of an IntCode
// program for the maximum final signal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/intcodeVM/intcode/pkg/amplifier"
	"github.com/intcodeVM/intcode/pkg/parser"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

var (
	flagDebug = flag.Bool("debug", false, "enable debug logging")
	flagQuiet = flag.Bool("q", false, "quiet mode (no banner)")
)

func main() {
	flag.Parse()
	logger := createLogger(*flagDebug, *flagQuiet)

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: amplify [options] <program file>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if !*flagQuiet {
		logger.Info("amplify", log.String("version", buildinfo.Version(version, commit, date)))
	}

	if err := run(args[0]); err != nil {
		logger.Error("Search failed", log.Err(err))
		os.Exit(1)
	}
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func run(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	tape, err := parser.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}

	signal, phases, err := amplifier.MaxThrust(tape)
	if err != nil {
		return err
	}

	fmt.Printf("Maximum signal: %d (phases %v)\n", signal, phases)
	return nil
}
