// intcode runs an IntCode program from a file.
//
// Input values can be supplied up front with -input; when the program asks
// for input that is not there, the machine suspends and more values are
// read from stdin, one comma-separated line at a time.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/intcodeVM/intcode/pkg/machine"
	"github.com/intcodeVM/intcode/pkg/parser"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

var (
	flagInput = flag.String("input", "", "comma-separated input values to supply before running")
	flagPatch = flag.String("patch", "", "addr=value pairs to store before running, comma-separated")
	flagPeek  = flag.String("peek", "", "comma-separated addresses to print after the program halts")
	flagSteps = flag.Int("steps", 0, "step budget (0 = unlimited)")
	flagDebug = flag.Bool("debug", false, "enable debug logging")
	flagQuiet = flag.Bool("q", false, "quiet mode (no banner)")
)

func main() {
	flag.Parse()
	logger := createLogger(*flagDebug, *flagQuiet)

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: intcode [options] <program file>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if !*flagQuiet {
		logger.Info("intcode", log.String("version", buildinfo.Version(version, commit, date)))
	}

	if err := runFile(logger, args[0]); err != nil {
		logger.Error("Program failed", log.Err(err))
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

func runFile(logger *log.Logger, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	tape, err := parser.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}

	m, err := machine.New(tape)
	if err != nil {
		return err
	}
	if *flagSteps > 0 {
		m.SetBudget(*flagSteps)
	}

	if err := applyPatches(m, *flagPatch); err != nil {
		return err
	}

	if *flagInput != "" {
		values, err := parser.Parse(*flagInput)
		if err != nil {
			return fmt.Errorf("parsing -input: %w", err)
		}
		m.SetInput(values...)
	}

	if err := drive(m); err != nil {
		return err
	}

	logger.Debug("Final state",
		log.String("pc", strconv.Itoa(m.ProgramCounter())),
		log.String("memory", m.MemoryString()))

	return printPeeks(m, *flagPeek)
}

// drive is the caller loop: run, print output, and while the machine is
// suspended read another line of input values from stdin and re-run.
func drive(m *machine.Machine) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if err := m.Run(); err != nil {
			return err
		}
		for _, v := range m.DrainOutput() {
			fmt.Println(v)
		}
		if !m.Suspended() {
			return nil
		}

		fmt.Fprint(os.Stderr, "input> ")
		if !scanner.Scan() {
			return fmt.Errorf("program wants input but stdin is closed")
		}
		values, err := parser.Parse(scanner.Text())
		if err != nil {
			return fmt.Errorf("parsing input line: %w", err)
		}
		m.AddInput(values...)
	}
}

// applyPatches stores addr=value pairs into memory before the run, the
// usual puzzle setup of overwriting fixed addresses.
func applyPatches(m *machine.Machine, pairs string) error {
	if pairs == "" {
		return nil
	}
	for _, pair := range strings.Split(pairs, ",") {
		addr, value, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("bad patch %q, want addr=value", pair)
		}
		a, err := strconv.Atoi(strings.TrimSpace(addr))
		if err != nil {
			return fmt.Errorf("bad patch address %q: %w", addr, err)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("bad patch value %q: %w", value, err)
		}
		if err := m.Store(a, v); err != nil {
			return err
		}
	}
	return nil
}

func printPeeks(m *machine.Machine, addrs string) error {
	if addrs == "" {
		return nil
	}
	for _, addr := range strings.Split(addrs, ",") {
		a, err := strconv.Atoi(strings.TrimSpace(addr))
		if err != nil {
			return fmt.Errorf("bad peek address %q: %w", addr, err)
		}
		v, err := m.Retrieve(a)
		if err != nil {
			return err
		}
		fmt.Printf("mem[%d] = %d\n", a, v)
	}
	return nil
}
