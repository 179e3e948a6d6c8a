/*
Symcalc is an interactive symbolic calculator session.

It reads expression and equation text from the console, one line at a
time, evaluating, simplifying, or solving depending on the line's form,
and prints the result. It can also boot an HTTP API server instead of
the REPL.

Usage:

	symcalc [flags]
	symcalc [flags] -serve

Once a session has started, the interpreter reads one line at a time.
An ordinary expression (e.g. "3 + 4 * x") is simplified and printed. A
line of the form "solve <equation> for <variable>" isolates <variable>
in <equation> and prints the result. Lines with no variables are
evaluated to a number. Type "exit" or "quit" to leave.

The flags are:

	-v, --version
		Give the current version of symcalc and then exit.

	-c, --command EXPRESSION
		Immediately run the given expression(s) at start. Can be
		multiple expressions separated by the ";" character.

	-f, --file PATH
		Read expressions from the given file, one per line, instead of
		an interactive session.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a
		tty with stdin and stdout.

	-p, --precision N
		Round evaluated numeric results to N decimal places. Defaults
		to the value built into internal/symexpr.

	-serve
		Start the HTTP API server instead of the REPL, using the
		config file given by -config (or defaults if none is given).

	-config PATH
		Load server settings from the given TOML file. Only consulted
		when -serve is given.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/symcalc/internal/api"
	"github.com/dekarrin/symcalc/internal/applog"
	"github.com/dekarrin/symcalc/internal/config"
	"github.com/dekarrin/symcalc/internal/history"
	"github.com/dekarrin/symcalc/internal/history/inmem"
	"github.com/dekarrin/symcalc/internal/history/sqlite"
	"github.com/dekarrin/symcalc/internal/repline"
	"github.com/dekarrin/symcalc/internal/symexpr"
	"github.com/dekarrin/symcalc/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitCalcError indicates an unsuccessful program execution due to
	// a problem during evaluation.
	ExitCalcError

	// ExitInitError indicates an unsuccessful program execution due to
	// an issue initializing the REPL or server.
	ExitInitError
)

var (
	returnCode   = ExitSuccess
	flagVersion  = pflag.BoolP("version", "v", false, "Give the version info")
	forceDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	startCommand = pflag.StringP("command", "c", "", "Evaluate the given expression(s) immediately at start and leave the interpreter open")
	inputFile    = pflag.StringP("file", "f", "", "Read expressions from the given file instead of running interactively")
	precision    = pflag.IntP("precision", "p", 0, "Round evaluated numeric results to this many decimal places")
	serve        = pflag.Bool("serve", false, "Start the HTTP API server instead of the REPL")
	configPath   = pflag.String("config", "", "Load server settings from the given TOML file")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *serve {
		runServer()
		return
	}

	runREPL()
}

func runServer() {
	log := applog.Default()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: invalid configuration: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	var store history.Store
	switch cfg.HistoryDB.Type {
	case config.DatabaseSQLite:
		store, err = sqlite.New(cfg.HistoryDB.DataDir)
	case config.DatabaseInMemory:
		store = inmem.New()
	default:
		err = fmt.Errorf("unsupported history DB type: %q", cfg.HistoryDB.Type)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not open history store: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer store.Close()

	a := &api.API{
		History:              store,
		Secret:               []byte(cfg.TokenSecret),
		OperatorUser:         cfg.OperatorUser,
		OperatorPasswordHash: cfg.OperatorPasswordHash,
		Precision:            cfg.Precision,
		UnauthDelay:          cfg.UnauthDelay(),
		Log:                  log,
	}

	log.Info("Starting symcalc server %s on %s...", version.Current, cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, a.Router()); err != nil {
		log.Error("server exited: %v", err)
		returnCode = ExitInitError
	}
}

func runREPL() {
	var startCommands []string
	if *startCommand != "" {
		startCommands = strings.Split(*startCommand, ";")
	}

	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		defer f.Close()

		if err := runLines(repline.NewDirectReader(f), nil); err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitCalcError
		}
		return
	}

	reader, err := newReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer reader.Close()

	if err := runLines(reader, startCommands); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitCalcError
	}
}

// newReader picks an interactive, readline-backed reader unless -direct
// was given, the same fallback engine.go applies via its own
// forceDirectInput flag.
func newReader() (repline.Reader, error) {
	if !*forceDirect {
		return repline.NewInteractiveReader("symcalc> ")
	}
	return repline.NewDirectReader(os.Stdin), nil
}

func runLines(r repline.Reader, startLines []string) error {
	for _, line := range startLines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runLine(line)
	}

	for {
		line, err := r.ReadLine()
		if err != nil {
			return err
		}

		lower := strings.ToLower(line)
		if lower == "exit" || lower == "quit" {
			return nil
		}

		runLine(line)
	}
}

// runLine dispatches a single REPL line: "solve <eq> for <var>" isolates
// a variable; anything else that reduces all the way to a number is
// evaluated and printed as "= <result>", and anything left with a free
// variable is simplified and printed in its reduced symbolic form.
func runLine(line string) {
	if eq, target, ok := parseSolve(line); ok {
		expr, err := symexpr.ParseEquation(eq)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err.Error())
			return
		}
		solved := symexpr.OptimizeEquation(expr, target)
		fmt.Printf("%s\n", solved.String())
		return
	}

	value, err := symexpr.Evaluate(line)
	if err == nil {
		if *precision > 0 {
			value = symexpr.Round(value, *precision)
		}
		fmt.Printf("= %s\n", formatResult(value))
		return
	}

	// not a pure number (likely contains a variable); fall back to
	// symbolic simplification instead of failing the line outright.
	expr, parseErr := symexpr.Parse(line)
	if parseErr != nil {
		fmt.Printf("ERROR: %s\n", rosed.Edit(err.Error()).Wrap(80).String())
		return
	}
	simplified := symexpr.OptimizeExpression(expr, "")
	fmt.Printf("%s\n", simplified.String())
}

func formatResult(v float64) string {
	return (&symexpr.Number{Value: v}).String()
}

// parseSolve recognizes "solve <equation> for <variable>" and splits
// out its pieces. ok is false for any other line shape.
func parseSolve(line string) (eq, target string, ok bool) {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "solve ") {
		return "", "", false
	}
	rest := trimmed[len("solve "):]

	idx := strings.LastIndex(strings.ToLower(rest), " for ")
	if idx < 0 {
		return "", "", false
	}

	eq = strings.TrimSpace(rest[:idx])
	target = strings.TrimSpace(rest[idx+len(" for "):])
	if eq == "" || target == "" {
		return "", "", false
	}
	return eq, target, true
}
