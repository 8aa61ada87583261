// Package main is the main entrypoint to the sig checking application. It
// reads "value : descriptor" lines from the argument, stdin, or an
// interactive prompt and reports whether the value matches the descriptor.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/lestrrat-go/strftime"
	"github.com/mattn/go-isatty"

	"github.com/jbester/sig/src/conf"
	"github.com/jbester/sig/src/parse"
	"github.com/jbester/sig/src/registry"
)

var (
	checkStat   string
	regPath     string
	traceFormat string
	showVersion bool

	parser *parse.Parser
	reg    *registry.Registry
	strf   *strftime.Strftime
)

func init() {
	flag.StringVar(&checkStat, "e", "", "check string 'value : descriptor'")
	flag.StringVar(&regPath, "c", "", "load named descriptors from a yaml registry file")
	flag.StringVar(&traceFormat, "t", "", "prefix every result with a strftime formatted timestamp")
	flag.BoolVar(&showVersion, "v", false, "show version information")
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		printVersion()
		return
	}

	var resolve parse.Resolver
	if regPath != "" {
		var err error
		reg, err = registry.LoadFile(regPath, nil)
		checkErr(err)
		resolve = reg.Resolver()
	}
	parser = parse.New(resolve)

	if traceFormat != "" {
		var err error
		strf, err = strftime.New(traceFormat)
		checkErr(err)
	}

	if checkStat != "" {
		if !checkLine(checkStat) {
			os.Exit(1)
		}
	} else if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		checkStdin()
	} else {
		runREPL()
	}
}

func checkStdin() {
	failed := 0
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !checkLine(line) {
			failed++
		}
	}
	checkErr(scanner.Err())
	if failed > 0 {
		os.Exit(1)
	}
}

func runREPL() {
	printVersion()
	fmt.Fprint(os.Stderr, "Check values with 'value : descriptor'. Press ctrl-c to quit.\n")
	rl, err := readline.New("> ")
	checkErr(err)
	for {
		src, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		if src == ":names" {
			printNames()
			continue
		}
		checkLine(src)
	}
}

func checkLine(src string) bool {
	val, defn, err := parser.CheckLine(src)
	if err != nil {
		report(os.Stderr, err.Error())
		return false
	}
	if !defn.Check(val) {
		report(os.Stderr, fmt.Sprintf("mismatch: %#v does not match %v", val, defn))
		return false
	}
	report(os.Stdout, fmt.Sprintf("ok: %#v matches %v", val, defn))
	return true
}

func report(out io.Writer, msg string) {
	if strf != nil {
		fmt.Fprintf(out, "%v %v\n", strf.FormatString(time.Now()), msg)
		return
	}
	fmt.Fprintln(out, msg)
}

func printNames() {
	if reg == nil {
		fmt.Fprint(os.Stderr, "no registry loaded, use -c to load one\n")
		return
	}
	for _, name := range reg.Names() {
		if defn, ok := reg.Descriptor(name); ok {
			fmt.Fprintf(os.Stdout, "%v = %v\n", name, defn)
		} else if c, ok := reg.Contract(name); ok {
			fmt.Fprintf(os.Stdout, "%v%v\n", name, c)
		}
	}
}

func printVersion() {
	fmt.Fprintf(os.Stderr, "%v\n", conf.FullVersion())
}

func printUsage() {
	printVersion()
	fmt.Fprint(os.Stderr, "\nUsage: sig [options] ['value : descriptor']\n")
	flag.PrintDefaults()
}

func checkErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
