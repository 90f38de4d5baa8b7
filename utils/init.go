package utils

import (
	"flag"
	"fmt"
	"strings"
)

type options struct {
	plan       string
	proc       string
	outputDir  string
	format     string
	noColorize bool
	verbose    bool
	metrics    bool
	visualize  bool
	printCfg   bool
}

var opts = &options{}

var registered = false

// RegisterFlags binds all command line options. Called once by ParseArgs.
func RegisterFlags() {
	if registered {
		return
	}
	registered = true
	flag.StringVar(&opts.plan, "plan", "", "Path to a YAML analysis plan. The default plan runs constprop, livevars and deadcode")
	flag.StringVar(&opts.proc, "proc", "", "Restrict the analysis to the named procedure")
	flag.StringVar(&opts.outputDir, "output-dir", ".", "Directory that visualization artifacts are written to")
	flag.StringVar(&opts.format, "format", "svg", "Output format for CFG visualizations")
	flag.BoolVar(&opts.noColorize, "no-colorize", false, "Disable colorization of printed output")
	flag.BoolVar(&opts.verbose, "verbose", false, "Print facts and traversal information while analyzing")
	flag.BoolVar(&opts.metrics, "metrics", false, "Aggregate and print solver statistics across procedures")
	flag.BoolVar(&opts.visualize, "visualize", false, "Render the CFG of each analyzed procedure")
	flag.BoolVar(&opts.printCfg, "print-cfg", false, "Print the CFG of each analyzed procedure")
}

// ParseArgs processes command line arguments.
func ParseArgs() {
	RegisterFlags()
	flag.Parse()
}

// CanColorize guards a color.SprintFunc behind the no-colorize option.
func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

type optInterface struct{}

// Opts exposes the parsed command line options.
func Opts() optInterface {
	return optInterface{}
}

func (optInterface) Plan() string {
	return opts.plan
}

func (optInterface) Proc() string {
	return opts.proc
}

func (optInterface) OutputDir() string {
	return opts.outputDir
}

func (optInterface) Format() string {
	return opts.format
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}

func (optInterface) Verbose() bool {
	return opts.verbose
}

func (optInterface) Metrics() bool {
	return opts.metrics
}

func (optInterface) Visualize() bool {
	return opts.visualize
}

func (optInterface) PrintCfg() bool {
	return opts.printCfg
}

func (optInterface) OnVerbose(do func()) {
	if opts.verbose {
		do()
	}
}
