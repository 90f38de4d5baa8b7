package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/cs-au-dk/kildall/analysis/cfg"
	"github.com/cs-au-dk/kildall/analysis/constprop"
	"github.com/cs-au-dk/kildall/analysis/deadcode"
	"github.com/cs-au-dk/kildall/analysis/lattice"
	"github.com/cs-au-dk/kildall/analysis/livevars"
	"github.com/cs-au-dk/kildall/analysis/solver"
	"github.com/cs-au-dk/kildall/config"
	"github.com/cs-au-dk/kildall/ir"
	"github.com/cs-au-dk/kildall/utils"

	"github.com/fatih/color"
)

var colorize = struct {
	Proc    func(...interface{}) string
	Section func(...interface{}) string
	Dead    func(...interface{}) string
}{
	Proc: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiWhite, color.Bold).SprintFunc())(is...)
	},
	Section: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Dead: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgRed).SprintFunc())(is...)
	},
}

// procResult bundles everything the plan produced for one procedure.
type procResult struct {
	proc      *ir.Proc
	graph     *cfg.Cfg
	constants *solver.Result[ir.Stmt, *lattice.Fact]
	liveness  *solver.Result[ir.Stmt, *lattice.VarSet]
	dead      []ir.Stmt
}

// runPlan runs the configured analyses over every procedure of prog,
// or just the one selected with -proc.
func runPlan(prog *ir.Program, plan config.Plan) ([]*procResult, error) {
	only := utils.Opts().Proc()
	if only != "" {
		if _, ok := prog.Proc(only); !ok {
			return nil, fmt.Errorf("no procedure named %q", only)
		}
	}

	var results []*procResult
	for _, proc := range prog.Procs() {
		if only != "" && proc.Name() != only {
			continue
		}
		res, err := runProc(proc, plan)
		if err != nil {
			return nil, fmt.Errorf("proc %s: %w", proc.Name(), err)
		}
		results = append(results, res)
	}
	return results, nil
}

func runProc(proc *ir.Proc, plan config.Plan) (*procResult, error) {
	utils.VerbosePrint("analyzing %s (%d statements)\n", proc.Name(), len(proc.Stmts()))
	if utils.Opts().Verbose() {
		defer utils.TimeTrack(time.Now(), "analyzing "+proc.Name())
	}

	res := &procResult{proc: proc, graph: cfg.Build(proc)}
	for _, a := range plan.Analyses {
		switch a.ID {
		case constprop.ID:
			res.constants = solver.Solve[ir.Stmt, *lattice.Fact](constprop.New(), res.graph)
		case livevars.ID:
			res.liveness = solver.Solve[ir.Stmt, *lattice.VarSet](livevars.New(), res.graph)
		case deadcode.ID:
			if res.constants == nil || res.liveness == nil {
				return nil, fmt.Errorf("%s needs %s and %s earlier in the plan",
					deadcode.ID, constprop.ID, livevars.ID)
			}
			res.dead = deadcode.Detect(res.graph, res.constants, res.liveness)
		default:
			return nil, fmt.Errorf("unknown analysis id %q", a.ID)
		}
	}
	utils.Opts().OnVerbose(func() {
		if res.constants != nil {
			fmt.Printf("  constprop of %s converged in %d steps\n",
				proc.Name(), res.constants.Stats().Steps)
		}
		if res.liveness != nil {
			fmt.Printf("  livevars of %s converged in %d steps\n",
				proc.Name(), res.liveness.Stats().Steps)
		}
	})
	return res, nil
}

// printReport writes the per-procedure fact tables and the dead code
// findings of every analysis the plan ran.
func printReport(w io.Writer, res *procResult, plan config.Plan) {
	fmt.Fprintf(w, "%s\n", colorize.Proc("proc "+res.proc.Name()+":"))
	g := res.graph

	if res.constants != nil {
		fmt.Fprintf(w, "  %s\n", colorize.Section("constants after each statement:"))
		for _, s := range res.proc.Stmts() {
			fmt.Fprintf(w, "    %s: %s\n", g.NodeName(s), res.constants.OutOf(s))
		}
	}
	if res.liveness != nil {
		fmt.Fprintf(w, "  %s\n", colorize.Section("live after each statement:"))
		for _, s := range res.proc.Stmts() {
			fmt.Fprintf(w, "    %s: %s\n", g.NodeName(s), res.liveness.OutOf(s))
		}
	}
	if plan.Has(deadcode.ID) {
		fmt.Fprintf(w, "  %s\n", colorize.Section("dead code:"))
		if len(res.dead) == 0 {
			fmt.Fprintf(w, "    (none)\n")
		}
		for _, s := range res.dead {
			fmt.Fprintf(w, "    %s\n", colorize.Dead(g.NodeName(s)))
		}
	}
}

// emitGraphs prints or renders the CFGs as requested on the command
// line.
func emitGraphs(results []*procResult) {
	for _, res := range results {
		if utils.Opts().PrintCfg() {
			res.graph.PrintTo(log.Writer())
		}
		if utils.Opts().Visualize() {
			path, err := res.graph.Visualize(utils.Opts().OutputDir(), utils.Opts().Format())
			if err != nil {
				log.Printf("rendering cfg of %s failed: %v", res.proc.Name(), err)
				continue
			}
			log.Println("Rendered", path)
		}
	}
}
