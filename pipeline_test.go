package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"

	"github.com/cs-au-dk/kildall/config"
	"github.com/cs-au-dk/kildall/ir/parse"
)

func report(t *testing.T, name string, plan config.Plan) string {
	t.Helper()
	color.NoColor = true

	prog, err := parse.ParseFile(filepath.Join("testdata", name+".tir"))
	if err != nil {
		t.Fatal(err)
	}
	results, err := runPlan(prog, plan)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	for _, res := range results {
		printReport(&buf, res, plan)
	}
	return buf.String()
}

func TestReportGolden(t *testing.T) {
	for _, name := range []string{"max", "deadbranch", "useless"} {
		t.Run(name, func(t *testing.T) {
			g := goldie.New(t)
			g.Assert(t, name, []byte(report(t, name, config.DefaultPlan())))
		})
	}
}

func TestPartialPlanSkipsSections(t *testing.T) {
	plan := config.Plan{Analyses: []config.AnalysisConfig{{ID: "livevars"}}}
	out := report(t, "max", plan)

	if strings.Contains(out, "constants") || strings.Contains(out, "dead code") {
		t.Errorf("report includes sections the plan never ran:\n%s", out)
	}
	if !strings.Contains(out, "live after each statement:") {
		t.Errorf("report misses the liveness section:\n%s", out)
	}
}

func TestPlanPrerequisites(t *testing.T) {
	prog, err := parse.ParseString("proc f() {\nreturn\n}\n")
	if err != nil {
		t.Fatal(err)
	}
	plan := config.Plan{Analyses: []config.AnalysisConfig{{ID: "deadcode"}}}
	if _, err := runPlan(prog, plan); err == nil {
		t.Error("the detector must demand its input analyses")
	}

	plan = config.Plan{Analyses: []config.AnalysisConfig{{ID: "nonsense"}}}
	if _, err := runPlan(prog, plan); err == nil {
		t.Error("unknown analysis ids must be rejected")
	}
}

func TestMetricsOutput(t *testing.T) {
	color.NoColor = true
	prog, err := parse.ParseFile(filepath.Join("testdata", "max.tir"))
	if err != nil {
		t.Fatal(err)
	}
	results, err := runPlan(prog, config.DefaultPlan())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	printMetrics(&buf, results)
	out := buf.String()
	for _, want := range []string{"solver metrics over 1 procedures", "cfg nodes", "constprop steps", "livevars steps"} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output misses %q:\n%s", want, out)
		}
	}
}
