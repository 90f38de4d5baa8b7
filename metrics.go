package main

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// printMetrics aggregates solver statistics across all analyzed
// procedures: how large the graphs were and how many transfer steps
// each solve took before reaching its fixed point.
func printMetrics(w io.Writer, results []*procResult) {
	var nodes, constSteps, liveSteps []float64
	for _, res := range results {
		if res.constants != nil {
			nodes = append(nodes, float64(res.constants.Stats().Nodes))
			constSteps = append(constSteps, float64(res.constants.Stats().Steps))
		}
		if res.liveness != nil {
			liveSteps = append(liveSteps, float64(res.liveness.Stats().Steps))
		}
	}

	fmt.Fprintf(w, "solver metrics over %d procedures:\n", len(results))
	printDistribution(w, "cfg nodes", nodes)
	printDistribution(w, "constprop steps", constSteps)
	printDistribution(w, "livevars steps", liveSteps)
}

func printDistribution(w io.Writer, name string, xs []float64) {
	if len(xs) == 0 {
		return
	}
	sort.Float64s(xs)
	fmt.Fprintf(w, "  %-16s mean %.1f, median %.1f, max %.0f\n",
		name,
		stat.Mean(xs, nil),
		stat.Quantile(0.5, stat.Empirical, xs, nil),
		xs[len(xs)-1])
}
