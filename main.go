package main

import (
	"flag"
	"log"
	"os"

	"github.com/cs-au-dk/kildall/config"
	"github.com/cs-au-dk/kildall/ir/parse"
	"github.com/cs-au-dk/kildall/utils"

	"github.com/fatih/color"
)

func main() {
	utils.ParseArgs()
	if flag.NArg() != 1 {
		log.Fatalf("usage: %s [options] program.tir", os.Args[0])
	}
	if utils.Opts().NoColorize() {
		color.NoColor = true
	}

	path := flag.Arg(0)
	prog, err := parse.ParseFile(path)
	if err != nil {
		log.Fatalln(err)
	}

	plan := config.DefaultPlan()
	if planPath := utils.Opts().Plan(); planPath != "" {
		plan, err = config.LoadPlan(planPath)
		if err != nil {
			log.Fatalln(err)
		}
	}

	log.Println("Starting analysis of", path)
	results, err := runPlan(prog, plan)
	if err != nil {
		log.Fatalln(err)
	}

	for _, res := range results {
		printReport(os.Stdout, res, plan)
	}
	emitGraphs(results)
	if utils.Opts().Metrics() {
		printMetrics(os.Stdout, results)
	}
}
