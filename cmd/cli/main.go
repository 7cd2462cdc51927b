package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fleet-optimizer/internal/analytics"
	"fleet-optimizer/internal/config"
	"fleet-optimizer/internal/data"
	"fleet-optimizer/internal/fleet"
	"fleet-optimizer/internal/model"
	"fleet-optimizer/internal/selector"
	"fleet-optimizer/internal/solver"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "select":
		cmdSelect(os.Args[2:])
	case "optimize":
		cmdOptimize(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	case "pareto":
		cmdPareto(os.Args[2:])
	case "dominate":
		cmdDominate(os.Args[2:])
	case "claim":
		cmdClaim(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli select   --config examples/config.yaml --out results/selection.csv")
	fmt.Println("  cli optimize --config examples/config.yaml --fleet-size 0 --out results/fleet.csv")
	fmt.Println("  cli sweep    --config examples/config.yaml --min 18 --max 26 --out results/sweep.csv")
	fmt.Println("  cli pareto   --config examples/config.yaml --from 3.0 --to 5.0 --step 0.25 --out results/pareto.csv")
	fmt.Println("  cli dominate --config examples/config.yaml --step 0.1 --out results/dominate.csv")
	fmt.Println("  cli claim    --config examples/config.yaml --fleet-size 22 --safety 4.0 --max-cost 20300000")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - select runs the two-phase greedy heuristic and writes its selection log")
	fmt.Println("  - optimize solves the fleet to provable cost optimality")
	fmt.Println("  - dominate searches for fleets beating the greedy baseline on safety at no extra cost")
}

// loadInputs resolves the config into a vessel table and scenario.
func loadInputs(cfgPath string) (*model.Table, model.Scenario, *config.Config) {
	if cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	datasetPath := cfg.Dataset
	if !filepath.IsAbs(datasetPath) {
		cand := filepath.Join(filepath.Dir(cfgPath), datasetPath)
		if _, err := os.Stat(cand); err == nil {
			datasetPath = cand
		}
	}
	var tbl *model.Table
	if strings.HasSuffix(strings.ToLower(datasetPath), ".json") {
		tbl, err = data.LoadVesselJSON(datasetPath)
	} else {
		tbl, err = data.LoadVesselCSV(datasetPath)
	}
	if err != nil {
		panic(err)
	}

	sc, err := cfg.Scenario.ToModel()
	if err != nil {
		panic(err)
	}
	return tbl, sc, cfg
}

func ensureDir(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
}

func cmdSelect(args []string) {
	fs := flag.NewFlagSet("select", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/selection.csv", "Output CSV path for the selection log")
	_ = fs.Parse(args)

	tbl, sc, _ := loadInputs(*cfgPath)

	res, err := selector.SelectGreedy(tbl, sc)
	if err != nil && !errors.Is(err, model.ErrConstraintUnsatisfied) {
		fmt.Printf("selection failed: %v\n", err)
		os.Exit(1)
	}

	ensureDir(*outPath)
	if werr := data.WriteSelectionLogCSV(*outPath, tbl, res.Log); werr != nil {
		panic(werr)
	}

	fmt.Printf("Wrote %d picks to %s\n", len(res.Log), *outPath)
	printFleet("greedy", res.Metrics)
	if err != nil {
		fmt.Printf("WARNING: %v\n", err)
	}
}

func cmdOptimize(args []string) {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/fleet.csv", "Output CSV path for the optimal fleet")
	size := fs.Int("fleet-size", 0, "Optional: require exactly N vessels (0=free)")
	maxSize := fs.Int("max-fleet-size", 0, "Optional: at most N vessels (0=free)")
	maxCost := fs.Float64("max-cost", 0, "Optional: total cost ceiling in USD (0=none)")
	_ = fs.Parse(args)

	tbl, sc, _ := loadInputs(*cfgPath)

	sol, err := solver.Solve(solver.Problem{
		Table:        tbl,
		Scenario:     sc,
		FleetSizeEq:  *size,
		FleetSizeMax: *maxSize,
		MaxCost:      *maxCost,
	})
	if err != nil {
		panic(err)
	}
	if sol.Status == solver.StatusInfeasible {
		fmt.Printf("infeasible: no fleet satisfies the constraints (%d nodes in %s)\n", sol.Nodes, sol.SolveTime)
		os.Exit(1)
	}

	ensureDir(*outPath)
	if err := data.WriteFleetCSV(*outPath, tbl, sol.Fleet); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d vessels to %s (%d nodes in %s)\n", sol.Fleet.Size(), *outPath, sol.Nodes, sol.SolveTime)
	printFleetIDs(sol.Fleet)
	printFleet("optimal", sol.Metrics)
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/sweep.csv", "Output CSV path")
	minN := fs.Int("min", 18, "Smallest fleet size")
	maxN := fs.Int("max", 26, "Largest fleet size")
	workers := fs.Int("workers", 4, "Parallel solver workers")
	_ = fs.Parse(args)

	tbl, sc, _ := loadInputs(*cfgPath)

	points, err := analytics.FleetSizeSweep(tbl, sc, *minN, *maxN, analytics.Options{Workers: *workers})
	if err != nil {
		panic(err)
	}

	ensureDir(*outPath)
	if err := data.WritePointsCSV(*outPath, points); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(points), *outPath)
	printPoints(points)
}

func cmdPareto(args []string) {
	fs := flag.NewFlagSet("pareto", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/pareto.csv", "Output CSV path")
	from := fs.Float64("from", 3.0, "Lowest safety threshold")
	to := fs.Float64("to", 5.0, "Highest safety threshold")
	step := fs.Float64("step", 0.25, "Threshold step")
	size := fs.Int("fleet-size", 0, "Optional: fixed fleet size (0=free)")
	workers := fs.Int("workers", 4, "Parallel solver workers")
	_ = fs.Parse(args)

	tbl, sc, _ := loadInputs(*cfgPath)

	thresholds := analytics.Thresholds(*from, *to, *step)
	points, err := analytics.ParetoFrontier(tbl, sc, thresholds, *size, analytics.Options{Workers: *workers})
	if err != nil {
		panic(err)
	}

	ensureDir(*outPath)
	if err := data.WritePointsCSV(*outPath, points); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(points), *outPath)
	printPoints(points)
}

func cmdDominate(args []string) {
	fs := flag.NewFlagSet("dominate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/dominate.csv", "Output CSV path")
	step := fs.Float64("step", 0.1, "Safety threshold step above the baseline")
	workers := fs.Int("workers", 4, "Parallel solver workers")
	_ = fs.Parse(args)

	tbl, sc, _ := loadInputs(*cfgPath)

	// Baseline is the greedy fleet; a safety miss there does not matter, the
	// search only needs its cost and average safety as the bar to clear.
	base, err := selector.SelectGreedy(tbl, sc)
	if err != nil && !errors.Is(err, model.ErrConstraintUnsatisfied) {
		panic(err)
	}

	dom, err := analytics.DominationSearch(tbl, sc, base.Fleet, *step, analytics.Options{Workers: *workers})
	if err != nil {
		panic(err)
	}

	ensureDir(*outPath)
	if err := data.WritePointsCSV(*outPath, dom.Points); err != nil {
		panic(err)
	}

	printFleet("baseline", dom.Baseline)
	if dom.Dominates {
		fmt.Printf("DOMINATED: safety %.2f at cost $%.2f (baseline $%.2f)\n",
			dom.Best.AvgSafety, dom.Best.Cost, dom.Baseline.TotalCost)
	} else {
		fmt.Println("not dominated: no cheaper-or-equal fleet with higher safety exists")
	}
}

func cmdClaim(args []string) {
	fs := flag.NewFlagSet("claim", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	size := fs.Int("fleet-size", 22, "Claimed fleet size")
	safety := fs.Float64("safety", 4.0, "Claimed minimum average safety")
	maxCost := fs.Float64("max-cost", 20.3e6, "Claimed cost ceiling in USD")
	_ = fs.Parse(args)

	tbl, sc, _ := loadInputs(*cfgPath)

	res, err := analytics.CheckClaim(tbl, sc, analytics.Claim{
		Size:    *size,
		Safety:  *safety,
		MaxCost: *maxCost,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("claim: %d vessels, avg safety >= %.2f, cost <= $%.2f\n", *size, *safety, *maxCost)
	if res.Holds {
		fmt.Println("VERDICT: holds")
		printFleetIDs(res.Witness)
		return
	}
	fmt.Println("VERDICT: does not hold")
	if res.SizeFeasible {
		fmt.Printf("cheapest %d-vessel fleet at that safety costs $%.2f (gap $%.2f)\n",
			*size, res.MinCost, res.MinCost-*maxCost)
	} else {
		fmt.Printf("no %d-vessel fleet reaches avg safety %.2f at all\n", *size, *safety)
	}
	if res.AnySizeMinCost > 0 {
		fmt.Printf("cheapest fleet of any size at that safety costs $%.2f\n", res.AnySizeMinCost)
	}
}

func printFleet(name string, m fleet.Metrics) {
	fmt.Printf("%s: %d vessels, dwt=%.0f, avg safety=%.2f, cost=$%.2f\n",
		name, m.Size, m.TotalDWT, m.AvgSafety, m.TotalCost)
}

func printFleetIDs(f model.Fleet) {
	parts := make([]string, len(f.IDs))
	for i, id := range f.IDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	fmt.Printf("fleet: [%s]\n", strings.Join(parts, " "))
}

func printPoints(points []analytics.Point) {
	fmt.Printf("%-22s %-8s %-10s %-12s %-6s %-14s\n", "label", "param", "feasible", "cost", "size", "avg safety")
	for _, p := range points {
		if !p.Feasible {
			fmt.Printf("%-22s %-8.2f %-10s\n", p.Label, p.Param, "no")
			continue
		}
		fmt.Printf("%-22s %-8.2f %-10s %-12.2f %-6d %-14.2f\n",
			p.Label, p.Param, "yes", p.Cost, p.FleetSize, p.AvgSafety)
	}
}
