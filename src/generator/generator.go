package main

import (
	"flag"
	"math/rand"
	"os"
	"slices"

	"github.com/golang/glog"

	"lagrangian_transport/src/transport"
)

// GenerateTransportation draws a balanced instance: integer costs in
// [1, maxCost], integer supplies in [1, maxSupply] and demands that split the
// total supply at random cut points.
func GenerateTransportation(rng *rand.Rand, numSources, numDestinations, maxCost, maxSupply int) (*transport.Problem, error) {
	supply := make([]float64, numSources)
	total := 0
	for i := range supply {
		s := 1 + rng.Intn(maxSupply)
		supply[i] = float64(s)
		total += s
	}

	cuts := make([]int, numDestinations+1)
	cuts[numDestinations] = total
	for j := 1; j < numDestinations; j++ {
		cuts[j] = rng.Intn(total + 1)
	}
	slices.Sort(cuts[1:numDestinations])
	demand := make([]float64, numDestinations)
	for j := range demand {
		demand[j] = float64(cuts[j+1] - cuts[j])
	}

	costs := make([][]float64, numSources)
	for i := range costs {
		costs[i] = make([]float64, numDestinations)
		for j := range costs[i] {
			costs[i][j] = float64(1 + rng.Intn(maxCost))
		}
	}
	return transport.NewProblem(costs, supply, demand)
}

func main() {
	var outPath string
	var numSources, numDestinations, maxCost, maxSupply int
	var seed int64

	flag.StringVar(&outPath, "out", "out.txt", "The output file")
	flag.IntVar(&numSources, "sources", 0, "The number of sources")
	flag.IntVar(&numDestinations, "dests", 0, "The number of destinations")
	flag.IntVar(&maxCost, "maxcost", 100, "The maximum unit shipping cost")
	flag.IntVar(&maxSupply, "maxsupply", 200, "The maximum supply of a source")
	flag.Int64Var(&seed, "seed", 1, "The random seed")

	flag.Parse()
	defer glog.Flush()

	failed := false
	if numSources <= 0 {
		glog.Error("Must specify the number of sources")
		failed = true
	}
	if numDestinations <= 0 {
		glog.Error("Must specify the number of destinations")
		failed = true
	}
	if maxCost <= 0 || maxSupply <= 0 {
		glog.Error("maxcost and maxsupply must be positive")
		failed = true
	}
	if failed {
		glog.Flush()
		os.Exit(1)
	}

	inst, err := GenerateTransportation(rand.New(rand.NewSource(seed)), numSources, numDestinations, maxCost, maxSupply)
	if err != nil {
		glog.Exitf("Generating instance: %v", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		glog.Exitf("Creating %v: %v", outPath, err)
	}
	if err := inst.WriteInstance(out); err != nil {
		out.Close()
		glog.Exitf("Writing %v: %v", outPath, err)
	}
	if err := out.Close(); err != nil {
		glog.Exitf("Closing %v: %v", outPath, err)
	}
}
