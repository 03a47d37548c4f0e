package transport_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"lagrangian_transport/src/transport"
)

// mustProblem builds a Problem or fails the test.
func mustProblem(t *testing.T, costs [][]float64, supply, demand []float64) *transport.Problem {
	t.Helper()
	inst, err := transport.NewProblem(costs, supply, demand)
	require.NoError(t, err)
	return inst
}

// separableCosts is the 3x3 instance whose costs are c_ij = 10 + 30i + 10j. Every
// feasible flow costs 26300 because the costs are separable.
func separableCosts(t *testing.T) *transport.Problem {
	return mustProblem(t,
		[][]float64{{10, 20, 30}, {40, 50, 60}, {70, 80, 90}},
		[]float64{100, 150, 200},
		[]float64{120, 130, 200},
	)
}

const separableOptimum = 26300.0

// randomBalanced draws an integer instance whose total supply equals total demand.
func randomBalanced(t *testing.T, rng *rand.Rand, numSrc, numDest int) *transport.Problem {
	t.Helper()
	supply := make([]float64, numSrc)
	demand := make([]float64, numDest)
	total := 0
	for i := range supply {
		s := 1 + rng.Intn(50)
		supply[i] = float64(s)
		total += s
	}
	// Spread the total over the destinations one unit at a time.
	for range total {
		demand[rng.Intn(numDest)]++
	}
	costs := make([][]float64, numSrc)
	for i := range costs {
		costs[i] = make([]float64, numDest)
		for j := range costs[i] {
			costs[i][j] = float64(1 + rng.Intn(30))
		}
	}
	return mustProblem(t, costs, supply, demand)
}

// requireSingleShipmentRows checks that every row of flow has at most one
// non-zero entry and that it equals the source's supply.
func requireSingleShipmentRows(t *testing.T, inst *transport.Problem, flow mat.Matrix) {
	t.Helper()
	rows, cols := flow.Dims()
	require.Equal(t, inst.NumSources, rows)
	require.Equal(t, inst.NumDestinations, cols)
	for i := range rows {
		nonZero := 0
		for j := range cols {
			if v := flow.At(i, j); v != 0 {
				nonZero++
				require.Equal(t, inst.Supply.AtVec(i), v, "row %d ships a partial supply", i)
			}
		}
		require.LessOrEqual(t, nonZero, 1, "row %d ships to several destinations", i)
	}
}
