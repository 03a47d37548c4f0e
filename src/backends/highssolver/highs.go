// Package highssolver solves transportation instances exactly with HiGHS.
package highssolver

import (
	"math"
	"slices"

	"github.com/lanl/highs"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"lagrangian_transport/src/transport"
)

func defTransportation(inst *transport.Problem) *highs.Model {
	numSrc, numDest := inst.NumSources, inst.NumDestinations
	numCols := numSrc * numDest

	lp := new(highs.Model)
	lp.ColCosts = slices.Clone(inst.Costs.RawMatrix().Data)
	lp.ColLower = make([]float64, numCols)
	lp.ColUpper = make([]float64, numCols)
	for j := range lp.ColUpper {
		lp.ColUpper[j] = math.Inf(1)
	}

	row := make([]float64, numCols)
	for i := range numSrc {
		clear(row)
		for j := range numDest {
			row[i*numDest+j] = 1
		}
		lp.AddDenseRow(math.Inf(-1), row, inst.Supply.AtVec(i))
	}
	for j := range numDest {
		clear(row)
		for i := range numSrc {
			row[i*numDest+j] = 1
		}
		lp.AddDenseRow(inst.Demand.AtVec(j), row, inst.Demand.AtVec(j))
	}
	return lp
}

// Solve returns an optimal flow for inst.
func Solve(inst *transport.Problem) (*transport.Solution, error) {
	if err := inst.CheckBalance(); err != nil {
		return nil, err
	}

	solution, err := defTransportation(inst).Solve()
	if err != nil {
		return nil, errors.Wrap(err, "highs")
	}
	if solution.Status != highs.Optimal {
		return nil, errors.Errorf("highs status: %v", solution.Status.String())
	}

	numCols := inst.NumSources * inst.NumDestinations
	return &transport.Solution{
		Flow:      mat.NewDense(inst.NumSources, inst.NumDestinations, solution.ColumnPrimal[:numCols]),
		TotalCost: solution.Objective,
	}, nil
}
