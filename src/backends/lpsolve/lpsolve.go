// Package lpsolve solves transportation instances exactly with lp_solve.
package lpsolve

import (
	"github.com/draffensperger/golp"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"lagrangian_transport/src/transport"
)

func defTransportation(inst *transport.Problem) (*golp.LP, error) {
	numSrc, numDest := inst.NumSources, inst.NumDestinations
	numCols := numSrc * numDest

	lp := golp.NewLP(0, numCols)
	lp.SetMinimize()
	lp.SetObjFn(inst.Costs.RawMatrix().Data)

	row := make([]float64, numCols)
	for i := range numSrc {
		clear(row)
		for j := range numDest {
			row[i*numDest+j] = 1
		}
		if err := lp.AddConstraint(row, golp.LE, inst.Supply.AtVec(i)); err != nil {
			return nil, errors.Wrapf(err, "supply row %d", i)
		}
	}
	for j := range numDest {
		clear(row)
		for i := range numSrc {
			row[i*numDest+j] = 1
		}
		if err := lp.AddConstraint(row, golp.EQ, inst.Demand.AtVec(j)); err != nil {
			return nil, errors.Wrapf(err, "demand row %d", j)
		}
	}
	return lp, nil
}

// Solve returns an optimal flow for inst.
func Solve(inst *transport.Problem) (*transport.Solution, error) {
	if err := inst.CheckBalance(); err != nil {
		return nil, err
	}

	lp, err := defTransportation(inst)
	if err != nil {
		return nil, err
	}
	if status := lp.Solve(); status != golp.OPTIMAL {
		return nil, errors.Errorf("lp_solve status: %v", status)
	}

	return &transport.Solution{
		Flow:      mat.NewDense(inst.NumSources, inst.NumDestinations, lp.Variables()),
		TotalCost: lp.Objective(),
	}, nil
}
