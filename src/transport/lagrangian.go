package transport

import (
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// subproblem solves the demand-relaxed transportation problem
//
//	min Σ_i Σ_j (c_ij + λ_j) x_ij   s.t. 0 ≤ x_ij, Σ_j x_ij ≤ s_i
//
// which decomposes by source: each source ships its whole supply to its
// cheapest destination when that effective cost is strictly negative.
type subproblem struct {
	inst    *Problem
	workers int
	// rowCost[i] is source i's contribution to the relaxed objective.
	rowCost []float64
	// effective holds one scratch row of c_i· + λ per worker.
	effective [][]float64
}

func (p *Problem) newSubproblem(workers int) *subproblem {
	workers = max(1, min(workers, p.NumSources))
	effective := make([][]float64, workers)
	for w := range effective {
		effective[w] = make([]float64, p.NumDestinations)
	}
	return &subproblem{
		inst:      p,
		workers:   workers,
		rowCost:   make([]float64, p.NumSources),
		effective: effective,
	}
}

// solve overwrites x with the relaxed flow for lambda and returns the relaxed
// objective. Workers own disjoint row blocks and the row contributions are
// summed afterwards in row order, so the result does not depend on workers.
func (sp *subproblem) solve(lambda []float64, x *mat.Dense) float64 {
	numSources := sp.inst.NumSources
	if sp.workers == 1 {
		sp.solveRows(0, numSources, lambda, sp.effective[0], x)
		return floats.Sum(sp.rowCost)
	}

	chunk := (numSources + sp.workers - 1) / sp.workers
	var wg sync.WaitGroup
	for w := range sp.workers {
		lo, hi := w*chunk, min((w+1)*chunk, numSources)
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			sp.solveRows(lo, hi, lambda, sp.effective[w], x)
		}()
	}
	wg.Wait()
	return floats.Sum(sp.rowCost)
}

func (sp *subproblem) solveRows(lo, hi int, lambda, effective []float64, x *mat.Dense) {
	for i := lo; i < hi; i++ {
		row := x.RawRowView(i)
		clear(row)
		sp.rowCost[i] = 0

		floats.AddTo(effective, sp.inst.Costs.RawRowView(i), lambda)
		// MinIdx keeps the first index on ties.
		j := floats.MinIdx(effective)
		if effective[j] < 0 {
			supply := sp.inst.Supply.AtVec(i)
			row[j] = supply
			sp.rowCost[i] = effective[j] * supply
		}
	}
}

// SolveSubproblem solves the Lagrangian subproblem for a single multiplier
// vector. It is what every subgradient iteration runs, exposed for callers
// that drive their own multiplier search.
func (p *Problem) SolveSubproblem(lambda []float64) (*Relaxation, error) {
	if len(lambda) != p.NumDestinations {
		return nil, errors.Wrapf(ErrShapeMismatch, "got %d multipliers for %d destinations", len(lambda), p.NumDestinations)
	}
	for j, l := range lambda {
		if !isFinite(l) {
			return nil, errors.Wrapf(ErrNotFinite, "lambda[%d] = %v", j, l)
		}
	}

	x := mat.NewDense(p.NumSources, p.NumDestinations, nil)
	relaxed := p.newSubproblem(1).solve(lambda, x)
	return &Relaxation{
		Flow:        x,
		RelaxedCost: relaxed,
		LowerBound:  p.dualValue(relaxed, lambda),
	}, nil
}

// dualValue is L(λ) = relaxed cost - λ·demand.
func (p *Problem) dualValue(relaxed float64, lambda []float64) float64 {
	return relaxed - floats.Dot(lambda, p.Demand.RawVector().Data)
}
