package transport

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SolveExact solves the transportation LP with gonum's simplex. Supply rows
// get a slack column each so the model is in standard form:
//
//	min cᵀx  s.t.  Σ_j x_ij + u_i = s_i,  Σ_i x_ij = d_j,  x, u ≥ 0
func (p *Problem) SolveExact() (*Solution, error) {
	if err := p.CheckBalance(); err != nil {
		return nil, err
	}

	c, A, b := p.standardForm()
	z, x, err := lp.Simplex(c, A, b, 0, nil)
	if err != nil {
		return nil, errors.Wrap(err, "simplex")
	}

	numFlows := p.NumSources * p.NumDestinations
	return &Solution{
		Flow:      mat.NewDense(p.NumSources, p.NumDestinations, x[:numFlows]),
		TotalCost: z,
	}, nil
}

func (p *Problem) standardForm() (c []float64, A *mat.Dense, b []float64) {
	numSrc, numDest := p.NumSources, p.NumDestinations
	numFlows := numSrc * numDest

	c = make([]float64, numFlows+numSrc)
	copy(c, p.Costs.RawMatrix().Data)

	A = mat.NewDense(numSrc+numDest, numFlows+numSrc, nil)
	b = make([]float64, numSrc+numDest)
	for i := range numSrc {
		for j := range numDest {
			A.Set(i, i*numDest+j, 1)
			A.Set(numSrc+j, i*numDest+j, 1)
		}
		A.Set(i, numFlows+i, 1)
		b[i] = p.Supply.AtVec(i)
	}
	for j := range numDest {
		b[numSrc+j] = p.Demand.AtVec(j)
	}
	return
}
