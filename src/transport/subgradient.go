package transport

import (
	"context"
	"math"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const eps = 1e-8

// almostEqual compares a against the reference value b with a tolerance that
// grows with |b|.
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance(b)
}

func tolerance(ref float64) float64 {
	return eps * math.Max(1, math.Abs(ref))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Solve builds a Problem from raw data and runs the subgradient method on it.
func Solve(costs [][]float64, supply, demand []float64, cfg Config) (*Result, error) {
	inst, err := NewProblem(costs, supply, demand)
	if err != nil {
		return nil, err
	}
	return inst.SolveWithLagrangeanRelaxation(cfg)
}

func (p *Problem) SolveWithLagrangeanRelaxation(cfg Config) (*Result, error) {
	return p.SolveWithLagrangeanRelaxationContext(context.Background(), cfg)
}

// SolveWithLagrangeanRelaxationContext maximizes the Lagrangian dual of the
// demand constraints with the step schedule cfg.StepScaling/(k+1).
//
// The context is checked between iterations. If it is done after at least one
// iteration has completed, the partial result is returned with status
// Cancelled together with the context error.
func (p *Problem) SolveWithLagrangeanRelaxationContext(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	demand := p.Demand.RawVector().Data
	lambda := make([]float64, p.NumDestinations)
	subgrad := make([]float64, p.NumDestinations)
	x := mat.NewDense(p.NumSources, p.NumDestinations, nil)
	sp := p.newSubproblem(cfg.Workers)

	res := &Result{
		Flow:        x,
		LowerBound:  math.Inf(-1),
		Multipliers: lambda,
		Status:      BudgetExhausted,
	}

	for k := range cfg.MaxIter {
		if err := ctx.Err(); err != nil {
			if k == 0 {
				return nil, err
			}
			res.Status = Cancelled
			glog.V(1).Infof("Cancelled after %d iterations: %v", k, err)
			return res, err
		}

		relaxed := sp.solve(lambda, x)
		lowerBound := p.dualValue(relaxed, lambda)
		if lowerBound > res.LowerBound {
			res.LowerBound = lowerBound
		}

		p.violations(x, demand, subgrad)
		norm := floats.Norm(subgrad, 2)
		res.SubgradientNorm = norm
		res.Iterations = k + 1

		if cfg.OnIteration != nil {
			cfg.OnIteration(Iteration{
				K:               k,
				LowerBound:      lowerBound,
				BestLowerBound:  res.LowerBound,
				SubgradientNorm: norm,
				Flow:            x,
				Multipliers:     lambda,
			})
		}
		if cfg.LogEvery > 0 && k%cfg.LogEvery == 0 {
			glog.V(1).Infof("Iteration %d: lower bound = %.4f, subgradient norm = %.4f", k, lowerBound, norm)
		}
		glog.V(2).Infof("Iteration %d: lambda = %v", k, lambda)

		if norm < cfg.Tolerance {
			res.Status = Converged
			break
		}
		// λ must keep generating x, so skip the update nothing would observe.
		if k+1 == cfg.MaxIter {
			break
		}

		step := cfg.StepScaling / float64(k+1)
		floats.AddScaled(lambda, step, subgrad)
	}

	glog.V(1).Infof("Lagrangian relaxation %v after %d iterations, best lower bound %.4f",
		res.Status, res.Iterations, res.LowerBound)
	return res, nil
}

// violations writes the subgradient g_j = Σ_i x_ij - d_j into dst.
func (p *Problem) violations(x *mat.Dense, demand, dst []float64) {
	for j, d := range demand {
		dst[j] = -d
	}
	for i := range p.NumSources {
		floats.Add(dst, x.RawRowView(i))
	}
}
