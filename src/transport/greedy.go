package transport

import (
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/dnaeon/go-priorityqueue.v1"
)

// GreedyRepair builds a feasible flow with the least-cost method, visiting
// cells in order of effective cost c_ij + λ_j. A nil lambda uses the plain
// costs. The returned cost is always measured with the original costs, so it
// is an upper bound on the optimum.
func (p *Problem) GreedyRepair(lambda []float64) (*Solution, error) {
	if lambda != nil && len(lambda) != p.NumDestinations {
		return nil, errors.Wrapf(ErrShapeMismatch, "got %d multipliers for %d destinations", len(lambda), p.NumDestinations)
	}
	if err := p.CheckBalance(); err != nil {
		return nil, err
	}

	numDest := p.NumDestinations
	pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
	for i := range p.NumSources {
		for j, c := range p.Costs.RawRowView(i) {
			if lambda != nil {
				c += lambda[j]
			}
			pq.Put(i*numDest+j, c)
		}
	}

	remSupply := slices.Clone(p.Supply.RawVector().Data)
	remDemand := slices.Clone(p.Demand.RawVector().Data)
	flow := mat.NewDense(p.NumSources, numDest, nil)

	for pq.Len() > 0 {
		item := pq.Get()
		i, j := item.Value/numDest, item.Value%numDest

		shipped := min(remSupply[i], remDemand[j])
		if shipped <= 0 {
			continue
		}
		flow.Set(i, j, shipped)
		remSupply[i] -= shipped
		remDemand[j] -= shipped
	}

	return &Solution{
		Flow:      flow,
		TotalCost: p.FlowCost(flow),
	}, nil
}
