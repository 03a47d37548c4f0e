package transport

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyProblem  = errors.New("transport: need at least one source and one destination")
	ErrShapeMismatch = errors.New("transport: shape mismatch")
	ErrNegativeValue = errors.New("transport: negative value")
	ErrNotFinite     = errors.New("transport: value is not finite")
	ErrInvalidConfig = errors.New("transport: invalid configuration")
	ErrInfeasible    = errors.New("transport: total supply is less than total demand")
)

// Problem is a transportation instance. Its data is owned by the Problem and
// never modified after NewProblem returns.
type Problem struct {
	NumSources      int
	NumDestinations int
	Costs           *mat.Dense
	Supply          *mat.VecDense
	Demand          *mat.VecDense
}

type Solution struct {
	Flow      *mat.Dense
	TotalCost float64
}

// Relaxation is the Lagrangian subproblem solved for a fixed multiplier vector.
type Relaxation struct {
	Flow        *mat.Dense
	RelaxedCost float64
	// LowerBound is RelaxedCost - λ·demand.
	LowerBound float64
}

type Status int

const (
	BudgetExhausted Status = iota
	Converged
	Cancelled
)

func (s Status) String() string {
	switch s {
	case BudgetExhausted:
		return "budget exhausted"
	case Converged:
		return "converged"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type Result struct {
	// Flow is the subproblem flow of the last completed iteration.
	Flow *mat.Dense
	// LowerBound is the best dual value over all iterations, not the last one.
	LowerBound float64
	// Multipliers are the λ values that produced Flow.
	Multipliers     []float64
	SubgradientNorm float64
	Iterations      int
	Status          Status
}

func NewProblem(costs [][]float64, supply, demand []float64) (*Problem, error) {
	numSources, numDestinations := len(supply), len(demand)
	if numSources == 0 || numDestinations == 0 {
		return nil, ErrEmptyProblem
	}
	if len(costs) != numSources {
		return nil, errors.Wrapf(ErrShapeMismatch, "cost matrix has %d rows, supply has %d entries", len(costs), numSources)
	}

	data := make([]float64, 0, numSources*numDestinations)
	for i, row := range costs {
		if len(row) != numDestinations {
			return nil, errors.Wrapf(ErrShapeMismatch, "cost row %d has %d entries, demand has %d", i, len(row), numDestinations)
		}
		data = append(data, row...)
	}

	if err := checkValues("cost", data); err != nil {
		return nil, err
	}
	if err := checkValues("supply", supply); err != nil {
		return nil, err
	}
	if err := checkValues("demand", demand); err != nil {
		return nil, err
	}

	return &Problem{
		NumSources:      numSources,
		NumDestinations: numDestinations,
		Costs:           mat.NewDense(numSources, numDestinations, data),
		Supply:          mat.NewVecDense(numSources, append([]float64(nil), supply...)),
		Demand:          mat.NewVecDense(numDestinations, append([]float64(nil), demand...)),
	}, nil
}

func checkValues(name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrNotFinite, "%s[%d] = %v", name, i, v)
		}
		if v < 0 {
			return errors.Wrapf(ErrNegativeValue, "%s[%d] = %v", name, i, v)
		}
	}
	return nil
}

func (p *Problem) TotalSupply() float64 {
	return floats.Sum(p.Supply.RawVector().Data)
}

func (p *Problem) TotalDemand() float64 {
	return floats.Sum(p.Demand.RawVector().Data)
}

// CheckBalance returns ErrInfeasible when total supply falls short of total
// demand by more than eps.
func (p *Problem) CheckBalance() error {
	supply, demand := p.TotalSupply(), p.TotalDemand()
	if supply < demand-eps {
		return errors.Wrapf(ErrInfeasible, "supply %g, demand %g", supply, demand)
	}
	return nil
}

func (p *Problem) FlowCost(flow mat.Matrix) float64 {
	return mat.Sum(mulElem(p.Costs, flow))
}

func mulElem(a, b mat.Matrix) *mat.Dense {
	var prod mat.Dense
	prod.MulElem(a, b)
	return &prod
}

// IsFeasible reports whether flow is non-negative, ships no more than each
// source's supply and meets every demand exactly. Row and column sums are
// compared with a tolerance of eps relative to the supply or demand.
func (p *Problem) IsFeasible(flow mat.Matrix) bool {
	rows, cols := flow.Dims()
	if rows != p.NumSources || cols != p.NumDestinations {
		return false
	}

	colSums := make([]float64, cols)
	for i := range rows {
		rowSum := 0.0
		for j := range cols {
			v := flow.At(i, j)
			if v < -eps {
				return false
			}
			rowSum += v
			colSums[j] += v
		}
		if s := p.Supply.AtVec(i); rowSum > s+tolerance(s) {
			return false
		}
	}
	for j, s := range colSums {
		if !almostEqual(s, p.Demand.AtVec(j)) {
			return false
		}
	}
	return true
}

func (p *Problem) String() string {
	s := new(strings.Builder)
	s.WriteString(fmt.Sprintf("N. sources: %d\n", p.NumSources))
	s.WriteString(fmt.Sprintf("N. destinations: %d\n", p.NumDestinations))
	s.WriteString(fmt.Sprintf("Supply: %v\n", p.Supply.RawVector().Data))
	s.WriteString(fmt.Sprintf("Demand: %v\n", p.Demand.RawVector().Data))
	s.WriteString("Costs:\n")
	for i := range p.NumSources {
		s.WriteString(fmt.Sprintf("%v\n", p.Costs.RawRowView(i)))
	}
	return s.String()
}

func (sol *Solution) String() string {
	s := new(strings.Builder)
	s.WriteString(fmt.Sprintf("Total cost: %f\n", sol.TotalCost))
	writeShipments(s, sol.Flow)
	return s.String()
}

func (res *Result) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "Status: %v after %d iterations\n", res.Status, res.Iterations)
	fmt.Fprintf(s, "Best lower bound: %f\n", res.LowerBound)
	fmt.Fprintf(s, "Subgradient norm: %f\n", res.SubgradientNorm)
	fmt.Fprintf(s, "Multipliers: %.4f\n", res.Multipliers)
	writeShipments(s, res.Flow)
	return s.String()
}

func writeShipments(s *strings.Builder, flow *mat.Dense) {
	s.WriteString("Shipments: [ ")
	rows, cols := flow.Dims()
	for i := range rows {
		for j := range cols {
			if v := flow.At(i, j); v > eps {
				fmt.Fprintf(s, "%d->%d:%g ", i, j, v)
			}
		}
	}
	s.WriteString("]")
}
