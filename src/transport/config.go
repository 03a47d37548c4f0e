package transport

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Config controls the subgradient loop.
type Config struct {
	// MaxIter is the iteration budget (≥ 1).
	MaxIter int
	// Tolerance stops the loop once ‖g‖₂ drops below it (> 0).
	Tolerance float64
	// StepScaling is the numerator of the diminishing step StepScaling/(k+1).
	StepScaling float64
	// Workers splits the subproblem rows across goroutines. 0 and 1 run serially.
	Workers int
	// LogEvery sets the glog.V(1) progress cadence; 0 disables progress lines.
	LogEvery int
	// OnIteration, when set, is called after every completed iteration.
	OnIteration func(Iteration)
}

// Iteration is a snapshot handed to Config.OnIteration. Flow and Multipliers
// are reused by the solver and are only valid during the call.
type Iteration struct {
	K               int
	LowerBound      float64
	BestLowerBound  float64
	SubgradientNorm float64
	Flow            mat.Matrix
	Multipliers     []float64
}

func DefaultConfig() Config {
	return Config{
		MaxIter:     1000,
		Tolerance:   1e-5,
		StepScaling: 1.0,
		LogEvery:    100,
	}
}

func (cfg Config) validate() error {
	switch {
	case cfg.MaxIter < 1:
		return errors.Wrapf(ErrInvalidConfig, "MaxIter = %d, must be at least 1", cfg.MaxIter)
	case math.IsNaN(cfg.Tolerance) || cfg.Tolerance <= 0:
		return errors.Wrapf(ErrInvalidConfig, "Tolerance = %v, must be positive", cfg.Tolerance)
	case math.IsNaN(cfg.StepScaling) || math.IsInf(cfg.StepScaling, 0) || cfg.StepScaling <= 0:
		return errors.Wrapf(ErrInvalidConfig, "StepScaling = %v, must be positive and finite", cfg.StepScaling)
	case cfg.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "Workers = %d, must not be negative", cfg.Workers)
	case cfg.LogEvery < 0:
		return errors.Wrapf(ErrInvalidConfig, "LogEvery = %d, must not be negative", cfg.LogEvery)
	}
	return nil
}
