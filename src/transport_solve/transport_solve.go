package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"

	"lagrangian_transport/src/backends/highssolver"
	"lagrangian_transport/src/backends/lpsolve"
	"lagrangian_transport/src/transport"
)

type exactSolver struct {
	name  string
	solve func(*transport.Problem) (*transport.Solution, error)
}

func main() {
	var solveLagrangean, solveExact, solveHighs, solveLpsolve bool
	var paths []string
	cfg := transport.DefaultConfig()

	flag.Func("inst", "a list of instance file paths, separated by a whitespace", func(s string) error {
		paths = strings.Fields(s)
		return nil
	})
	flag.BoolVar(&solveLagrangean, "lagrangean", false, "Compute a lower bound with Lagrangian relaxation and the subgradient method")
	flag.BoolVar(&solveExact, "exact", false, "Solve the transportation LP with the gonum simplex")
	flag.BoolVar(&solveHighs, "highs", false, "Solve the transportation LP with the HiGHS solver")
	flag.BoolVar(&solveLpsolve, "lpsolve", false, "Solve the transportation LP with lp_solve")
	flag.IntVar(&cfg.MaxIter, "maxiter", cfg.MaxIter, "Maximum number of subgradient iterations")
	flag.Float64Var(&cfg.Tolerance, "tol", cfg.Tolerance, "Stop when the subgradient norm falls below this value")
	flag.Float64Var(&cfg.StepScaling, "step", cfg.StepScaling, "Step size scaling, the k-th step is step/(k+1)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of goroutines solving the subproblem rows")
	flag.IntVar(&cfg.LogEvery, "logevery", cfg.LogEvery, "Log progress every n iterations (needs -v=1)")

	flag.Parse()
	defer glog.Flush()

	if len(paths) == 0 {
		glog.Exit("Must specify at least a path")
	}
	if !solveLagrangean && !solveExact && !solveHighs && !solveLpsolve {
		glog.Exit("Must specify a solving algorithm")
	}

	var exact []exactSolver
	if solveExact {
		exact = append(exact, exactSolver{"simplex", (*transport.Problem).SolveExact})
	}
	if solveHighs {
		exact = append(exact, exactSolver{"HiGHS", highssolver.Solve})
	}
	if solveLpsolve {
		exact = append(exact, exactSolver{"lp_solve", lpsolve.Solve})
	}

	for _, p := range paths {
		inst, err := transport.LoadProblem(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error for instance \"%v\": %v. Skipping...\n", p, err)
			continue
		}

		if solveLagrangean {
			fmt.Printf("Solving %v with Lagrangian relaxation...\n", p)
			runLagrangean(p, inst, cfg)
		}
		for _, s := range exact {
			fmt.Printf("Solving %v with %v...\n", p, s.name)
			sol, err := s.solve(inst)
			if err != nil {
				fmt.Fprintf(os.Stderr, "An error occured while solving with %v instance \"%v\": %v\n", s.name, p, err)
			} else {
				fmt.Printf("Instance %v:\n%v\n", p, sol)
			}
		}
		fmt.Println()
	}
}

func runLagrangean(path string, inst *transport.Problem, cfg transport.Config) {
	res, err := inst.SolveWithLagrangeanRelaxation(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "An error occured while solving instance \"%v\": %v\n", path, err)
		return
	}
	fmt.Printf("Instance %v:\n%v\n", path, res)
	if res.Status != transport.Converged {
		fmt.Println("Lower bound is approximate: iteration budget exhausted")
	}

	ub, err := inst.GreedyRepair(res.Multipliers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "No primal bound for instance \"%v\": %v\n", path, err)
		return
	}
	fmt.Println("Greedy primal bound:", ub.TotalCost)
	if ub.TotalCost > 0 {
		fmt.Printf("Gap: %.4f%%\n", 100*(ub.TotalCost-res.LowerBound)/ub.TotalCost)
	}
}
