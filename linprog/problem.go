package linprog

import (
	"fmt"
	"math"
)

// Sense is the optimization direction.
type Sense uint8

const (
	// Maximize the objective.
	Maximize Sense = iota
	// Minimize the objective.
	Minimize
)

// String returns "maximize" or "minimize".
func (s Sense) String() string {
	if s == Minimize {
		return "minimize"
	}
	return "maximize"
}

// Variable is a bounded continuous decision variable. Upper may be +Inf.
type Variable struct {
	Name         string
	Lower, Upper float64
}

// Term is Coef·x[Var].
type Term struct {
	Var  int
	Coef float64
}

// Constraint is the equality Σ Terms = RHS. A variable may appear in several
// terms of the same row; the coefficients add up.
type Constraint struct {
	Name  string
	Terms []Term
	RHS   float64
}

// Problem is a linear program with equality rows and bounded variables.
// The zero value is an empty maximization problem.
type Problem struct {
	Name        string
	Sense       Sense
	Vars        []Variable
	Constraints []Constraint
	Objective   []Term
}

// AddVariable appends a variable and returns its index.
func (p *Problem) AddVariable(name string, lower, upper float64) int {
	p.Vars = append(p.Vars, Variable{Name: name, Lower: lower, Upper: upper})
	return len(p.Vars) - 1
}

// AddConstraint appends the row Σ terms = rhs and returns its index.
func (p *Problem) AddConstraint(name string, rhs float64, terms ...Term) int {
	p.Constraints = append(p.Constraints, Constraint{
		Name:  name,
		Terms: append([]Term(nil), terms...),
		RHS:   rhs,
	})
	return len(p.Constraints) - 1
}

// SetObjective replaces the objective.
func (p *Problem) SetObjective(sense Sense, terms ...Term) {
	p.Sense = sense
	p.Objective = append([]Term(nil), terms...)
}

// Evaluate returns the objective value at x.
func (p *Problem) Evaluate(x []float64) float64 {
	return dot(p.Objective, x)
}

// Activity returns Σ terms of constraint i at x.
func (p *Problem) Activity(i int, x []float64) float64 {
	return dot(p.Constraints[i].Terms, x)
}

// MaxViolation returns the largest bound or constraint violation at x.
// A feasible point has MaxViolation 0 up to rounding.
func (p *Problem) MaxViolation(x []float64) float64 {
	worst := 0.0
	for j, v := range p.Vars {
		worst = math.Max(worst, v.Lower-x[j])
		worst = math.Max(worst, x[j]-v.Upper)
	}
	for i, c := range p.Constraints {
		worst = math.Max(worst, math.Abs(p.Activity(i, x)-c.RHS))
	}

	return worst
}

// CheckFeasible reports the first bound or row of p that x violates by more
// than tol, wrapped in ErrNumerical, or nil.
func (p *Problem) CheckFeasible(x []float64, tol float64) error {
	if len(x) != len(p.Vars) {
		return fmt.Errorf("%w: point has %d coordinates, problem has %d variables",
			ErrBadProblem, len(x), len(p.Vars))
	}
	for j, v := range p.Vars {
		if x[j] < v.Lower-tol || x[j] > v.Upper+tol {
			return fmt.Errorf("%w: variable %q = %g outside [%g, %g]",
				ErrNumerical, v.Name, x[j], v.Lower, v.Upper)
		}
	}
	for i, c := range p.Constraints {
		if got := p.Activity(i, x); math.Abs(got-c.RHS) > tol {
			return fmt.Errorf("%w: constraint %q = %g, want %g",
				ErrNumerical, c.Name, got, c.RHS)
		}
	}

	return nil
}

// Validate checks that p is well formed: finite lower bounds, Lower ≤ Upper,
// no NaN anywhere and every term pointing at an existing variable.
func (p *Problem) Validate() error {
	n := len(p.Vars)
	for j, v := range p.Vars {
		switch {
		case math.IsNaN(v.Lower) || math.IsNaN(v.Upper):
			return fmt.Errorf("%w: variable %d (%q) has a NaN bound", ErrBadProblem, j, v.Name)
		case math.IsInf(v.Lower, 0):
			return fmt.Errorf("%w: variable %d (%q) needs a finite lower bound", ErrBadProblem, j, v.Name)
		case v.Lower > v.Upper:
			return fmt.Errorf("%w: variable %d (%q) has lower %g > upper %g",
				ErrBadProblem, j, v.Name, v.Lower, v.Upper)
		}
	}
	checkTerms := func(where string, terms []Term) error {
		for _, t := range terms {
			if t.Var < 0 || t.Var >= n {
				return fmt.Errorf("%w: %s references variable %d of %d", ErrBadProblem, where, t.Var, n)
			}
			if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
				return fmt.Errorf("%w: %s has coefficient %g", ErrBadProblem, where, t.Coef)
			}
		}
		return nil
	}
	for i, c := range p.Constraints {
		if err := checkTerms(fmt.Sprintf("constraint %d (%q)", i, c.Name), c.Terms); err != nil {
			return err
		}
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return fmt.Errorf("%w: constraint %d (%q) has right-hand side %g", ErrBadProblem, i, c.Name, c.RHS)
		}
	}

	return checkTerms("objective", p.Objective)
}

func dot(terms []Term, x []float64) float64 {
	s := 0.0
	for _, t := range terms {
		s += t.Coef * x[t.Var]
	}
	return s
}
