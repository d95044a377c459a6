package linprog

import (
	"context"
	"fmt"
	"math"
)

// presolved is a Problem after bound shifting and row reduction. Variables
// are shifted to y = x - lower, so 0 ≤ y ≤ ub and costs are for
// minimization.
type presolved struct {
	n     int
	lower []float64 // original lower bounds
	ub    []float64 // shifted upper bounds, +Inf allowed
	cost  []float64 // minimization cost of y
	fixed []bool
	y     []float64 // values of fixed variables
	rows  []prow

	nfixed int
}

// prow is a live equality row Σ coef·y[vars] = rhs with distinct vars.
type prow struct {
	name string
	vars []int
	coef []float64
	rhs  float64
	live bool
}

// presolve shifts bounds, aggregates duplicate terms and repeatedly applies
// the fixed-variable, empty-row, singleton-row and forcing-row reductions.
//
// Steps:
//  1. y = x - lower; variables with ub ≤ tol are fixed at 0.
//  2. Each row is aggregated so every variable appears once; zero
//     coefficients vanish and the shift moves into the right-hand side.
//  3. Until a pass changes nothing, for every live row:
//     a. substitute fixed variables into the right-hand side;
//     b. no variables left: 0 = rhs must hold, the row is dropped;
//     c. one variable: solve for it and fix it;
//     d. rhs equal to the row's minimum (maximum) activity: every variable
//     sits at the bound that attains it, fix them all.
//
// Infeasibility found on the way is returned as ErrInfeasible.
//
// Complexity: O(P·nnz) for P passes; each productive pass removes at least
// one row, so P ≤ rows+1.
func presolve(ctx context.Context, p *Problem, tol float64) (*presolved, error) {
	n := len(p.Vars)
	ps := &presolved{
		n:     n,
		lower: make([]float64, n),
		ub:    make([]float64, n),
		cost:  make([]float64, n),
		fixed: make([]bool, n),
		y:     make([]float64, n),
		rows:  make([]prow, 0, len(p.Constraints)),
	}
	for j, v := range p.Vars {
		ps.lower[j] = v.Lower
		ps.ub[j] = v.Upper - v.Lower
		if ps.ub[j] <= tol {
			ps.ub[j] = 0
			ps.fix(j, 0)
		}
	}
	sign := 1.0
	if p.Sense == Maximize {
		sign = -1
	}
	for _, t := range p.Objective {
		ps.cost[t.Var] += sign * t.Coef
	}

	acc := make([]float64, n)
	seen := make([]bool, n)
	for _, c := range p.Constraints {
		r := prow{name: c.Name, rhs: c.RHS, live: true}
		touched := make([]int, 0, len(c.Terms))
		for _, t := range c.Terms {
			if !seen[t.Var] {
				seen[t.Var] = true
				touched = append(touched, t.Var)
			}
			acc[t.Var] += t.Coef
		}
		for _, j := range touched {
			if a := acc[j]; a != 0 {
				r.vars = append(r.vars, j)
				r.coef = append(r.coef, a)
				r.rhs -= a * ps.lower[j]
			}
			acc[j], seen[j] = 0, false
		}
		ps.rows = append(ps.rows, r)
	}

	for changed := true; changed; {
		changed = false
		if err := ctx.Err(); err != nil {
			return nil, contextError(err)
		}
		for i := range ps.rows {
			r := &ps.rows[i]
			if !r.live {
				continue
			}
			ps.substitute(r)

			switch len(r.vars) {
			case 0:
				if math.Abs(r.rhs) > tol {
					return nil, fmt.Errorf("%w: row %q reduces to 0 = %g", ErrInfeasible, r.name, r.rhs)
				}
				r.live, changed = false, true

			case 1:
				j, a := r.vars[0], r.coef[0]
				v := r.rhs / a
				if v < -tol || v > ps.ub[j]+tol {
					return nil, fmt.Errorf("%w: row %q forces variable %d to %g outside [0, %g]",
						ErrInfeasible, r.name, j, v, ps.ub[j])
				}
				ps.fix(j, math.Min(math.Max(v, 0), ps.ub[j]))
				r.live, changed = false, true

			default:
				lo, hi := ps.activityRange(r)
				if r.rhs < lo-tol || r.rhs > hi+tol {
					return nil, fmt.Errorf("%w: row %q needs %g, reachable range [%g, %g]",
						ErrInfeasible, r.name, r.rhs, lo, hi)
				}
				atLo := !math.IsInf(lo, 0) && math.Abs(r.rhs-lo) <= tol
				atHi := !atLo && !math.IsInf(hi, 0) && math.Abs(r.rhs-hi) <= tol
				if !atLo && !atHi {
					continue
				}
				for q, j := range r.vars {
					up := (r.coef[q] > 0) == atHi
					if up {
						ps.fix(j, ps.ub[j])
					} else {
						ps.fix(j, 0)
					}
				}
				r.live, changed = false, true
			}
		}
	}

	return ps, nil
}

func (ps *presolved) fix(j int, v float64) {
	if !ps.fixed[j] {
		ps.nfixed++
	}
	ps.fixed[j] = true
	ps.y[j] = v
}

// substitute moves fixed variables of r into its right-hand side.
func (ps *presolved) substitute(r *prow) {
	k := 0
	for q, j := range r.vars {
		if ps.fixed[j] {
			r.rhs -= r.coef[q] * ps.y[j]
			continue
		}
		r.vars[k], r.coef[k] = j, r.coef[q]
		k++
	}
	r.vars, r.coef = r.vars[:k], r.coef[:k]
}

// activityRange returns the smallest and largest value Σ coef·y can take
// within the bounds. Infinite bounds give infinite ends; the two sums never
// mix signs, so no NaN arises.
func (ps *presolved) activityRange(r *prow) (lo, hi float64) {
	for q, j := range r.vars {
		a := r.coef[q]
		if a > 0 {
			hi += a * ps.ub[j]
		} else {
			lo += a * ps.ub[j]
		}
	}
	return lo, hi
}

// liveRows returns the indices of rows presolve could not eliminate.
func (ps *presolved) liveRows() []int {
	var out []int
	for i := range ps.rows {
		if ps.rows[i].live {
			out = append(out, i)
		}
	}
	return out
}

// independentRows drops live rows that are linear combinations of earlier
// ones, by incremental Gaussian elimination over the columns in cols
// (variable → column). It returns the kept row indices and, for each kept
// row, the variable whose column served as its pivot; the pivot columns
// form a nonsingular square submatrix of the kept rows.
//
// A dependent row whose right-hand side does not reduce to zero makes the
// system inconsistent: ErrInfeasible.
//
// Complexity: O(R²·C) time, O(R·C) memory for R live rows and C columns.
func (ps *presolved) independentRows(ctx context.Context, live []int, cols map[int]int, vars []int, tol float64) (kept, pivots []int, err error) {
	type echelonRow struct {
		vec   []float64
		rhs   float64
		pivot int
	}
	const depTol = 1e-9
	nc := len(vars)
	basis := make([]echelonRow, 0, len(live))

	for _, i := range live {
		if err := ctx.Err(); err != nil {
			return nil, nil, contextError(err)
		}
		r := &ps.rows[i]
		vec := make([]float64, nc)
		for q, j := range r.vars {
			vec[cols[j]] = r.coef[q]
		}
		rhs := r.rhs
		for _, b := range basis {
			f := vec[b.pivot]
			if f == 0 {
				continue
			}
			f /= b.vec[b.pivot]
			for c, v := range b.vec {
				if v != 0 {
					vec[c] -= f * v
				}
			}
			rhs -= f * b.rhs
		}

		piv, best := -1, 0.0
		for c, v := range vec {
			if a := math.Abs(v); a > best {
				piv, best = c, a
			}
		}
		if best <= depTol {
			if math.Abs(rhs) > tol {
				return nil, nil, fmt.Errorf("%w: row %q contradicts the rows before it", ErrInfeasible, r.name)
			}
			continue
		}
		basis = append(basis, echelonRow{vec: vec, rhs: rhs, pivot: piv})
		kept = append(kept, i)
		pivots = append(pivots, vars[piv])
	}

	return kept, pivots, nil
}
