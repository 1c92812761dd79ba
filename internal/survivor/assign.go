package survivor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// sentinelCost marks a week/team pairing that is infeasible (bye or no
// data).  Large but finite so the solver stays numerically stable; any
// feasible -log(p) cost is far below it.
const sentinelCost = 1e6

// solveAssignment finds the one-to-one matching of rows to columns that
// minimizes total cost, using the primal-dual shortest-augmenting-path
// form of the Hungarian method.  The matrix must have at least as many
// columns as rows.  Ties are broken toward the lowest column index, which
// keeps results deterministic when columns are sorted by team identifier.
func solveAssignment(cost *mat.Dense) ([]int, float64, error) {
	n, m := cost.Dims()
	if n == 0 {
		return nil, 0, nil
	}
	if m < n {
		return nil, 0, fmt.Errorf("assignment needs at least as many columns as rows, got %dx%d", n, m)
	}

	// Dual potentials and matching, 1-based with a virtual zero column.
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	rowOf := make([]int, m+1) // rowOf[j] = row matched to column j, 0 if free
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		rowOf[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := rowOf[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := cost.At(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[rowOf[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if rowOf[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			rowOf[j0] = rowOf[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for j := 1; j <= m; j++ {
		if rowOf[j] > 0 {
			assignment[rowOf[j]-1] = j - 1
		}
	}

	total := 0.0
	for i, j := range assignment {
		total += cost.At(i, j)
	}

	return assignment, total, nil
}
