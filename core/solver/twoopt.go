package solver

import "github.com/kilianp07/vrptw/core/model"

// TwoOpt searches a single route for a segment reversal that strictly lowers
// its cost while staying feasible. First improvement: the first winning
// reversal is returned as a fresh route, the input is never mutated. Returns
// nil and false when no improving reversal exists.
//
// Reversals rarely survive tight time windows since they revisit customers in
// the opposite order, so the evaluator rejects most candidates early.
func TwoOpt(route model.Route, customers []model.Customer, depot model.Depot, capacity int) (model.Route, bool) {
	if len(route) < 3 {
		return nil, false
	}

	base := EvaluateRoute(route, customers, depot, capacity)

	for i := 0; i < len(route)-1; i++ {
		for j := i + 1; j < len(route); j++ {
			cand := reverseSegment(route, i, j)
			ev := EvaluateRoute(cand, customers, depot, capacity)
			if !ev.Feasible {
				continue
			}
			if ev.Cost+improvementEps < base.Cost {
				return cand, true
			}
		}
	}

	return nil, false
}

// reverseSegment copies route with positions [i, j] reversed.
func reverseSegment(route model.Route, i, j int) model.Route {
	out := route.Clone()
	for l, r := i, j; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}
