package solver

import "github.com/kilianp07/vrptw/core/model"

// improvementEps guards cost comparisons against floating-point noise being
// mistaken for an improvement.
const improvementEps = 1e-6

// Move describes the outcome of an inter-route move search. When Found is
// false the route indices are -1 and the candidate sequences nil.
type Move struct {
	Found     bool
	Route1    int
	Route2    int
	NewRoute1 model.Route
	NewRoute2 model.Route
}

func noMove() Move {
	return Move{Route1: -1, Route2: -1}
}

// TwoOptStar searches all unordered route pairs for a tail exchange that
// strictly reduces the combined travel+wait cost while keeping both candidate
// routes feasible. The first improving combination is returned; no segment is
// reversed, both candidates preserve the relative order of the customers they
// retain.
//
// maxAttempts caps the number of cut-point combinations evaluated across the
// entire search, not per route pair. The counter is incremented before each
// evaluation, so maxAttempts = 0 aborts before evaluating anything and
// exactly maxAttempts combinations are evaluated otherwise. Input routes are
// never mutated.
func TwoOptStar(routes []model.Route, customers []model.Customer, depot model.Depot, capacity, maxAttempts int) Move {
	attempts := 0

	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			r1, r2 := routes[i], routes[j]

			// A tail swap needs a non-empty head and a non-empty tail
			// on each side.
			if len(r1) < 2 || len(r2) < 2 {
				continue
			}

			// Baseline for comparison only. Infeasible originals
			// contribute their sentinel cost; they do not block the
			// search.
			res1 := EvaluateRoute(r1, customers, depot, capacity)
			res2 := EvaluateRoute(r2, customers, depot, capacity)
			baseline := res1.Cost + res2.Cost

			for cut1 := 1; cut1 < len(r1); cut1++ {
				for cut2 := 1; cut2 < len(r2); cut2++ {
					attempts++
					if attempts > maxAttempts {
						return noMove()
					}

					newR1 := spliceTail(r1, cut1, r2, cut2)
					newR2 := spliceTail(r2, cut2, r1, cut1)

					ev1 := EvaluateRoute(newR1, customers, depot, capacity)
					if !ev1.Feasible {
						continue
					}
					ev2 := EvaluateRoute(newR2, customers, depot, capacity)
					if !ev2.Feasible {
						continue
					}

					if ev1.Cost+ev2.Cost+improvementEps < baseline {
						return Move{
							Found:     true,
							Route1:    i,
							Route2:    j,
							NewRoute1: newR1,
							NewRoute2: newR2,
						}
					}
				}
			}
		}
	}

	return noMove()
}

// spliceTail builds head[:cut] followed by tail[tailCut:] as a fresh route.
func spliceTail(head model.Route, cut int, tail model.Route, tailCut int) model.Route {
	out := make(model.Route, 0, cut+len(tail)-tailCut)
	out = append(out, head[:cut]...)
	out = append(out, tail[tailCut:]...)
	return out
}
