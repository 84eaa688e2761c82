package solver

import "github.com/kilianp07/vrptw/core/model"

// Relocate searches for a single customer that can be moved from one route
// into another at a lower combined cost. First improvement, same budget
// semantics as TwoOptStar: the counter increments before each candidate
// evaluation and the whole search aborts once it exceeds maxAttempts.
//
// The source route may end up empty; callers typically drop empty routes
// after applying the move.
func Relocate(routes []model.Route, customers []model.Customer, depot model.Depot, capacity, maxAttempts int) Move {
	attempts := 0

	for src := 0; src < len(routes); src++ {
		if len(routes[src]) == 0 {
			continue
		}
		for dst := 0; dst < len(routes); dst++ {
			if dst == src {
				continue
			}

			rs, rd := routes[src], routes[dst]
			res := EvaluateRoute(rs, customers, depot, capacity)
			red := EvaluateRoute(rd, customers, depot, capacity)
			baseline := res.Cost + red.Cost

			for pos := 0; pos < len(rs); pos++ {
				for ins := 0; ins <= len(rd); ins++ {
					attempts++
					if attempts > maxAttempts {
						return noMove()
					}

					newSrc := removeAt(rs, pos)
					newDst := insertAt(rd, ins, rs[pos])

					evs := EvaluateRoute(newSrc, customers, depot, capacity)
					if !evs.Feasible {
						continue
					}
					evd := EvaluateRoute(newDst, customers, depot, capacity)
					if !evd.Feasible {
						continue
					}

					if evs.Cost+evd.Cost+improvementEps < baseline {
						lo, hi := src, dst
						r1, r2 := newSrc, newDst
						if dst < src {
							lo, hi = dst, src
							r1, r2 = newDst, newSrc
						}
						return Move{
							Found:     true,
							Route1:    lo,
							Route2:    hi,
							NewRoute1: r1,
							NewRoute2: r2,
						}
					}
				}
			}
		}
	}

	return noMove()
}

func removeAt(r model.Route, pos int) model.Route {
	out := make(model.Route, 0, len(r)-1)
	out = append(out, r[:pos]...)
	out = append(out, r[pos+1:]...)
	return out
}

func insertAt(r model.Route, pos, id int) model.Route {
	out := make(model.Route, 0, len(r)+1)
	out = append(out, r[:pos]...)
	out = append(out, id)
	out = append(out, r[pos:]...)
	return out
}
