package solver

import (
	"math/rand"
	"sort"

	"github.com/kilianp07/vrptw/core/model"
)

// newRoutePenalty discourages opening a vehicle when a feasible insertion
// into an existing route exists. Typical route costs sit well below this.
const newRoutePenalty = 1000.0

// Construct builds an initial solution by sequential cheapest insertion.
// Customers are processed in (due date, depot distance) order so urgent and
// close stops seed natural clusters; an optional rng shuffles the input first
// so ties break differently across seeded runs. Every customer ends up on
// exactly one route. A customer that fits nowhere is forced onto a dedicated
// route even if that route is infeasible on its own, leaving repair to the
// local search.
func Construct(customers []model.Customer, depot model.Depot, capacity int, rng *rand.Rand) model.Solution {
	ordered := make([]model.Customer, len(customers))
	copy(ordered, customers)
	if rng != nil {
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DueDate != ordered[j].DueDate {
			return ordered[i].DueDate < ordered[j].DueDate
		}
		return model.Distance(depot, ordered[i]) < model.Distance(depot, ordered[j])
	})

	table := model.NewCustomerTable(customers)
	var sol model.Solution

	for _, c := range ordered {
		bestRoute, bestPos := -1, -1
		bestDelta := model.Distance(depot, c)*2 + newRoutePenalty

		for ri, r := range sol.Routes {
			current := EvaluateRoute(r, table, depot, capacity)
			if !current.Feasible {
				continue
			}
			for pos := 0; pos <= len(r); pos++ {
				cand := insertAt(r, pos, c.ID)
				ev := EvaluateRoute(cand, table, depot, capacity)
				if !ev.Feasible {
					continue
				}
				if delta := ev.Cost - current.Cost; delta < bestDelta {
					bestDelta = delta
					bestRoute, bestPos = ri, pos
				}
			}
		}

		if bestRoute >= 0 {
			sol.Routes[bestRoute] = insertAt(sol.Routes[bestRoute], bestPos, c.ID)
		} else {
			sol.Routes = append(sol.Routes, model.Route{c.ID})
		}
	}

	return sol
}
