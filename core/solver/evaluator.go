package solver

import "github.com/kilianp07/vrptw/core/model"

// Evaluation is the outcome of simulating a single route. Cost is the sum of
// travel distance and waiting time, both weighted at 1.0. When Feasible is
// false Cost carries the sentinel value 0; callers comparing route pairs must
// sum whatever the evaluator returned and must not substitute an infinite
// cost, since that would change which moves count as improving.
type Evaluation struct {
	Cost     float64
	Feasible bool
}

// EvaluateRoute simulates a vehicle serving route in order, starting and
// ending at the depot with the clock at zero. It fails on the first capacity
// or time-window violation and on any customer ID outside the table bounds.
// Comparisons are strict: a load exactly at capacity and a service start
// exactly at the due date are both feasible.
//
// The depot due date is not checked on the return leg; the depot window is
// assumed wide enough that the check is not worth the cost.
func EvaluateRoute(route model.Route, customers []model.Customer, depot model.Depot, capacity int) Evaluation {
	if len(route) == 0 {
		return Evaluation{Feasible: true}
	}

	var (
		cost  float64
		clock float64
		load  int
	)
	prev := depot

	for _, id := range route {
		if id < 0 || id >= len(customers) {
			return Evaluation{}
		}
		c := customers[id]

		load += c.Demand
		if load > capacity {
			return Evaluation{}
		}

		travel := model.Distance(prev, c)
		arrival := clock + travel
		wait := float64(c.ReadyTime) - arrival
		if wait < 0 {
			wait = 0
		}
		start := arrival + wait
		if start > float64(c.DueDate) {
			return Evaluation{}
		}

		cost += travel + wait
		clock = start + float64(c.ServiceTime)
		prev = c
	}

	cost += model.Distance(prev, depot)
	return Evaluation{Cost: cost, Feasible: true}
}

// SolutionCost sums the evaluator cost over all routes. Infeasible routes
// contribute their sentinel cost of zero.
func SolutionCost(sol model.Solution, customers []model.Customer, depot model.Depot, capacity int) float64 {
	var total float64
	for _, r := range sol.Routes {
		total += EvaluateRoute(r, customers, depot, capacity).Cost
	}
	return total
}

// SolutionFeasible reports whether every route in the solution is feasible.
func SolutionFeasible(sol model.Solution, customers []model.Customer, depot model.Depot, capacity int) bool {
	for _, r := range sol.Routes {
		if !EvaluateRoute(r, customers, depot, capacity).Feasible {
			return false
		}
	}
	return true
}
