package solver

import (
	"sort"
	"testing"

	"github.com/kilianp07/vrptw/core/model"
)

func TestRelocate_MovesStrayCustomer(t *testing.T) {
	// Customer 1 sits next to route 0 but is served by route 1, which
	// detours badly to reach it.
	customers := []model.Customer{
		{ID: 0, X: 5, Y: 0, Demand: 1, DueDate: 1 << 20},
		{ID: 1, X: 5, Y: 1, Demand: 1, DueDate: 1 << 20},
		{ID: 2, X: -20, Y: 0, Demand: 1, DueDate: 1 << 20},
	}
	routes := []model.Route{{0}, {2, 1}}
	depot := wideDepot()

	base := EvaluateRoute(routes[0], customers, depot, 100).Cost +
		EvaluateRoute(routes[1], customers, depot, 100).Cost

	mv := Relocate(routes, customers, depot, 100, 1000)
	if !mv.Found {
		t.Fatalf("expected an improving relocation")
	}

	ev1 := EvaluateRoute(mv.NewRoute1, customers, depot, 100)
	ev2 := EvaluateRoute(mv.NewRoute2, customers, depot, 100)
	if !ev1.Feasible || !ev2.Feasible {
		t.Fatalf("relocation produced infeasible routes")
	}
	if ev1.Cost+ev2.Cost+improvementEps >= base {
		t.Fatalf("relocation is not improving: %v vs %v", ev1.Cost+ev2.Cost, base)
	}

	// All customers still served exactly once.
	got := append(append(model.Route{}, mv.NewRoute1...), mv.NewRoute2...)
	sort.Ints(got)
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("customer set changed: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("customer set changed: %v", got)
		}
	}
}

func TestRelocate_BudgetZero(t *testing.T) {
	customers := []model.Customer{
		{ID: 0, X: 5, Y: 0, Demand: 1, DueDate: 1 << 20},
		{ID: 1, X: 5, Y: 1, Demand: 1, DueDate: 1 << 20},
		{ID: 2, X: -20, Y: 0, Demand: 1, DueDate: 1 << 20},
	}
	mv := Relocate([]model.Route{{0}, {2, 1}}, customers, wideDepot(), 100, 0)
	if mv.Found {
		t.Fatalf("zero budget must not evaluate anything, got %+v", mv)
	}
}

func TestRelocate_CapacityBlocks(t *testing.T) {
	customers := []model.Customer{
		{ID: 0, X: 5, Y: 0, Demand: 10, DueDate: 1 << 20},
		{ID: 1, X: 5, Y: 1, Demand: 10, DueDate: 1 << 20},
	}
	// Both routes are full; no relocation can fit.
	mv := Relocate([]model.Route{{0}, {1}}, customers, wideDepot(), 10, 1000)
	if mv.Found {
		t.Fatalf("full vehicles must reject every relocation, got %+v", mv)
	}
}
