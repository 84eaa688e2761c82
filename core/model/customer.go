package model

import "math"

// Customer represents a single service stop in a VRPTW instance. The ID doubles
// as the index into the dense customer table, so IDs must stay within
// [0, table size).
type Customer struct {
	ID          int
	X           float64
	Y           float64
	Demand      int
	ReadyTime   int
	DueDate     int
	ServiceTime int
}

// Depot is a Customer used as the shared start and end point of every route.
// Its demand and service time are conventionally zero and its time window wide.
type Depot = Customer

// Distance returns the Euclidean distance between two stops. Computed on the
// fly, never cached.
func Distance(a, b Customer) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// NewCustomerTable compacts an unordered list of customer records into a dense
// slice indexed by ID. The table is sized by the number of entries; records
// whose ID falls outside [0, len) are dropped rather than written out of
// bounds. Duplicate IDs keep the last record seen.
func NewCustomerTable(entries []Customer) []Customer {
	table := make([]Customer, len(entries))
	for _, c := range entries {
		if c.ID < 0 || c.ID >= len(table) {
			continue
		}
		table[c.ID] = c
	}
	return table
}
