package model

// Route is an ordered sequence of customer IDs served by one vehicle. The
// depot is implicit at both ends and never appears in the sequence.
type Route []int

// Clone returns an independent copy of the route.
func (r Route) Clone() Route {
	if r == nil {
		return nil
	}
	out := make(Route, len(r))
	copy(out, r)
	return out
}

// Solution is a set of routes covering the customers of an instance.
type Solution struct {
	Routes []Route
}

// Clone deep-copies the solution so local-search trials can mutate it freely.
func (s Solution) Clone() Solution {
	routes := make([]Route, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = r.Clone()
	}
	return Solution{Routes: routes}
}

// CustomerCount returns the total number of stops across all routes.
func (s Solution) CustomerCount() int {
	n := 0
	for _, r := range s.Routes {
		n += len(r)
	}
	return n
}

// DropEmptyRoutes removes routes left without customers, preserving order.
func (s *Solution) DropEmptyRoutes() {
	kept := s.Routes[:0]
	for _, r := range s.Routes {
		if len(r) > 0 {
			kept = append(kept, r)
		}
	}
	s.Routes = kept
}
