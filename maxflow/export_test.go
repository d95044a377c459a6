package maxflow

// SetFlows replaces the per-edge flows of s, for Verify tests.
func SetFlows(s *Solution, flows []float64) { s.flows = flows }
