package session

// RunStats tracks attempt counters and byte totals across a session.
type RunStats struct {
	Attempts         int
	Succeeded        int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs
// of successful attempts. Positive means outputs are smaller; negative means
// they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
