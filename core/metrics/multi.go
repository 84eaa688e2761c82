package metrics

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolveResult forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordSolveResult(res SolveResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolveResult(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordMove forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordMove(ev MoveEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordMove(ev); err != nil {
			return err
		}
	}
	return nil
}
