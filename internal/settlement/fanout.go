package settlement

import "context"

// Fanout appends every record to each wrapped sink in order, stopping at the
// first failure. It lets the wiring pair the durable store with the hourly
// CSV export.
type Fanout struct {
	sinks []Sink
}

// NewFanout combines sinks into one. Nil entries are skipped.
func NewFanout(sinks ...Sink) *Fanout {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Fanout{sinks: kept}
}

func (f *Fanout) Append(ctx context.Context, r Record) error {
	for _, s := range f.sinks {
		if err := s.Append(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
