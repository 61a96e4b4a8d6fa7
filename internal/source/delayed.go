package source

import (
	"context"
	"time"

	"typeahead/internal/domain"
)

// Delayed adds fixed latency in front of another source, standing in for
// a remote backend
type Delayed struct {
	Source  Source
	Latency time.Duration
}

// Search waits out the latency, then asks the wrapped source
func (d *Delayed) Search(ctx context.Context, query string) ([]domain.Entry, error) {
	if d.Latency > 0 {
		timer := time.NewTimer(d.Latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return d.Source.Search(ctx, query)
}
